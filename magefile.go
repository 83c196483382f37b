//go:build mage

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ---- Config ------------------------------------------------------------------

var (
	ServerCmdDir    = "cmd/server"
	SmoketestCmdDir = "cmd/smoketest"
	BuildDir        = "bin"
)

// ---- Helpers -----------------------------------------------------------------

func sh(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd.Run()
}

// helper: run a command with extra env vars
func shEnv(env map[string]string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), func() []string {
		out := make([]string, 0, len(env))
		for k, v := range env {
			out = append(out, k+"="+v)
		}
		return out
	}()...)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd.Run()
}

func out(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

func ensureDir(dir string) error { return os.MkdirAll(dir, 0o755) }

func which(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

func binPath(name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(BuildDir, name)
}

// ---- Tasks -------------------------------------------------------------------

// Bootstrap: prepare the workspace
func Bootstrap() error {
	steps := []func() error{
		ModDownload,
		Deps,
	}
	for _, f := range steps {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// ModDownload: prefetch all module dependencies into the module cache.
func ModDownload() error {
	return sh("go", "mod", "download", "all")
}

// Deps: install CLI tooling for builds
func Deps() error {
	cmds := [][]string{
		{"go", "install", "golang.org/x/tools/cmd/goimports@latest"},
		{"go", "install", "honnef.co/go/tools/cmd/staticcheck@latest"},
		{"go", "install", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest"},
		{"go", "install", "golang.org/x/vuln/cmd/govulncheck@latest"},
	}
	for _, c := range cmds {
		if err := sh(c[0], c[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// Build: build server and smoketest binaries into ./bin
func Build() error {
	if err := ensureDir(BuildDir); err != nil {
		return err
	}
	if err := sh("go", "build",
		"-trimpath", "-buildvcs=false",
		"-ldflags", "-s -w",
		"-o", binPath("server"),
		"./"+ServerCmdDir,
	); err != nil {
		return err
	}
	return sh("go", "build",
		"-trimpath", "-buildvcs=false",
		"-ldflags", "-s -w",
		"-o", binPath("smoketest"),
		"./"+SmoketestCmdDir,
	)
}

// Run: run the server from source
func Run() error {
	return sh("go", "run", "./"+ServerCmdDir)
}

// Smoketest: run the end-to-end lifecycle check against a local server
// (expects SMOKE_EMAIL and SMOKE_PASSWORD in the environment)
func Smoketest() error {
	email := os.Getenv("SMOKE_EMAIL")
	password := os.Getenv("SMOKE_PASSWORD")
	if email == "" || password == "" {
		return errors.New("SMOKE_EMAIL and SMOKE_PASSWORD must be set")
	}
	return sh("go", "run", "./"+SmoketestCmdDir,
		"--email", email, "--password", password)
}

// Vuln: check for known vulnerabilities
func Vuln() error {
	if !which("govulncheck") {
		return fmt.Errorf("govulncheck not found; run 'mage deps'")
	}
	return sh("govulncheck", "./...")
}

// Test: run unit tests with the race detector (enables cgo just for this run)
// set NO_RACE=1 if you want to skip the race detector
func Test() error {
	if os.Getenv("NO_RACE") == "1" {
		return sh("go", "test", "./...")
	}
	return shEnv(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "-race", "./...")
}

// Cover: coverage report (also with race, unless NO_RACE=1)
func Cover() error {
	if os.Getenv("NO_RACE") != "1" {
		if err := shEnv(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
			return err
		}
	} else {
		if err := sh("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
			return err
		}
	}
	fmt.Println("Coverage HTML -> coverage.html")
	return sh("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Lint: vet + staticcheck + golangci-lint
func Lint() error {
	for _, b := range []string{"staticcheck", "golangci-lint"} {
		if !which(b) {
			return fmt.Errorf("%s not found; run 'mage deps'", b)
		}
	}
	if err := sh("go", "vet", "./..."); err != nil {
		return err
	}
	if err := sh("staticcheck", "./..."); err != nil {
		return err
	}
	return sh("golangci-lint", "run")
}

// Fmt: go fmt + goimports -w
func Fmt() error {
	if err := sh("go", "fmt", "./..."); err != nil {
		return err
	}
	return sh("goimports", "-w", ".")
}

// FmtCheck: fail if formatting/imports needed
func FmtCheck() error {
	gofmtOut, _ := out("gofmt", "-l", ".")
	goimpOut, _ := out("goimports", "-l", ".")
	var msgs []string
	if gofmtOut != "" {
		msgs = append(msgs, "Needs gofmt:\n"+gofmtOut)
	}
	if goimpOut != "" {
		msgs = append(msgs, "Needs goimports:\n"+goimpOut)
	}
	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "\n"))
	}
	return nil
}

// Clean: remove build artifacts
func Clean() error {
	return os.RemoveAll(BuildDir)
}
