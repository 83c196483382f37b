// Command smoketest exercises the report lifecycle against a running server:
// sign in, request a report, poll it to completion, verify the stored
// artifact and download it. Exits non-zero on the first failure, making it
// suitable for CI and deploy checks.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"qadash/infrastructure/apiclient"
)

var (
	flagBaseURL    string
	flagEmail      string
	flagPassword   string
	flagReportType string
	flagTimeout    time.Duration
)

func main() {
	root := &cobra.Command{
		Use:          "smoketest",
		Short:        "End-to-end report lifecycle check against a running dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
			defer cancel()
			return run(ctx)
		},
	}

	root.Flags().StringVar(&flagBaseURL, "base-url", "http://localhost:8080", "server base URL")
	root.Flags().StringVar(&flagEmail, "email", "", "login email")
	root.Flags().StringVar(&flagPassword, "password", "", "login password")
	root.Flags().StringVar(&flagReportType, "type", "lot_summary", "report type to generate")
	root.Flags().DurationVar(&flagTimeout, "timeout", 3*time.Minute, "overall deadline")
	root.MarkFlagRequired("email")
	root.MarkFlagRequired("password")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "smoketest failed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	client := apiclient.New(flagBaseURL)

	step("Checking server health")
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	step("Signing in as %s", flagEmail)
	if err := client.Login(ctx, flagEmail, flagPassword); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("  workspace: %s\n", client.ClientSlug())

	step("Listing existing reports")
	before, err := client.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	fmt.Printf("  %d reports before\n", len(before.Reports))

	step("Requesting %s report", flagReportType)
	created, err := client.CreateReport(ctx, flagReportType, nil)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if created.Status != "PENDING" {
		return fmt.Errorf("expected PENDING report, got %s", created.Status)
	}
	fmt.Printf("  report id: %s\n", created.ID)

	step("Polling until terminal")
	report, err := client.PollReport(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("poll report: %w", err)
	}
	fmt.Printf("  status: %s, file: %s (%d bytes)\n", report.Status, report.FileName, report.FileSize)

	step("Verifying stored artifact")
	verify, err := client.VerifyReport(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("verify artifact: %w", err)
	}
	if !verify.Exists {
		return fmt.Errorf("artifact missing for report %s", created.ID)
	}
	if verify.Size != report.FileSize {
		return fmt.Errorf("artifact size %d does not match report %d", verify.Size, report.FileSize)
	}

	step("Downloading artifact")
	content, err := client.DownloadReport(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("download report: %w", err)
	}
	if int64(len(content)) != report.FileSize {
		return fmt.Errorf("downloaded %d bytes, expected %d", len(content), report.FileSize)
	}

	step("Confirming the report shows up in the list")
	after, err := client.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	found := false
	for _, r := range after.Reports {
		if r.ID == created.ID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("report %s missing from list", created.ID)
	}

	fmt.Println("\nAll checks passed")
	return nil
}

func step(format string, args ...any) {
	fmt.Printf("==> "+format+"\n", args...)
}
