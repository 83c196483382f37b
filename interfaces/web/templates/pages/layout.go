// Package pages composes full page templates from components.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/shell"
	"qadash/interfaces/web/templates/components/core"
	"qadash/interfaces/web/templates/components/ui"
)

// Shell bundles what every tenant page needs: slug for links, active nav
// entry, and the breadcrumb trail.
type Shell struct {
	ClientSlug  string
	ClientName  string
	Active      string
	Breadcrumbs []shell.Breadcrumb
}

// Layout renders the full page: head, sidebar, topbar, content, toast region
// and the command palette. The SSE subscription and keyboard handling live in
// the embedded shell script, mounted once per full page load.
func Layout(sh Shell, title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · QA Dashboard</title>
<link rel="stylesheet" href="/assets/css/app.css">
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
</head>
<body class="bg-slate-50 text-slate-900">`, core.E(title)); err != nil {
			return err
		}

		if err := sidebar(sh).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="ml-56 min-h-screen">`); err != nil {
			return err
		}
		if err := topbar(sh).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="p-6" id="page-content">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></main>`); err != nil {
			return err
		}

		if err := mobileDrawer(sh).Render(ctx, w); err != nil {
			return err
		}

		// Toast region mount point, swapped wholesale by SSE pushes
		if err := ui.ToastRegion(nil).Render(ctx, w); err != nil {
			return err
		}
		if err := ui.CommandPalette(sh.ClientSlug, shell.Commands(shell.NavItems(sh.ClientSlug))).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<script src="/assets/js/shell.js"></script>
</body>
</html>`)
		return err
	})
}

func sidebar(sh Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<aside class="fixed inset-y-0 left-0 w-56 border-r border-slate-200 bg-white">
<div class="px-4 py-5 font-semibold">%s</div>
<nav class="flex flex-col gap-1 px-2">`, core.E(sh.ClientName)); err != nil {
			return err
		}
		for _, item := range shell.NavItems(sh.ClientSlug) {
			if _, err := fmt.Fprintf(w,
				`<a href="%s" class="rounded-md px-3 py-2 text-sm %s">%s</a>`,
				core.E(item.Href), core.IsActive(sh.Active, item.Label), core.E(item.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav></aside>`)
		return err
	})
}

// mobileDrawer renders the slide-over navigation used below the desktop
// breakpoint. Hidden by default; the shell script toggles it independently
// of the command palette.
func mobileDrawer(sh Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="mobile-drawer" class="mobile-drawer hidden">
<div class="mobile-drawer-backdrop"></div>
<div class="mobile-drawer-panel">
<div class="px-3 py-2 font-semibold">%s</div>
<nav class="flex flex-col gap-1">`, core.E(sh.ClientName)); err != nil {
			return err
		}
		for _, item := range shell.NavItems(sh.ClientSlug) {
			if _, err := fmt.Fprintf(w,
				`<a href="%s" class="rounded-md px-3 py-2 text-sm %s">%s</a>`,
				core.E(item.Href), core.IsActive(sh.Active, item.Label), core.E(item.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav></div></div>`)
		return err
	})
}

func topbar(sh Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<header class="flex items-center justify-between border-b border-slate-200 bg-white px-6 py-3">
<button id="drawer-trigger" class="drawer-trigger rounded-md border border-slate-200 px-3 py-1.5 text-sm text-slate-500" aria-label="Open navigation">&#9776;</button>
<nav class="flex items-center gap-2 text-sm text-slate-500">`); err != nil {
			return err
		}
		for i, crumb := range sh.Breadcrumbs {
			if i > 0 {
				if _, err := io.WriteString(w, `<span>/</span>`); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `<a href="%s" class="hover:text-slate-900">%s</a>`,
				core.E(crumb.Href), core.E(crumb.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`</nav>
<button id="palette-trigger" class="rounded-md border border-slate-200 px-3 py-1.5 text-sm text-slate-500">Search&nbsp;<kbd class="text-xs">⌘K</kbd></button>
</header>`)
		return err
	})
}
