package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/shell"
	"qadash/interfaces/web/templates/components/core"
)

// PaletteResults renders the filtered command list. It is swapped into the
// dialog on every keystroke via HTMX.
func PaletteResults(commands []shell.CommandItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul id="palette-results" class="max-h-72 overflow-y-auto divide-y divide-slate-100">`); err != nil {
			return err
		}
		if len(commands) == 0 {
			if _, err := io.WriteString(w, `<li class="px-4 py-6 text-sm text-slate-500 text-center">No matching commands</li>`); err != nil {
				return err
			}
		}
		for _, cmd := range commands {
			if _, err := fmt.Fprintf(w,
				`<li><a href="%s" class="palette-item block px-4 py-3 hover:bg-slate-50"><div class="font-medium text-sm">%s</div><div class="text-xs text-slate-500">%s</div></a></li>`,
				core.E(cmd.Href), core.E(cmd.Label), core.E(cmd.Description)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// CommandPalette renders the palette dialog shell. It starts hidden; the
// embedded shell script toggles it on Cmd/Ctrl+K and Escape.
func CommandPalette(clientSlug string, commands []shell.CommandItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<div id="command-palette" class="hidden fixed inset-0 z-40 bg-black/40 flex items-start justify-center pt-24" role="dialog" aria-modal="true">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="w-full max-w-lg rounded-lg bg-white shadow-xl">`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<input id="palette-input" type="text" name="q" placeholder="Search commands..." autocomplete="off"`+
				` class="w-full border-b border-slate-200 px-4 py-3 text-sm focus:outline-none"`+
				` hx-get="/c/%s/palette" hx-trigger="input changed delay:100ms" hx-target="#palette-results" hx-swap="outerHTML">`,
			core.E(clientSlug)); err != nil {
			return err
		}
		if err := PaletteResults(commands).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}
