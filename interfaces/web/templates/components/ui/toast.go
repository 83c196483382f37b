// Package ui holds reusable template components.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/templates/components/core"
)

// ToastView is the view model for one toast notification.
type ToastView struct {
	ID          string
	Title       string
	Description string
	ActionLabel string
	ActionHref  string
	Variant     string
}

// ToastNotification renders a single toast. The fragment carries the toast id
// so HTMX swaps replace an existing toast in place instead of appending.
func ToastNotification(view ToastView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="toast-%s" class="toast rounded-lg border p-4 shadow-md %s" role="status">`,
			core.E(view.ID), core.ToneClasses(view.Variant)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<div class="font-medium">%s</div>`, core.E(view.Title)); err != nil {
			return err
		}
		if view.Description != "" {
			if _, err := fmt.Fprintf(w, `<div class="mt-1 text-sm">%s</div>`, core.E(view.Description)); err != nil {
				return err
			}
		}
		if view.ActionLabel != "" && view.ActionHref != "" {
			if _, err := fmt.Fprintf(w,
				`<a href="%s" class="mt-2 inline-block text-sm font-medium underline">%s</a>`,
				core.E(view.ActionHref), core.E(view.ActionLabel)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<button class="toast-dismiss absolute top-2 right-2" hx-delete="/api/toasts/%s" hx-swap="none" aria-label="Dismiss">&times;</button>`,
			core.E(view.ID)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ToastRegion renders the full active toast set inside the fixed container.
// The container id is stable so repeated swaps stay idempotent.
func ToastRegion(views []ToastView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<div id="toast-region" class="fixed bottom-4 right-4 z-50 flex flex-col gap-2 w-80">`); err != nil {
			return err
		}
		for _, view := range views {
			if err := ToastNotification(view).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
