package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/templates/components/core"
)

// BannerView is the view model for one feed event banner: headline text,
// severity styling hint, optional drill-down link and relative timestamp.
type BannerView struct {
	Headline  string
	Severity  string
	LinkLabel string
	LinkHref  string
	When      string
}

// EventBanner renders one feed event banner.
func EventBanner(view *BannerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if view == nil {
			return nil
		}
		if _, err := fmt.Fprintf(w,
			`<div class="banner flex items-center justify-between rounded-md border px-4 py-3 %s">`,
			core.ToneClasses(view.Severity)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<span class="text-sm">%s</span>`, core.E(view.Headline)); err != nil {
			return err
		}
		if view.LinkHref != "" {
			if _, err := fmt.Fprintf(w,
				`<a href="%s" class="ml-4 text-sm font-medium underline whitespace-nowrap">%s</a>`,
				core.E(view.LinkHref), core.E(view.LinkLabel)); err != nil {
				return err
			}
		}
		if view.When != "" {
			if _, err := fmt.Fprintf(w, `<span class="ml-4 text-xs text-slate-500 whitespace-nowrap">%s</span>`, core.E(view.When)); err != nil {
				return err
			}
		}
		// Dismissal is client-local only; a reload restores the banner.
		if _, err := io.WriteString(w, `<button type="button" data-banner-dismiss class="ml-3 text-slate-400 hover:text-slate-600" aria-label="Dismiss">&times;</button>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// BannerStrip renders the banner list for the live feed page.
func BannerStrip(views []*BannerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="event-banners" class="flex flex-col gap-2">`); err != nil {
			return err
		}
		if len(views) == 0 {
			if _, err := io.WriteString(w, `<div class="text-sm text-slate-500 px-4 py-6 text-center">No recent events</div>`); err != nil {
				return err
			}
		}
		for _, view := range views {
			if err := EventBanner(view).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
