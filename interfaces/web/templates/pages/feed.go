package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/templates/components/core"
	"qadash/interfaces/web/templates/components/ui"
)

// Feed renders the live event feed page. The shell script dispatches
// refresh-feed on the body when the SSE stream reports changes, which
// re-fetches the banner fragment.
func Feed(sh Shell, banners []*ui.BannerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1 class="mb-4 text-xl font-semibold">Live Feed</h1>
<div hx-get="/c/%s/feed/banners" hx-trigger="refresh-feed from:body" hx-target="#event-banners" hx-swap="outerHTML">`,
			core.E(sh.ClientSlug)); err != nil {
			return err
		}
		if err := ui.BannerStrip(banners).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
