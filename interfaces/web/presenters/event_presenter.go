package presenters

import (
	"fmt"
	"strings"

	"qadash/domain/events"
	"qadash/interfaces/web/templates/components/ui"
)

// EventPresenter turns decoded feed events into banner view models.
type EventPresenter struct{}

// NewEventPresenter creates an event presenter.
func NewEventPresenter() *EventPresenter {
	return &EventPresenter{}
}

// ToBanner renders one decoded event. Returns nil for variants the banner
// strip does not display (there are none today, but callers must tolerate it).
func (p *EventPresenter) ToBanner(clientSlug string, event events.FeedEvent) *ui.BannerView {
	if event == nil {
		return nil
	}

	switch e := event.(type) {
	case events.DefectDetected:
		view := &ui.BannerView{
			Headline: fmt.Sprintf("%s defect found in garment %s", strings.ToUpper(e.DefectType), e.GarmentSerial),
			Severity: "danger",
			When:     FormatRelativeTime(e.At),
		}
		if e.LotID != "" {
			view.LinkLabel = "View lot " + e.LotID
			view.LinkHref = fmt.Sprintf("/c/%s/lots/%s", clientSlug, e.LotID)
		}
		return view
	case events.LotAwaitingApproval:
		return &ui.BannerView{
			Headline:  fmt.Sprintf("Lot %s (%s) is awaiting approval", e.LotID, e.StyleRef),
			Severity:  "warning",
			LinkLabel: "Review",
			LinkHref:  fmt.Sprintf("/c/%s/lots/%s", clientSlug, e.LotID),
			When:      FormatRelativeTime(e.At),
		}
	case events.LotApproved:
		return &ui.BannerView{
			Headline:  fmt.Sprintf("Lot %s approved", e.LotID),
			Severity:  "success",
			LinkLabel: "View lot " + e.LotID,
			LinkHref:  fmt.Sprintf("/c/%s/lots/%s", clientSlug, e.LotID),
			When:      FormatRelativeTime(e.At),
		}
	case events.DeviceOffline:
		return &ui.BannerView{
			Headline: fmt.Sprintf("Device %s went offline", e.DeviceName),
			Severity: "warning",
			When:     FormatRelativeTime(e.At),
		}
	}
	return nil
}

// ToBanners renders a batch of events, preserving order.
func (p *EventPresenter) ToBanners(clientSlug string, feed []events.FeedEvent) []*ui.BannerView {
	views := make([]*ui.BannerView, 0, len(feed))
	for _, event := range feed {
		if view := p.ToBanner(clientSlug, event); view != nil {
			views = append(views, view)
		}
	}
	return views
}
