package presenters

import (
	"context"
	"strings"

	"qadash/interfaces/web/templates/components/ui"
	"qadash/platform/notify"
)

// ToastPresenter renders toast notifications to HTML fragments for SSE delivery.
type ToastPresenter struct{}

// NewToastPresenter creates a toast presenter.
func NewToastPresenter() *ToastPresenter {
	return &ToastPresenter{}
}

// FormatToast renders one toast through the template system.
func (p *ToastPresenter) FormatToast(toast notify.Toast) (string, error) {
	component := ui.ToastNotification(toastView(toast))

	var buf strings.Builder
	if err := component.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToastRegion renders the full active set, oldest first, for clients
// that just connected and need the current state rather than a delta.
func (p *ToastPresenter) FormatToastRegion(toasts []notify.Toast) (string, error) {
	views := make([]ui.ToastView, 0, len(toasts))
	for _, t := range toasts {
		views = append(views, toastView(t))
	}
	component := ui.ToastRegion(views)

	var buf strings.Builder
	if err := component.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toastView(toast notify.Toast) ui.ToastView {
	return ui.ToastView{
		ID:          toast.ID,
		Title:       toast.Title,
		Description: toast.Description,
		ActionLabel: toast.ActionLabel,
		ActionHref:  toast.ActionHref,
		Variant:     string(toast.Variant),
	}
}
