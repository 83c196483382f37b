package presenters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qadash/domain/events"
)

func TestEventPresenter_ToBanner_DefectDetected(t *testing.T) {
	presenter := NewEventPresenter()

	view := presenter.ToBanner("acme", events.DefectDetected{
		DefectType:    "stain",
		GarmentSerial: "G123",
		LotID:         "L1",
		At:            time.Now(),
	})

	require.NotNil(t, view)
	assert.Equal(t, "STAIN defect found in garment G123", view.Headline)
	assert.Equal(t, "danger", view.Severity)
	assert.Equal(t, "/c/acme/lots/L1", view.LinkHref)
	assert.Equal(t, "View lot L1", view.LinkLabel)
	assert.Equal(t, "just now", view.When)
}

func TestEventPresenter_ToBanner_DefectWithoutLot(t *testing.T) {
	presenter := NewEventPresenter()

	view := presenter.ToBanner("acme", events.DefectDetected{
		DefectType:    "tear",
		GarmentSerial: events.FallbackNotApplicable,
		At:            time.Now(),
	})

	require.NotNil(t, view)
	assert.Equal(t, "TEAR defect found in garment N/A", view.Headline)
	assert.Empty(t, view.LinkHref, "No drill-down link without a lot id")
}

func TestEventPresenter_ToBanner_LotLifecycle(t *testing.T) {
	presenter := NewEventPresenter()

	awaiting := presenter.ToBanner("acme", events.LotAwaitingApproval{LotID: "L7", StyleRef: "ST-22", At: time.Now()})
	require.NotNil(t, awaiting)
	assert.Equal(t, "Lot L7 (ST-22) is awaiting approval", awaiting.Headline)
	assert.Equal(t, "warning", awaiting.Severity)
	assert.Equal(t, "/c/acme/lots/L7", awaiting.LinkHref)

	approved := presenter.ToBanner("acme", events.LotApproved{LotID: "L7", At: time.Now()})
	require.NotNil(t, approved)
	assert.Equal(t, "Lot L7 approved", approved.Headline)
	assert.Equal(t, "success", approved.Severity)
}

func TestEventPresenter_ToBanner_DeviceOffline(t *testing.T) {
	presenter := NewEventPresenter()

	view := presenter.ToBanner("acme", events.DeviceOffline{DeviceName: "Station 4", At: time.Now()})

	require.NotNil(t, view)
	assert.Equal(t, "Device Station 4 went offline", view.Headline)
	assert.Equal(t, "warning", view.Severity)
	assert.Empty(t, view.LinkHref)
}

func TestEventPresenter_ToBanner_NilEvent(t *testing.T) {
	presenter := NewEventPresenter()

	assert.Nil(t, presenter.ToBanner("acme", nil))
}

func TestEventPresenter_ToBanners_PreservesOrder(t *testing.T) {
	presenter := NewEventPresenter()

	views := presenter.ToBanners("acme", []events.FeedEvent{
		events.LotApproved{LotID: "L1", At: time.Now()},
		events.DeviceOffline{DeviceName: "Station 2", At: time.Now()},
	})

	require.Len(t, views, 2)
	assert.Equal(t, "Lot L1 approved", views[0].Headline)
	assert.Equal(t, "Device Station 2 went offline", views[1].Headline)
}
