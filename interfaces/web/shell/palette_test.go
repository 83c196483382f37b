package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler captures scheduled callbacks so tests control firing.
type manualScheduler struct {
	pending   []func()
	cancelled int
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	s.pending = append(s.pending, fn)
	return func() { s.cancelled++ }
}

func (s *manualScheduler) fireAll() {
	for _, fn := range s.pending {
		fn()
	}
	s.pending = nil
}

func testCommands() []CommandItem {
	return []CommandItem{
		{Label: "Live Feed", Href: "/c/acme/feed"},
		{Label: "Lots", Href: "/c/acme/lots"},
		{Label: "Analytics", Href: "/c/acme/analytics"},
	}
}

func labels(items []CommandItem) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, item.Label)
	}
	return result
}

func TestFilterCommands_EmptyQueryReturnsAll(t *testing.T) {
	items := testCommands()

	assert.Equal(t, items, FilterCommands(items, ""))
	assert.Equal(t, items, FilterCommands(items, "   "))
}

func TestFilterCommands_CaseInsensitiveLabelSubstring(t *testing.T) {
	items := testCommands()

	assert.Equal(t, []string{"Lots"}, labels(FilterCommands(items, "lot")))
	assert.Equal(t, []string{"Lots"}, labels(FilterCommands(items, "LOT")))
	assert.Empty(t, labels(FilterCommands(items, "reports")))
}

func TestFilterCommands_MatchesDescription(t *testing.T) {
	items := []CommandItem{
		{Label: "Lots", Description: "Production lots and approvals"},
		{Label: "Reports", Description: "Generated exports"},
	}

	assert.Equal(t, []string{"Lots"}, labels(FilterCommands(items, "approval")))
	assert.Equal(t, []string{"Reports"}, labels(FilterCommands(items, "EXPORT")))
}

func TestFilterCommands_PreservesInputOrder(t *testing.T) {
	items := []CommandItem{
		{Label: "Analytics", Description: "charts"},
		{Label: "Lots", Description: "charts"},
		{Label: "Devices", Description: "charts"},
	}

	assert.Equal(t, []string{"Analytics", "Lots", "Devices"}, labels(FilterCommands(items, "charts")))
}

func TestPalette_ToggleIsIdempotentToggleNotOpenOnly(t *testing.T) {
	palette := NewPalette(testCommands(), &manualScheduler{}, func() {})

	palette.Toggle()
	assert.True(t, palette.IsOpen())

	// Toggling while open closes; the shortcut is not open-only
	palette.Toggle()
	assert.False(t, palette.IsOpen())
}

func TestPalette_QueryResetsOnClose(t *testing.T) {
	palette := NewPalette(testCommands(), &manualScheduler{}, nil)

	palette.Open()
	palette.SetQuery("lot")
	require.Equal(t, []string{"Lots"}, labels(palette.Results()))

	palette.Close()
	assert.Empty(t, palette.Query())

	palette.Open()
	assert.Equal(t, 3, len(palette.Results()))
}

func TestPalette_SetQueryIgnoredWhileClosed(t *testing.T) {
	palette := NewPalette(testCommands(), &manualScheduler{}, nil)

	palette.SetQuery("lot")
	assert.Empty(t, palette.Query())
}

func TestPalette_FocusIsDeferredAndCancelledOnClose(t *testing.T) {
	scheduler := &manualScheduler{}
	focused := 0
	palette := NewPalette(testCommands(), scheduler, func() { focused++ })

	palette.Open()
	// Focus has been scheduled but not yet requested
	assert.Equal(t, 0, focused)
	require.Len(t, scheduler.pending, 1)

	// Closing before the callback fires cancels the token
	palette.Close()
	assert.Equal(t, 1, scheduler.cancelled)

	// Reopening schedules a fresh callback which then fires
	palette.Open()
	scheduler.fireAll()
	assert.Equal(t, 1, focused)
}

func TestPalette_SelectClosesPalette(t *testing.T) {
	palette := NewPalette(testCommands(), &manualScheduler{}, nil)

	palette.Open()
	palette.Select(CommandItem{Label: "Lots", Href: "/c/acme/lots"})

	assert.False(t, palette.IsOpen())
}

func TestCommands_DeriveFromNavItems(t *testing.T) {
	nav := NavItems("acme")
	commands := Commands(nav)

	require.Equal(t, len(nav), len(commands))
	for i := range nav {
		assert.Equal(t, nav[i].Label, commands[i].Label)
		assert.Equal(t, nav[i].Href, commands[i].Href)
	}
	assert.Equal(t, "/c/acme/lots", commands[1].Href)
}
