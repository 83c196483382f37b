package shell

import "fmt"

// NavItem is one entry in the sidebar navigation. Items are immutable and
// supplied by the page composing the shell.
type NavItem struct {
	Label       string
	Href        string
	Icon        string
	Description string
}

// CommandItem is a palette entry derived 1:1 from a NavItem. Its identity is
// the href.
type CommandItem struct {
	Label       string
	Href        string
	Description string
}

// NavItems returns the per-tenant navigation set in display order.
func NavItems(clientSlug string) []NavItem {
	base := "/c/" + clientSlug
	return []NavItem{
		{Label: "Live Feed", Href: base + "/feed", Icon: "activity", Description: "Real-time inspection events"},
		{Label: "Lots", Href: base + "/lots", Icon: "package", Description: "Production lots and approvals"},
		{Label: "Analytics", Href: base + "/analytics", Icon: "bar-chart", Description: "Defect and throughput charts"},
		{Label: "Reports", Href: base + "/reports", Icon: "file-text", Description: "Generated exports"},
		{Label: "Devices", Href: base + "/devices", Icon: "cpu", Description: "Inspection stations and operators"},
	}
}

// Commands derives the palette items from navigation items.
func Commands(items []NavItem) []CommandItem {
	commands := make([]CommandItem, 0, len(items))
	for _, item := range items {
		commands = append(commands, CommandItem{
			Label:       item.Label,
			Href:        item.Href,
			Description: item.Description,
		})
	}
	return commands
}

// Breadcrumb is one segment of the topbar trail.
type Breadcrumb struct {
	Label string
	Href  string
}

// LotBreadcrumbs builds the trail for a lot detail page.
func LotBreadcrumbs(clientSlug string, lotID int64) []Breadcrumb {
	return []Breadcrumb{
		{Label: "Lots", Href: fmt.Sprintf("/c/%s/lots", clientSlug)},
		{Label: fmt.Sprintf("Lot %d", lotID), Href: fmt.Sprintf("/c/%s/lots/%d", clientSlug, lotID)},
	}
}
