// Package core holds helpers shared by template components.
package core

import "html"

// E escapes text for interpolation into HTML.
func E(s string) string {
	return html.EscapeString(s)
}

// IsActive returns the nav link classes for the active page.
func IsActive(active, name string) string {
	if active == name {
		return "bg-blue-50 text-blue-700 border-b-2 border-blue-600 font-medium"
	}
	return "text-slate-600 hover:text-slate-900"
}

// ToneClasses maps a severity tone to badge classes.
func ToneClasses(tone string) string {
	switch tone {
	case "success":
		return "bg-green-100 text-green-800"
	case "warning":
		return "bg-amber-100 text-amber-800"
	case "danger":
		return "bg-red-100 text-red-800"
	}
	return "bg-slate-100 text-slate-700"
}
