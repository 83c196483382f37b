package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/templates/components/core"
)

// Reports renders the reports page: generate form plus the live table.
func Reports(sh Shell, vm *presenters.ReportsPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="mb-4 text-xl font-semibold">Reports</h1>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<form hx-post="/api/reports" hx-swap="none" class="mb-6 flex items-end gap-3 rounded-lg border border-slate-200 bg-white p-4">
<label class="text-sm">Type
<select name="type" class="mt-1 block rounded-md border border-slate-300 px-3 py-1.5 text-sm">`); err != nil {
			return err
		}
		for _, reportType := range vm.Types {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, core.E(reportType), core.E(reportType)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
</label>
<button type="submit" class="rounded-md bg-blue-600 px-4 py-2 text-sm font-medium text-white">Generate</button>
</form>`); err != nil {
			return err
		}

		return ReportsTable(sh, vm).Render(ctx, w)
	})
}

// ReportsTable renders the reports table fragment, re-fetched when the SSE
// stream reports lifecycle changes.
func ReportsTable(sh Shell, vm *presenters.ReportsPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="reports-table" hx-get="/c/%s/reports/table" hx-trigger="refresh-reports from:body" hx-swap="outerHTML" class="overflow-hidden rounded-lg border border-slate-200 bg-white">
<table class="w-full text-sm">
<thead class="bg-slate-50 text-left text-xs uppercase text-slate-500">
<tr><th class="px-4 py-2">File</th><th class="px-4 py-2">Type</th><th class="px-4 py-2">Status</th><th class="px-4 py-2">Size</th><th class="px-4 py-2">Created</th><th class="px-4 py-2"></th></tr>
</thead>
<tbody class="divide-y divide-slate-100">`, core.E(sh.ClientSlug)); err != nil {
			return err
		}

		if len(vm.Reports) == 0 {
			if _, err := io.WriteString(w,
				`<tr><td colspan="6" class="px-4 py-8 text-center text-slate-500">No reports yet</td></tr>`); err != nil {
				return err
			}
		}
		for _, report := range vm.Reports {
			if _, err := fmt.Fprintf(w,
				`<tr>
<td class="px-4 py-2 font-mono text-xs">%s</td>
<td class="px-4 py-2">%s</td>
<td class="px-4 py-2"><span class="rounded-full px-2 py-0.5 text-xs %s" title="%s">%s</span></td>
<td class="px-4 py-2">%s</td>
<td class="px-4 py-2 text-slate-500">%s</td>
<td class="px-4 py-2">`,
				core.E(report.FileName), core.E(report.Type),
				core.ToneClasses(report.Tone), core.E(report.ErrorText), core.E(report.Status),
				core.E(report.FileSize), core.E(report.Created)); err != nil {
				return err
			}
			if report.CanFetch {
				if _, err := fmt.Fprintf(w,
					`<a href="%s" class="text-sm font-medium text-blue-700">Download</a>`,
					core.E(report.Download)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table></div>`)
		return err
	})
}
