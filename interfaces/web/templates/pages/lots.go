package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/templates/components/core"
)

// Lots renders the lots table page with status filter and search.
func Lots(sh Shell, vm *presenters.LotsPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="mb-4 text-xl font-semibold">Lots</h1>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<form class="mb-4 flex gap-3" hx-get="/c/%s/lots/table" hx-trigger="change from:find select, input changed delay:300ms from:find input" hx-target="#lots-table" hx-swap="outerHTML">
<select name="status" class="rounded-md border border-slate-300 px-3 py-1.5 text-sm">
<option value="">All statuses</option>`, core.E(sh.ClientSlug)); err != nil {
			return err
		}
		for _, status := range vm.Statuses {
			selected := ""
			if status == vm.StatusFilter {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, core.E(status), selected, core.E(status)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</select>
<input type="search" name="search" value="%s" placeholder="Search style or factory..." class="w-64 rounded-md border border-slate-300 px-3 py-1.5 text-sm">
</form>`, core.E(vm.Search)); err != nil {
			return err
		}

		if err := LotsTable(sh, vm).Render(ctx, w); err != nil {
			return err
		}
		return nil
	})
}

// LotsTable renders just the table, also served as an HTMX fragment for
// filter changes and SSE refreshes.
func LotsTable(sh Shell, vm *presenters.LotsPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="lots-table" hx-get="/c/%s/lots/table" hx-trigger="refresh-lots from:body" hx-swap="outerHTML" class="overflow-hidden rounded-lg border border-slate-200 bg-white">
<table class="w-full text-sm">
<thead class="bg-slate-50 text-left text-xs uppercase text-slate-500">
<tr><th class="px-4 py-2">Style</th><th class="px-4 py-2">Factory</th><th class="px-4 py-2">Status</th><th class="px-4 py-2">Progress</th><th class="px-4 py-2">Defect rate</th><th class="px-4 py-2">Created</th></tr>
</thead>
<tbody class="divide-y divide-slate-100">`, core.E(sh.ClientSlug)); err != nil {
			return err
		}

		if len(vm.Lots) == 0 {
			if _, err := io.WriteString(w,
				`<tr><td colspan="6" class="px-4 py-8 text-center text-slate-500">No lots match the current filter</td></tr>`); err != nil {
				return err
			}
		}
		for _, lot := range vm.Lots {
			if _, err := fmt.Fprintf(w,
				`<tr class="hover:bg-slate-50">
<td class="px-4 py-2"><a href="%s" class="font-medium text-blue-700">%s</a></td>
<td class="px-4 py-2">%s</td>
<td class="px-4 py-2"><span class="rounded-full px-2 py-0.5 text-xs %s">%s</span></td>
<td class="px-4 py-2">%d%%</td>
<td class="px-4 py-2">%s</td>
<td class="px-4 py-2 text-slate-500">%s</td>
</tr>`,
				core.E(lot.Href), core.E(lot.StyleRef), core.E(lot.Factory),
				core.ToneClasses(lot.StatusTone), core.E(lot.Status),
				lot.Progress, core.E(lot.DefectRate), core.E(lot.Created)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table></div>`)
		return err
	})
}

// LotDetail renders one lot with its approval action when actionable.
func LotDetail(sh Shell, lot presenters.LotRowView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1 class="mb-4 text-xl font-semibold">%s</h1>
<dl class="grid max-w-md grid-cols-2 gap-y-3 rounded-lg border border-slate-200 bg-white p-6 text-sm">
<dt class="text-slate-500">Factory</dt><dd>%s</dd>
<dt class="text-slate-500">Status</dt><dd><span class="rounded-full px-2 py-0.5 text-xs %s">%s</span></dd>
<dt class="text-slate-500">Progress</dt><dd>%d%%</dd>
<dt class="text-slate-500">Defect rate</dt><dd>%s</dd>
</dl>`,
			core.E(lot.StyleRef), core.E(lot.Factory),
			core.ToneClasses(lot.StatusTone), core.E(lot.Status),
			lot.Progress, core.E(lot.DefectRate)); err != nil {
			return err
		}

		if lot.Actionable {
			if _, err := fmt.Fprintf(w,
				`<button hx-post="/c/%s/lots/%d/approve" hx-swap="none" class="mt-4 rounded-md bg-green-600 px-4 py-2 text-sm font-medium text-white">Approve lot</button>`,
				core.E(sh.ClientSlug), lot.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
