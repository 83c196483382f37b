package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/templates/components/core"
)

// Analytics renders the analytics page: headline stats, status distribution
// and the defect breakdown bars.
func Analytics(sh Shell, vm *presenters.AnalyticsPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="mb-4 text-xl font-semibold">Analytics</h1>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`<div class="mb-6 grid grid-cols-4 gap-4">
%s%s%s%s</div>`,
			statCard("Total lots", fmt.Sprintf("%d", vm.TotalLots)),
			statCard("Total defects", fmt.Sprintf("%d", vm.TotalDefects)),
			statCard("Defect rate", vm.DefectRate),
			statCard("Active devices", fmt.Sprintf("%d", vm.ActiveDevices))); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<div class="grid grid-cols-2 gap-6">
<section class="rounded-lg border border-slate-200 bg-white p-4">
<h2 class="mb-3 text-sm font-semibold">Lots by status</h2>
<ul class="flex flex-col gap-2 text-sm">`); err != nil {
			return err
		}
		for _, sc := range vm.StatusCounts {
			if _, err := fmt.Fprintf(w,
				`<li class="flex items-center justify-between"><span class="rounded-full px-2 py-0.5 text-xs %s">%s</span><span>%d</span></li>`,
				core.ToneClasses(sc.Tone), core.E(sc.Label), sc.Count); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`</ul>
</section>
<section class="rounded-lg border border-slate-200 bg-white p-4">
<h2 class="mb-3 text-sm font-semibold">Defects by type</h2>
<ul class="flex flex-col gap-2 text-sm">`); err != nil {
			return err
		}
		if len(vm.DefectBars) == 0 {
			if _, err := io.WriteString(w, `<li class="text-slate-500">No defects recorded</li>`); err != nil {
				return err
			}
		}
		for _, bar := range vm.DefectBars {
			if _, err := fmt.Fprintf(w,
				`<li><div class="mb-1 flex justify-between"><span>%s</span><span>%d</span></div><div class="h-2 rounded bg-slate-100"><div class="h-2 rounded bg-red-400" style="width: %d%%"></div></div></li>`,
				core.E(bar.Label), bar.Count, bar.Percent); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></section></div>`)
		return err
	})
}

func statCard(label, value string) string {
	return fmt.Sprintf(
		`<div class="rounded-lg border border-slate-200 bg-white p-4"><div class="text-xs uppercase text-slate-500">%s</div><div class="mt-1 text-2xl font-semibold">%s</div></div>`,
		core.E(label), core.E(value))
}
