package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"qadash/interfaces/web/presenters"
	"qadash/interfaces/web/templates/components/core"
)

// Devices renders the devices grid with operator assignments.
func Devices(sh Shell, vm *presenters.DevicesPageVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="mb-4 flex items-baseline justify-between">
<h1 class="text-xl font-semibold">Devices</h1>
<span class="text-sm text-slate-500">%d of %d online</span>
</div>
<div class="grid grid-cols-3 gap-4">`, vm.Online, vm.Total); err != nil {
			return err
		}

		if len(vm.Devices) == 0 {
			if _, err := io.WriteString(w,
				`<div class="col-span-3 rounded-lg border border-slate-200 bg-white p-8 text-center text-sm text-slate-500">No devices registered</div>`); err != nil {
				return err
			}
		}
		for _, device := range vm.Devices {
			statusTone := "danger"
			if device.Online {
				statusTone = "success"
			}
			operator := device.OperatorName
			if operator == "" {
				operator = "Unassigned"
			}
			if _, err := fmt.Fprintf(w,
				`<div class="rounded-lg border border-slate-200 bg-white p-4">
<div class="flex items-center justify-between">
<span class="font-medium">%s</span>
<span class="rounded-full px-2 py-0.5 text-xs %s">%s</span>
</div>
<div class="mt-1 text-sm text-slate-500">%s</div>
<div class="mt-3 text-sm">Operator: <span class="font-medium">%s</span></div>
<div class="mt-1 text-xs text-slate-400">Last seen %s</div>
</div>`,
				core.E(device.Name), core.ToneClasses(statusTone), core.E(device.StatusLabel),
				core.E(device.Location), core.E(operator), core.E(device.LastSeen)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
