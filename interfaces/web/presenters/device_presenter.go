package presenters

import (
	"qadash/domain/qa"
)

// DeviceCardView is one card in the devices grid. OperatorName is empty when
// no operator is assigned, which the card renders as "Unassigned".
type DeviceCardView struct {
	Name         string
	Location     string
	Online       bool
	StatusLabel  string
	OperatorName string
	LastSeen     string
}

// DevicesPageVM is the view model for the devices page.
type DevicesPageVM struct {
	Devices []DeviceCardView
	Online  int
	Total   int
}

// DevicePresenter transforms device data for UI display.
type DevicePresenter struct{}

// NewDevicePresenter creates a device presenter.
func NewDevicePresenter() *DevicePresenter {
	return &DevicePresenter{}
}

// ToDevicesPage converts device cards to the devices page view model.
func (p *DevicePresenter) ToDevicesPage(cards []*qa.DeviceCard) *DevicesPageVM {
	vm := &DevicesPageVM{
		Devices: make([]DeviceCardView, 0, len(cards)),
		Total:   len(cards),
	}
	for _, card := range cards {
		view := DeviceCardView{
			Name:        card.Device.Name,
			Location:    card.Device.Location,
			Online:      card.Device.Online,
			StatusLabel: "Offline",
		}
		if card.Device.Online {
			view.StatusLabel = "Online"
			vm.Online++
		}
		if card.Operator != nil {
			view.OperatorName = card.Operator.Name
		}
		if card.Device.LastSeen != nil {
			view.LastSeen = FormatRelativeTime(*card.Device.LastSeen)
		}
		vm.Devices = append(vm.Devices, view)
	}
	return vm
}
