// ABOUTME: Ordered label -> sink index mapping built from one listing pass.
// ABOUTME: Provides lookup, narrowing to an allow-list and next-device cycling.

package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrUnknownDevice is wrapped by UnknownDeviceError
	ErrUnknownDevice = errors.New("unknown device")
	// ErrNoDevices means there is nothing to select from
	ErrNoDevices = errors.New("no audio output devices")
)

// Device is a sink as seen by the sound server
type Device struct {
	Label string
	Index int
}

// UnknownDeviceError reports a requested label that is not in the inventory
type UnknownDeviceError struct {
	Label   string
	Choices []string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("%s is not a valid choice (choose from: %s)", e.Label, strings.Join(e.Choices, ", "))
}

func (e *UnknownDeviceError) Unwrap() error {
	return ErrUnknownDevice
}

// Inventory keeps devices in the order they were added. Labels are unique.
// The zero value is an empty inventory ready to use.
type Inventory struct {
	devices []Device
	byLabel map[string]int
}

// New builds an inventory from devices. A repeated label keeps its first
// position and takes the later index.
func New(devices ...Device) *Inventory {
	inv := &Inventory{}
	for _, d := range devices {
		inv.Add(d)
	}
	return inv
}

// Add appends d. If the label is already present its entry keeps its
// position, takes d.Index, and Add returns false.
func (inv *Inventory) Add(d Device) bool {
	if inv.byLabel == nil {
		inv.byLabel = make(map[string]int)
	}
	if pos, exists := inv.byLabel[d.Label]; exists {
		inv.devices[pos].Index = d.Index
		return false
	}
	inv.byLabel[d.Label] = len(inv.devices)
	inv.devices = append(inv.devices, d)
	return true
}

// Len returns the number of devices
func (inv *Inventory) Len() int {
	return len(inv.devices)
}

// Devices returns a copy of the devices in order
func (inv *Inventory) Devices() []Device {
	return append([]Device(nil), inv.devices...)
}

// Labels returns device labels in order
func (inv *Inventory) Labels() []string {
	return lo.Map(inv.devices, func(d Device, _ int) string { return d.Label })
}

// Lookup returns the device with the given label
func (inv *Inventory) Lookup(label string) (Device, bool) {
	pos, ok := inv.byLabel[label]
	if !ok {
		return Device{}, false
	}
	return inv.devices[pos], true
}

// Require is Lookup that fails with *UnknownDeviceError
func (inv *Inventory) Require(label string) (Device, error) {
	d, ok := inv.Lookup(label)
	if !ok {
		return Device{}, &UnknownDeviceError{Label: label, Choices: inv.Labels()}
	}
	return d, nil
}

// Restrict returns a new inventory containing exactly labels, in that order.
// Every label must exist; the first missing one is reported. Repeated labels
// collapse to their first position.
func (inv *Inventory) Restrict(labels []string) (*Inventory, error) {
	out := &Inventory{}
	for _, label := range labels {
		d, err := inv.Require(label)
		if err != nil {
			return nil, err
		}
		out.Add(d)
	}
	return out, nil
}

// Next returns the device after current, wrapping to the first device when
// current is last. If current is not present the first device is returned.
func (inv *Inventory) Next(current string) (Device, error) {
	if len(inv.devices) == 0 {
		return Device{}, ErrNoDevices
	}
	pos, ok := inv.byLabel[current]
	if !ok {
		return inv.devices[0], nil
	}
	return inv.devices[(pos+1)%len(inv.devices)], nil
}
