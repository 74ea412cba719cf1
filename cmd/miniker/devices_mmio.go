//go:build miniker_mmio

package main

import (
	"github.com/jessielea/miniker/device"
	"github.com/jessielea/miniker/kernel"
)

// newDevices wires the real MMIO device set. Built only with
// -tags miniker_mmio, on the target hardware.
func newDevices() kernel.Devices {
	return kernel.Devices{
		Timer: device.NewMMIOTimer(),
		IRQC:  device.NewMMIOIRQController(),
		UART:  device.NewMMIOUART(),
	}
}
