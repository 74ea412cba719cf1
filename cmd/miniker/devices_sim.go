//go:build !miniker_mmio

package main

import (
	"github.com/jessielea/miniker/device"
	"github.com/jessielea/miniker/kernel"
)

// newDevices wires the in-memory device doubles. This is the default
// build: it's the only device set that runs on a development machine,
// since MMIOTimer/MMIOIRQController/MMIOUART poke real hardware
// registers at fixed physical addresses.
func newDevices() kernel.Devices {
	return kernel.Devices{
		Timer: device.NewSimTimer(),
		IRQC:  device.NewSimIRQController(),
		UART:  device.NewSimUART(),
	}
}
