//go:build miniker_mmio

package device

import "unsafe"

// MMIO register addresses for the target platform: a generic-timer-style
// peripheral, a GICv2-style distributor/CPU-interface pair, and a
// PL011-style UART. These addresses and offsets follow the original
// source's TIMER0/GICC0/GICD0/UART0 register layout and the pack's
// GICv2 reference (gic_qemu.go's GICD_*/GICC_* offsets).
const (
	timerBase = 0x1c110000
	timerLoad = timerBase + 0x00
	timerCtrl = timerBase + 0x08
	timerIntClr = timerBase + 0x0c

	gicDistBase = 0x08000000
	gicdISENABLERn = gicDistBase + 0x100
	gicdCTLR       = gicDistBase + 0x000

	gicCPUBase = 0x08010000
	giccPMR  = gicCPUBase + 0x004
	giccCTLR = gicCPUBase + 0x000
	giccIAR  = gicCPUBase + 0x00c
	giccEOIR = gicCPUBase + 0x010

	uartBase = 0x1c090000
	uartDR   = uartBase + 0x00
	uartFR   = uartBase + 0x18
)

func mmioWrite32(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v
}

func mmioRead32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

// MMIOTimer drives the real periodic timer register set.
type MMIOTimer struct{}

func NewMMIOTimer() MMIOTimer { return MMIOTimer{} }

func (MMIOTimer) Configure(periodTicks uint32) {
	mmioWrite32(timerLoad, periodTicks)
	ctrl := uint32(0x00000002) // 32-bit timer
	ctrl |= 0x00000040         // periodic mode
	ctrl |= 0x00000020         // enable timer interrupt
	ctrl |= 0x00000080         // enable timer
	mmioWrite32(timerCtrl, ctrl)
}

func (MMIOTimer) Ack() {
	mmioWrite32(timerIntClr, 0x01)
}

// MMIOIRQController drives the real GIC-style distributor and CPU
// interface registers.
type MMIOIRQController struct{}

func NewMMIOIRQController() MMIOIRQController { return MMIOIRQController{} }

func (MMIOIRQController) Enable() {
	mmioWrite32(giccPMR, 0x000000F0)
	mmioWrite32(gicdISENABLERn, mmioRead32(gicdISENABLERn)|0x00000010)
	mmioWrite32(giccCTLR, 0x00000001)
	mmioWrite32(gicdCTLR, 0x00000001)
}

// EnableCPU stands for the trailing int_enable_irq() step the original
// source runs after installing the bootstrap PCB, and does nothing. On
// the real target this clears the interrupt-disable bit in CPSR; the
// ABI has no portable Go spelling for that, so this rewrite wires it as
// a distinct no-op call the dispatcher invokes in the right place rather
// than folding it into Enable's register pokes.
func (MMIOIRQController) EnableCPU() {}

func (MMIOIRQController) AckStart() IRQID {
	return IRQID(mmioRead32(giccIAR))
}

func (MMIOIRQController) AckEnd(irq IRQID) {
	mmioWrite32(giccEOIR, uint32(irq))
}

func (MMIOIRQController) IsTimerIRQ(irq IRQID) bool {
	return irq == IRQTimer
}

// MMIOUART drives a real PL011-style UART.
type MMIOUART struct{}

func NewMMIOUART() MMIOUART { return MMIOUART{} }

func (MMIOUART) PutByte(b byte) {
	for mmioRead32(uartFR)&0x20 != 0 { // TXFF: transmit FIFO full
	}
	mmioWrite32(uartDR, uint32(b))
}

func (MMIOUART) GetByte() byte {
	for mmioRead32(uartFR)&0x10 != 0 { // RXFE: receive FIFO empty
	}
	return byte(mmioRead32(uartDR))
}
