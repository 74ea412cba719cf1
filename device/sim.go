package device

import "sync"

// IRQTimer is the opaque IRQ source identifier SimIRQController uses for
// the periodic timer, matching the GIC_SOURCE_TIMER0 constant the
// original source reads from GICC0->IAR.
const IRQTimer IRQID = 27

// SimTimer is an in-memory Timer double: it records the configured period
// and an ack count but does not run a real clock. Tests (and the
// simulation-mode cmd) advance time explicitly via SimIRQController.Tick.
type SimTimer struct {
	mu     sync.Mutex
	period uint32
	acks   int
}

func NewSimTimer() *SimTimer { return &SimTimer{} }

func (t *SimTimer) Configure(periodTicks uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.period = periodTicks
}

func (t *SimTimer) Ack() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acks++
}

// Period returns the last configured period, for assertions in tests.
func (t *SimTimer) Period() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.period
}

// Acks returns how many times Ack has been called, for assertions.
func (t *SimTimer) Acks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.acks
}

// SimIRQController is an in-memory IRQController double backed by a FIFO
// of pending IRQ sources. Tick enqueues a timer IRQ; tests can also
// enqueue arbitrary IRQs via Raise to exercise the "other sources are
// ignored" path in spec.md §4.E.
type SimIRQController struct {
	mu         sync.Mutex
	enabled    bool
	cpuEnabled bool
	pending    []IRQID
	eoiLog     []IRQID
}

func NewSimIRQController() *SimIRQController { return &SimIRQController{} }

func (c *SimIRQController) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = true
}

func (c *SimIRQController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *SimIRQController) EnableCPU() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cpuEnabled = true
}

// CPUEnabled reports whether EnableCPU has been called, for assertions.
func (c *SimIRQController) CPUEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cpuEnabled
}

// Raise enqueues id as a pending interrupt source.
func (c *SimIRQController) Raise(id IRQID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, id)
}

// Tick is shorthand for Raise(IRQTimer), used to simulate one timer period
// elapsing.
func (c *SimIRQController) Tick() {
	c.Raise(IRQTimer)
}

// AckStart pops the next pending IRQ source. Calling it with nothing
// pending is a test bug, not a kernel-reachable state (the dispatcher
// only calls AckStart in response to an actual interrupt entry); it
// returns IRQID(0), an identifier no source uses.
func (c *SimIRQController) AckStart() IRQID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return 0
	}
	id := c.pending[0]
	c.pending = c.pending[1:]
	return id
}

func (c *SimIRQController) AckEnd(irq IRQID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eoiLog = append(c.eoiLog, irq)
}

// EOIs returns the sequence of IRQ ids passed to AckEnd, for assertions.
func (c *SimIRQController) EOIs() []IRQID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]IRQID, len(c.eoiLog))
	copy(out, c.eoiLog)
	return out
}

func (c *SimIRQController) IsTimerIRQ(irq IRQID) bool {
	return irq == IRQTimer
}

// SimUART is an in-memory UART double: PutByte appends to an output
// buffer, GetByte blocks on an input channel fed by test code via Feed.
type SimUART struct {
	mu  sync.Mutex
	out []byte
	in  chan byte
}

func NewSimUART() *SimUART {
	return &SimUART{in: make(chan byte, 4096)}
}

func (u *SimUART) PutByte(b byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.out = append(u.out, b)
}

// GetByte blocks until a byte has been fed via Feed, matching the real
// UART's blocking read contract (spec.md §7: "Device I/O: blocking UART
// calls never fail; there is no timeout").
func (u *SimUART) GetByte() byte {
	return <-u.in
}

// Feed makes bytes available to future GetByte calls, simulating incoming
// serial traffic.
func (u *SimUART) Feed(bs ...byte) {
	for _, b := range bs {
		u.in <- b
	}
}

// Written returns a copy of everything written via PutByte so far.
func (u *SimUART) Written() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]byte, len(u.out))
	copy(out, u.out)
	return out
}
