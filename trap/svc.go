package trap

import "github.com/jessielea/miniker/common"

// Svc is the supervisor-call demultiplexer, per spec.md §4.E's opcode
// table. Arguments are read from ctx.Gpr[0:3]; the return value is
// written to ctx.Gpr[0]. Unknown opcodes (including the reserved 0x07)
// are silent no-ops, per spec.md §6.
//
// buf carries the byte buffer for write/read. The original ABI passes a
// raw user-memory address in gpr[1]; this rewrite has no MMU or address
// space to dereference that against (spec.md §1 excludes memory
// management from scope), so callers pass the buffer directly instead.
// gpr[1] is left untouched, preserving the register's role as "the
// argument slot write/read use" for ABI documentation purposes without
// this package ever interpreting it as an address.
func (d *Dispatcher) Svc(ctx *common.Ctx, op common.Opcode, buf []byte) common.Err_t {
	switch op {
	case common.OpYield:
		d.sched.Tick(ctx)
		return common.OK

	case common.OpWrite:
		n := int(ctx.Gpr[2])
		if n > len(buf) {
			n = len(buf)
		}
		for i := 0; i < n; i++ {
			d.uart.PutByte(buf[i])
		}
		ctx.Gpr[0] = uint32(n)
		return common.OK

	case common.OpRead:
		n := int(ctx.Gpr[2])
		if n > len(buf) {
			n = len(buf)
		}
		for i := 0; i < n; i++ {
			buf[i] = d.uart.GetByte()
		}
		d.echoReadComplete()
		ctx.Gpr[0] = uint32(n)
		return common.OK

	case common.OpFork:
		return d.fork(ctx)

	case common.OpExit:
		d.exit(ctx)
		return common.OK

	case common.OpExec:
		d.exec(ctx)
		return common.OK

	case common.OpKill:
		return d.kill(ctx)

	case common.OpShmGet:
		tos, err := d.shm.Get(int(ctx.Gpr[0]))
		if err != common.OK {
			ctx.Gpr[0] = uint32(common.SvcReturn)
			return err
		}
		ctx.Gpr[0] = tos
		return common.OK

	case common.OpShmDt:
		d.shm.Detach(int(ctx.Gpr[0]))
		return common.OK

	default:
		return common.OK
	}
}

// echoReadComplete writes the trailing framing byte the original source
// emits after a blocking read completes (PL011_putc(UART0, 'x', true)).
// Supplemented per SPEC_FULL.md: a console-reading program relies on this
// byte to know a read has finished, so it is named rather than folded
// into the general (non-contractual) diagnostic-byte bucket.
func (d *Dispatcher) echoReadComplete() {
	d.uart.PutByte('x')
}
