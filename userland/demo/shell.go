package demo

import (
	"strconv"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/kernel"
	"github.com/jessielea/miniker/userland"
)

// Shell is a minimal console loop absent from original_source (which has
// no interactive program): it prompts, blocks for a single input byte,
// and recognizes 'p' (list the process table) and 'q' (exit); anything
// else is echoed back. Added per SPEC_FULL.md to exercise read/write
// end to end from user code.
func Shell(k *kernel.Kernel, sys *userland.Syscalls, lines int) {
	for i := 0; i < lines; i++ {
		sys.Write([]byte("> "))

		buf := make([]byte, 1)
		sys.Read(buf)

		switch buf[0] {
		case 'p':
			ps(k, sys)
		case 'q':
			sys.Exit()
			return
		default:
			sys.Write([]byte{buf[0], '\n'})
		}
	}
}

func ps(k *kernel.Kernel, sys *userland.Syscalls) {
	var out []byte
	k.Procs().Each(func(i int, p *common.Pcb) {
		if p.Status == common.Unused {
			return
		}
		out = append(out, []byte("pid "+strconv.Itoa(p.Pid)+" "+p.Status.String()+"\n")...)
	})
	sys.Write(out)
}
