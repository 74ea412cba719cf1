// Command miniker boots the kernel against a chosen device set and runs
// one of the reference user programs against it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/kernel"
	"github.com/jessielea/miniker/kernel/klog"
	"github.com/jessielea/miniker/userland"
	"github.com/jessielea/miniker/userland/demo"
)

// flag is the only third-party-grade CLI option available in the
// example pack without a dependency that nothing else in this repo
// exercises; see DESIGN.md for why no third-party flag library was
// wired in here instead.
func main() {
	var (
		capacity   = flag.Int("process-table-capacity", common.DefaultConfig().ProcessTableCapacity, "process table capacity")
		stackSize  = flag.Uint("stack-size", uint(common.DefaultConfig().StackSize), "per-process stack size in bytes")
		shrmRegion = flag.Uint("shrm-region-size", uint(common.DefaultConfig().ShrmRegionSize), "shared-memory region size in bytes")
		maxShrm    = flag.Int("max-shrm", common.DefaultConfig().MaxShrm, "shared-memory table capacity")
		timerTicks = flag.Uint("timer-period", uint(common.DefaultConfig().TimerPeriodTicks), "timer period in ticks")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		program    = flag.String("demo", "dining", "demo program to run: dining, pipe, shell")
		rounds     = flag.Int("rounds", 2, "think/eat rounds per philosopher (dining demo only)")
		entry      = flag.Uint("entry", 0, "bootstrap process entry point")
	)
	flag.Parse()

	log, err := klog.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "miniker: invalid log level:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := common.Config{
		ProcessTableCapacity: *capacity,
		StackSize:            uint32(*stackSize),
		ShrmRegionSize:       uint32(*shrmRegion),
		MaxShrm:              *maxShrm,
		TimerPeriodTicks:     uint32(*timerTicks),
	}

	k := kernel.New(cfg, newDevices(), log)
	k.Boot(uint32(*entry))

	r := demo.NewRunner(k)

	switch *program {
	case "dining":
		r.Start(func(sys *userland.Syscalls) { demo.DiningPhilosophers(r, sys, *rounds) })
	case "pipe":
		r.Start(func(sys *userland.Syscalls) { demo.PipeDemo(r, sys) })
	case "shell":
		r.Start(func(sys *userland.Syscalls) { demo.Shell(k, sys, 10) })
	default:
		fmt.Fprintln(os.Stderr, "miniker: unknown -demo:", *program)
		os.Exit(1)
	}

	r.Wait()

	if w, ok := k.UART().(interface{ Written() []byte }); ok {
		os.Stdout.Write(w.Written())
	}
}
