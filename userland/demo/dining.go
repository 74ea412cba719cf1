package demo

import (
	"strconv"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/userland"
)

// philosopherNames mirrors original_source/user/diningPhils.c's literal
// names table verbatim, including each entry's trailing space (the C
// source concatenates it directly against the next string written).
var philosopherNames = []string{
	"Hannah Arendt ", "Mary Astell ", "Laura Bassi ", "Helena Blavatsky ",
	"Antoinette Brown Blackwell ", "Mary Whiton Calkins ", "Margaret Cavendish ",
	"Émilie du Châtelet ", "Catharine Trotter Cockburn ", "Anne Conway ",
	"Helene von Druskowitz ", "Mary Ann Evans ", "Elisabeth of Bohemia ",
	"Sor Juana ", "Edith Stein ", "Felicia Nimue Ackerman ",
}

const numPhilosophers = 16

// DiningPhilosophers forks one process per philosopher, each alternating
// think and eat rounds times before exiting — a bounded version of
// original_source/user/diningPhils.c's infinite philosopher loop, so the
// demo terminates. Eating requires the two adjacent shared-memory
// regions (the "forks" to its left and right), acquired with shmget and
// released with shmdt.
func DiningPhilosophers(r *Runner, sys *userland.Syscalls, rounds int) {
	sys.Write([]byte("phil\n"))
	for i := 0; i < numPhilosophers; i++ {
		x := i
		r.Fork(sys, func(childSys *userland.Syscalls) {
			philosopher(childSys, x, rounds)
		})
	}
	sys.Exit()
}

func philosopher(sys *userland.Syscalls, x, rounds int) {
	for n := 1; n <= rounds; n++ {
		think(sys)
		eat(sys, x, n)
	}
	sys.Exit()
}

func think(sys *userland.Syscalls) {
	sys.Write([]byte("Thinking\n"))
	sys.Yield()
}

func eat(sys *userland.Syscalls, x, n int) {
	acquireShm(sys, x)
	acquireShm(sys, (x+1)%numPhilosophers)

	sys.Write([]byte(philosopherNames[x]))
	sys.Write([]byte("is EATING for the "))
	sys.Write([]byte(strconv.Itoa(n)))
	sys.Write([]byte(" time\n"))

	sys.Yield()

	sys.ShmDt(x)
	sys.ShmDt((x + 1) % numPhilosophers)
}

// acquireShm retries shmget until it succeeds, yielding between attempts
// so another philosopher holding the fork gets a turn to run and detach
// it. shmget itself makes only a single attempt per call and reports
// contention as ErrBusy rather than blocking; this retry loop is what
// reproduces the "spin via reschedule" shape at user level instead of
// inside the kernel.
func acquireShm(sys *userland.Syscalls, shmid int) uint32 {
	for {
		tos, err := sys.ShmGet(shmid)
		if err == common.OK {
			return tos
		}
		sys.Yield()
	}
}
