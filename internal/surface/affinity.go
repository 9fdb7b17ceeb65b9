package surface

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// affinityGuard enforces single-goroutine ownership of a surface.
// Correctness of window-handle and device-object access depends on it, so a
// call from the wrong goroutine fails fast instead of queuing or locking.
type affinityGuard struct {
	owner uint64
}

func (g *affinityGuard) pin() {
	g.owner = goroutineID()
}

func (g *affinityGuard) check(op string) {
	if id := goroutineID(); id != g.owner {
		panic(fmt.Sprintf("renderwin: %s called from goroutine %d; surface is owned by goroutine %d", op, id, g.owner))
	}
}

// goroutineID parses the current goroutine's id out of the stack header,
// which always starts with "goroutine N [".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
