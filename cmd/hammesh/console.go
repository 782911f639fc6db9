package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// stdinConsole adapts the process's standard streams to the node's console
// contract. A background goroutine blocks on stdin and feeds a bounded
// channel; ReadByte never blocks the scheduler.
type stdinConsole struct {
	in chan byte
}

func newStdinConsole() *stdinConsole {
	c := &stdinConsole{in: make(chan byte, 256)}
	go c.readLoop()
	return c
}

func (c *stdinConsole) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			log.Debug().Err(err).Msg("console input closed")
			close(c.in)
			return
		}
		if n == 1 {
			c.in <- buf[0]
		}
	}
}

func (c *stdinConsole) ReadByte() (byte, bool) {
	select {
	case b, ok := <-c.in:
		return b, ok
	default:
		return 0, false
	}
}

func (c *stdinConsole) WriteString(s string) {
	if _, err := os.Stdout.WriteString(s); err != nil {
		log.Debug().Err(err).Msg("console write failed")
	}
}
