package io

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

// Host key translation.
const (
	HOST_KEY_INTERRUPT = 0x03 // Ctrl-C ends the host session.
	HOST_KEY_DELETE    = 0x7f // Sent by most terminals for Backspace.
	HOST_KEY_BACKSPACE = 0x08
)

// Host feeds host keyboard input into a Console.
//
// A goroutine reads the input one byte at a time and queues it on the
// console, so the emulated clock never waits for the host. When the input
// is a terminal it is placed in raw mode until Stop.
type Host struct {
	Console *Console
	Input   io.Reader

	fd           int
	oldTermState *term.State

	done        chan struct{}
	started     sync.Once
	interrupted atomic.Bool
}

// NewHost creates a host adapter reading input into the console.
func NewHost(console *Console, input io.Reader) *Host {
	return &Host{
		Console: console,
		Input:   input,
		done:    make(chan struct{}),
	}
}

// Start places a terminal input in raw mode, and begins reading.
func (h *Host) Start() (err error) {
	h.started.Do(func() {
		if file, ok := h.Input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			h.fd = int(file.Fd())
			h.oldTermState, err = term.MakeRaw(h.fd)
			if err != nil {
				close(h.done)
				return
			}
		}

		go h.read()
	})

	return
}

func (h *Host) read() {
	defer close(h.done)

	buf := make([]byte, 1)
	for {
		n, err := h.Input.Read(buf)
		if n > 0 {
			b := buf[0]
			switch b {
			case HOST_KEY_INTERRUPT:
				h.interrupted.Store(true)
				return
			case HOST_KEY_DELETE:
				b = HOST_KEY_BACKSPACE
			}
			h.Console.Queue(b)
		}
		if err != nil {
			return
		}
	}
}

// Done is closed when the input ends, or the user interrupts the session.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Interrupted returns true once the user has pressed Ctrl-C.
func (h *Host) Interrupted() bool {
	return h.interrupted.Load()
}

// Stop restores the terminal mode.
func (h *Host) Stop() (err error) {
	if h.oldTermState != nil {
		err = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
	return
}
