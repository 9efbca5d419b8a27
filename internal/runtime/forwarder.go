// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

type (
	// forwarder copies one generator stream to the sink line by line.
	forwarder struct {
		stream string
		r      *os.File
		emit   func(msg any, keyvals ...any)
		onErr  func(msg any, keyvals ...any)
		done   chan forwardResult
		forced atomic.Bool
	}

	forwardResult struct {
		lines int
		err   error
	}
)

func startForwarder(stream string, r *os.File, emit, onErr func(msg any, keyvals ...any)) *forwarder {
	f := &forwarder{
		stream: stream,
		r:      r,
		emit:   emit,
		onErr:  onErr,
		done:   make(chan forwardResult, 1),
	}
	go f.run()
	return f
}

func (f *forwarder) run() {
	var res forwardResult
	br := bufio.NewReader(f.r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			f.emit(strings.TrimRight(line, "\r\n"))
			res.lines++
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) && !(f.forced.Load() && errors.Is(err, os.ErrClosed)) {
			res.err = &StreamError{Stream: f.stream, Err: err}
			f.onErr("error reading generator stream", "stream", f.stream, "err", err)
		}
		break
	}
	f.done <- res
}

// stop joins the forwarder once it reaches end-of-stream, then closes the
// read end. If the stream is still open at deadline, the read end is closed
// to unblock the forwarder, which is joined again. A zero deadline waits
// indefinitely. timedOut reports whether the deadline was hit.
func (f *forwarder) stop(deadline time.Time) (res forwardResult, timedOut bool) {
	defer func() { _ = f.r.Close() }()

	if deadline.IsZero() {
		return <-f.done, false
	}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case res = <-f.done:
		return res, false
	case <-timer.C:
	}

	f.forced.Store(true)
	_ = f.r.Close()
	return <-f.done, true
}
