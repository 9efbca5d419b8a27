// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/PhilLello/doxyreport/internal/testutil"
)

func TestForwarder_DrainsBufferedLinesAfterWriterCloses(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	sink := &testutil.RecordingSink{}
	f := startForwarder("stdout", r, sink.Info, sink.Error)

	for i := range 1000 {
		fmt.Fprintf(w, "line %d\n", i)
	}
	_ = w.Close()

	res, timedOut := f.stop(time.Now().Add(5 * time.Second))
	if timedOut {
		t.Fatal("stop timed out on a closed stream")
	}
	if res.err != nil {
		t.Fatalf("unexpected stream error: %v", res.err)
	}
	if res.lines != 1000 {
		t.Errorf("forwarded %d lines, want 1000", res.lines)
	}
	if got := sink.Messages(testutil.LevelInfo); len(got) != 1000 || got[999] != "line 999" {
		t.Errorf("last line = %q", got[len(got)-1])
	}

	// The read end is closed once the forwarder has stopped.
	if _, err := r.Read(make([]byte, 1)); err == nil || err == io.EOF {
		t.Errorf("read end should be closed, Read returned %v", err)
	}
}

func TestForwarder_ZeroDeadlineWaitsForEOF(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	sink := &testutil.RecordingSink{}
	f := startForwarder("stderr", r, sink.Error, sink.Error)

	go func() {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintln(w, "late line")
		_ = w.Close()
	}()

	res, timedOut := f.stop(time.Time{})
	if timedOut || res.lines != 1 {
		t.Fatalf("stop() = %+v, %v", res, timedOut)
	}
}

func TestForwarder_ForcedCloseIsNotAStreamError(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })

	sink := &testutil.RecordingSink{}
	f := startForwarder("stdout", r, sink.Info, sink.Error)
	fmt.Fprintln(w, "only line")

	// Give the forwarder a moment to deliver before the deadline passes.
	time.Sleep(50 * time.Millisecond)

	res, timedOut := f.stop(time.Now().Add(100 * time.Millisecond))
	if !timedOut {
		t.Fatal("expected the deadline to be hit while the writer is open")
	}
	if res.err != nil {
		t.Errorf("forced close reported as stream error: %v", res.err)
	}
	if res.lines != 1 {
		t.Errorf("lines = %d, want 1", res.lines)
	}
	if len(sink.Messages(testutil.LevelError)) != 0 {
		t.Error("forced close must not log an error")
	}
}
