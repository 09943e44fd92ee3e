package flowbuf

import (
	"bytes"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// The buffered content a stream delivers must equal the chunks it
// accepted, in queue order, no matter how writes, unshifts, and
// pause/resume cycles interleave before the first delivery.
func TestStream_DeliveryMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()

		var model [][]byte
		ops := rapid.IntRange(1, 24).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.SampledFrom([]string{"write", "unshift", "pause", "resume"}).Draw(t, "op") {
			case "write":
				p := rapid.SliceOfN(rapid.Byte(), 0, 8).Draw(t, "chunk")
				if _, err := s.Write(p); err != nil {
					t.Fatalf("write failed: %v", err)
				}
				model = append(model, p)
			case "unshift":
				p := rapid.SliceOfN(rapid.Byte(), 0, 8).Draw(t, "chunk")
				if _, err := s.Unshift(p); err != nil {
					t.Fatalf("unshift failed: %v", err)
				}
				model = append([][]byte{p}, model...)
			case "pause":
				s.Pause()
			case "resume":
				s.Resume()
			}
		}
		if err := s.End(); err != nil {
			t.Fatalf("end failed: %v", err)
		}

		var want []byte
		for _, p := range model {
			want = append(want, p...)
		}

		got, err := Collect(s)
		if err != nil {
			t.Fatalf("collect failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("delivered %q, want %q", got, want)
		}
	})
}

// The terminal signal fires exactly once per stream, whatever the
// pause/resume history.
func TestStream_ExactlyOneTerminalSignal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		r := record(s)

		cycles := rapid.IntRange(0, 8).Draw(t, "cycles")
		for i := 0; i < cycles; i++ {
			s.Pause()
			s.Resume()
		}
		if rapid.Bool().Draw(t, "withData") {
			if _, err := s.WriteString("content"); err != nil {
				t.Fatalf("write failed: %v", err)
			}
		}
		if err := s.End(); err != nil {
			t.Fatalf("end failed: %v", err)
		}
		s.Resume()

		select {
		case <-r.ended:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for terminal signal")
		}
		time.Sleep(time.Millisecond)
		if n := r.ends.Load(); n != 1 {
			t.Fatalf("expected exactly one terminal signal, got %d", n)
		}
	})
}
