package flowbuf

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestReader_ReadsUntilEOF(t *testing.T) {
	s := New()
	r := Reader(s)

	go func() {
		s.WriteString("stream ")
		s.WriteString("as reader")
		s.End()
	}()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "stream as reader" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestReader_SmallDestinationBuffer(t *testing.T) {
	s := New()
	r := Reader(s)

	s.WriteString("abcdef")
	s.End()

	buf := make([]byte, 2)
	var got []byte
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}
	if string(got) != "abcdef" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestReader_SurfacesErrors(t *testing.T) {
	s := New()
	r := Reader(s)

	boom := errors.New("boom")
	go func() {
		time.Sleep(20 * time.Millisecond)
		s.emitError(boom)
	}()

	_, err := r.Read(make([]byte, 8))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestWriter_WritesThrough(t *testing.T) {
	s := New()
	w := Writer(s)

	if _, err := io.WriteString(w, "via io.Writer"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s.End()

	got, err := Collect(s)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if string(got) != "via io.Writer" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestWriter_FailsAfterEnd(t *testing.T) {
	s := New()
	w := Writer(s)
	s.End()

	if _, err := w.Write([]byte("late")); !errors.Is(err, ErrAlreadyEnded) {
		t.Fatalf("expected ErrAlreadyEnded, got %v", err)
	}
}
