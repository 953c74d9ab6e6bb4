package ucl

import (
	"strings"
	"testing"
)

func TestSliceSourcePeekAdvance(t *testing.T) {
	s := NewSliceSource([]byte("ab"))
	b, ok := s.Peek(0)
	if !ok || b != 'a' {
		t.Fatalf("Peek(0) = %q, %v", b, ok)
	}
	b, ok = s.Peek(1)
	if !ok || b != 'b' {
		t.Fatalf("Peek(1) = %q, %v", b, ok)
	}
	if _, ok := s.Peek(2); ok {
		t.Fatalf("Peek(2) should report no byte past the end")
	}
	b, ok = s.Advance()
	if !ok || b != 'a' {
		t.Fatalf("Advance() = %q, %v", b, ok)
	}
}

func TestSliceSourceMarkSliceSince(t *testing.T) {
	s := NewSliceSource([]byte("hello"))
	mark := s.Mark()
	for i := 0; i < 3; i++ {
		s.Advance()
	}
	got, ok := s.SliceSince(mark)
	if !ok || string(got) != "hel" {
		t.Fatalf("SliceSince = %q, %v", got, ok)
	}
}

func TestReaderSourceMatchesSliceSourceBehavior(t *testing.T) {
	s := NewReaderSource(strings.NewReader("hello"))
	mark := s.Mark()
	for i := 0; i < 3; i++ {
		b, ok := s.Advance()
		if !ok {
			t.Fatalf("Advance() unexpectedly hit EOF at i=%d", i)
		}
		_ = b
	}
	got, ok := s.SliceSince(mark)
	if !ok || string(got) != "hel" {
		t.Fatalf("SliceSince = %q, %v", got, ok)
	}
	if _, ok := s.Peek(100); ok {
		t.Fatalf("expected no byte far past EOF")
	}
}

func TestSliceSourceCapacityIsUnbounded(t *testing.T) {
	s := NewSliceSource([]byte("hello"))
	if s.Capacity() < 1<<32 {
		t.Fatalf("Capacity() = %d, want a very large sentinel", s.Capacity())
	}
}

func TestReaderSourceCapacityMatchesLookahead(t *testing.T) {
	s := NewReaderSource(strings.NewReader("hello"))
	if s.Capacity() != readerLookahead {
		t.Fatalf("Capacity() = %d, want %d", s.Capacity(), readerLookahead)
	}
}

func TestReaderSourceSliceSinceFailsOutsideWindow(t *testing.T) {
	big := strings.Repeat("x", readerLookahead*3)
	s := NewReaderSource(strings.NewReader(big))
	mark := s.Mark()
	for i := 0; i < readerLookahead*2; i++ {
		if _, ok := s.Advance(); !ok {
			t.Fatalf("Advance() hit EOF early at i=%d", i)
		}
	}
	if _, ok := s.SliceSince(mark); ok {
		t.Fatalf("expected SliceSince to fail once mark scrolled out of the look-ahead window")
	}
}
