package board

import (
	"fmt"
	"testing"
)

func TestLabelAllocator_MintOrder(t *testing.T) {
	a := NewLabelAllocator()
	for i := 0; i < 26; i++ {
		want := string(rune('a' + i))
		if got := a.Next(); got != want {
			t.Fatalf("mint %d: got %q, want %q", i, got, want)
		}
	}
	// Exhausted letter pool falls back to the suffixed scheme.
	for i, want := range []string{"a1", "b1", "c1"} {
		if got := a.Next(); got != want {
			t.Errorf("fallback mint %d: got %q, want %q", i, got, want)
		}
	}
}

func TestLabelAllocator_RecyclesSmallestFirst(t *testing.T) {
	a := NewLabelAllocator()
	for i := 0; i < 5; i++ {
		a.Next() // a..e
	}
	a.Release("d")
	a.Release("b")

	if got := a.Next(); got != "b" {
		t.Errorf("expected recycled \"b\", got %q", got)
	}
	if got := a.Next(); got != "d" {
		t.Errorf("expected recycled \"d\", got %q", got)
	}
	if got := a.Next(); got != "f" {
		t.Errorf("expected fresh \"f\", got %q", got)
	}
}

func TestLabelAllocator_NextLetterExhaustion(t *testing.T) {
	a := NewLabelAllocator()
	for i := 0; i < 26; i++ {
		if _, ok := a.NextLetter(); !ok {
			t.Fatalf("letter pool exhausted after %d mints", i)
		}
	}
	if label, ok := a.NextLetter(); ok {
		t.Errorf("expected exhaustion, got %q", label)
	}
	// A released letter revives the pool.
	a.Release("q")
	if label, ok := a.NextLetter(); !ok || label != "q" {
		t.Errorf("expected recycled \"q\", got %q (ok=%v)", label, ok)
	}
}

func TestLabelAllocator_SingleLetterBeforeSuffixed(t *testing.T) {
	a := NewLabelAllocator()
	for i := 0; i < 27; i++ {
		a.Next() // a..z, a1
	}
	a.Release("a1")
	a.Release("z")
	if got := a.Next(); got != "z" {
		t.Errorf("expected single-letter \"z\" before \"a1\", got %q", got)
	}
	if got := a.Next(); got != "a1" {
		t.Errorf("expected recycled \"a1\", got %q", got)
	}
}

func TestLabelAllocator_NeverRefuses(t *testing.T) {
	a := NewLabelAllocator()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		label := a.Next()
		if label == "" {
			t.Fatalf("mint %d: empty label", i)
		}
		if seen[label] {
			t.Fatalf("mint %d: duplicate label %q", i, label)
		}
		seen[label] = true
	}
}

func TestMintRoundTrip(t *testing.T) {
	for i := 0; i < 150; i++ {
		label := mintLabel(i)
		if got := mintIndex(label); got != i {
			t.Errorf("mintIndex(%q) = %d, want %d", label, got, i)
		}
	}
}

func TestMintIndexForeignLabels(t *testing.T) {
	for _, label := range []string{"", "A", "1", "a0", "ab", "z-1"} {
		if got := mintIndex(label); got != -1 {
			t.Errorf("mintIndex(%q) = %d, want -1", label, got)
		}
	}
}

func ExampleLabelAllocator() {
	a := NewLabelAllocator()
	fmt.Println(a.Next())
	fmt.Println(a.Next())
	a.Release("a")
	fmt.Println(a.Next())
	// Output:
	// a
	// b
	// a
}
