package sitemaptree

import "testing"

func TestParsePriorityInRange(t *testing.T) {
	p, ok := parsePriority("0.7")
	if !ok {
		t.Fatal("expected ok=true for in-range priority")
	}
	if f, _ := p.Float64(); f != 0.7 {
		t.Errorf("got %v, want 0.7", f)
	}
}

func TestParsePriorityOutOfRangeDefaultsNotOK(t *testing.T) {
	p, ok := parsePriority("7.3")
	if ok {
		t.Fatal("expected ok=false for out-of-range priority")
	}
	if !p.Equal(DefaultPriority) {
		t.Errorf("got %v, want default %v", p, DefaultPriority)
	}
}

func TestParsePriorityUnparseable(t *testing.T) {
	p, ok := parsePriority("not-a-number")
	if ok {
		t.Fatal("expected ok=false for unparseable priority")
	}
	if !p.Equal(DefaultPriority) {
		t.Errorf("got %v, want default", p)
	}
}
