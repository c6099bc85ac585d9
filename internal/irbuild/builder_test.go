package irbuild

import "testing"

func TestLoopNestingTracksInLoop(t *testing.T) {
	env := newTestEnv(t)
	if env.b.InLoop() {
		t.Fatalf("expected not to be in a loop before EnterLoop")
	}

	env.b.EnterLoop()
	if !env.b.InLoop() {
		t.Fatalf("expected to be in a loop after EnterLoop")
	}

	env.b.EnterLoop()
	env.b.LeaveLoop()
	if !env.b.InLoop() {
		t.Fatalf("expected to still be in a loop after leaving one of two nested loops")
	}

	env.b.LeaveLoop()
	if env.b.InLoop() {
		t.Fatalf("expected not to be in a loop after leaving both")
	}
}
