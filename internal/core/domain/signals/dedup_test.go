package signals

import "testing"

func TestDedupSuppressesImmediateRepeat(t *testing.T) {
	state := NewDedupState()
	state.RecordDispatched(Bullish)

	if state.ShouldDispatch(Bullish) {
		t.Error("repeat bullish must be suppressed")
	}
	if !state.ShouldDispatch(Bearish) {
		t.Error("bearish after bullish must dispatch")
	}
}

func TestDedupNeverDispatchesNone(t *testing.T) {
	state := NewDedupState()
	if state.ShouldDispatch(None) {
		t.Error("none must never dispatch")
	}
	if state.Last() != None {
		t.Errorf("initial Last = %s", state.Last())
	}
}

func TestDedupAlternation(t *testing.T) {
	state := NewDedupState()
	sent := 0
	for _, sig := range []Signal{Bullish, Bullish, Bearish, None, Bullish, Bullish} {
		if state.ShouldDispatch(sig) {
			state.RecordDispatched(sig)
			sent++
		}
	}
	if sent != 3 {
		t.Errorf("sent %d alerts, want 3 (A, B, A)", sent)
	}
	if state.Last() != Bullish {
		t.Errorf("Last = %s", state.Last())
	}
}

func TestZeroValueState(t *testing.T) {
	var state DedupState
	if state.Last() != None {
		t.Errorf("zero Last = %q", state.Last())
	}
	if !state.ShouldDispatch(Bearish) {
		t.Error("zero state must allow first signal")
	}
}
