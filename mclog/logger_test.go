package mclog

import "testing"

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	var l Logger = NewNoOp()
	l.Debugf("x=%d", 1)
	l.Warnf("careful")
	l.Errorf("boom %s", "now")
	// Nothing to assert: NoOp must not panic and leaves no trace.
}

func TestRecordingLoggerCapturesMessages(t *testing.T) {
	r := NewRecording()
	var l Logger = r
	l.Warnf("insufficient inventory for type %d", 3)
	l.Errorf("container collision")
	if len(r.Entries) != 2 {
		t.Fatalf("Entries: got %d, want 2", len(r.Entries))
	}
	if !r.Has("WARN", "insufficient inventory") {
		t.Fatal("expected a WARN entry about insufficient inventory")
	}
	if r.Has("WARN", "collision") {
		t.Fatal("did not expect the collision message at WARN level")
	}
	if !r.Has("ERROR", "collision") {
		t.Fatal("expected an ERROR entry about collision")
	}
}
