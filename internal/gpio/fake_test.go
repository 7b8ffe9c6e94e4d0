package gpio

import (
	"errors"
	"testing"
	"time"
)

func TestFakeOutputsRecordsWrites(t *testing.T) {
	f := NewFakeOutputs()

	if err := f.SetOutput(11, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetOutput(12, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetOutput(11, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Write{{11, true}, {12, true}, {11, false}}
	if len(f.Writes) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(f.Writes))
	}
	for i := range want {
		if f.Writes[i] != want[i] {
			t.Errorf("write %d: got %+v, want %+v", i, f.Writes[i], want[i])
		}
	}

	high := f.High(11, 12, 13)
	if len(high) != 1 || high[0] != 12 {
		t.Errorf("expected only pin 12 high, got %v", high)
	}
}

func TestFakeOutputsError(t *testing.T) {
	f := NewFakeOutputs()
	f.WriteError = errors.New("simulated error")

	err := f.SetOutput(11, true)
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
	if len(f.Writes) != 0 {
		t.Errorf("failed write should not be recorded, got %v", f.Writes)
	}
}

func TestFakeOutputsClose(t *testing.T) {
	f := NewFakeOutputs()

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeOutputsReset(t *testing.T) {
	f := NewFakeOutputs()
	f.SetOutput(13, true)
	f.Close()

	f.Reset()

	if len(f.Writes) != 0 {
		t.Errorf("expected no writes after reset, got %d", len(f.Writes))
	}
	if f.Levels[13] {
		t.Error("expected pin 13 low after reset")
	}
	if f.Closed {
		t.Error("expected Closed=false after reset")
	}
}

func TestFakeButtonPress(t *testing.T) {
	b := NewFakeButton(5)
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if !b.Press(at) {
		t.Fatal("press should be accepted")
	}

	select {
	case e := <-b.Edges():
		if e.Pin != 5 {
			t.Errorf("expected pin 5, got %d", e.Pin)
		}
		if !e.Time.Equal(at) {
			t.Errorf("expected time %v, got %v", at, e.Time)
		}
	default:
		t.Fatal("expected an edge to be delivered")
	}
}

func TestFakeButtonBufferFull(t *testing.T) {
	b := NewFakeButton(5)
	now := time.Now()

	for i := 0; i < edgeBuffer; i++ {
		if !b.Press(now) {
			t.Fatalf("press %d should be accepted", i)
		}
	}
	if b.Press(now) {
		t.Error("press beyond buffer capacity should be dropped")
	}
}
