package fileserver

import (
	"testing"
	"time"
)

func TestParseDuration_PlainInteger(t *testing.T) {
	ms, ok := parseDuration("2000")
	if !ok || ms != 2000 {
		t.Errorf("ms=%d ok=%v, want 2000/true", ms, ok)
	}
}

func TestParseDuration_GoDuration(t *testing.T) {
	ms, ok := parseDuration("1h")
	if !ok || ms != time.Hour.Milliseconds() {
		t.Errorf("ms=%d ok=%v, want %d/true", ms, ok, time.Hour.Milliseconds())
	}
}

func TestParseDuration_Negative(t *testing.T) {
	_, ok := parseDuration("-5")
	if ok {
		t.Error("negative duration should be rejected")
	}
}

func TestParseDuration_Empty(t *testing.T) {
	_, ok := parseDuration("")
	if ok {
		t.Error("empty duration should be rejected")
	}
}

func TestParseDuration_Garbage(t *testing.T) {
	_, ok := parseDuration("not-a-duration")
	if ok {
		t.Error("garbage duration should be rejected")
	}
}

func TestParseMaxAge_ReturnsDuration(t *testing.T) {
	d, ok := ParseMaxAge("1h")
	if !ok || d != time.Hour {
		t.Errorf("d=%v ok=%v, want 1h/true", d, ok)
	}
}

func TestOptions_ClampedMaxAgeMillis(t *testing.T) {
	opts := NewOptions()
	opts.MaxAge = 400 * 24 * time.Hour // more than a year
	if got := opts.clampedMaxAgeMillis(); got != maxMaxAgeMillis {
		t.Errorf("clamped = %d, want %d", got, maxMaxAgeMillis)
	}

	opts.MaxAge = -time.Hour
	if got := opts.clampedMaxAgeMillis(); got != 0 {
		t.Errorf("clamped negative = %d, want 0", got)
	}
}
