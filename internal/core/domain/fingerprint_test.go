package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/incr/internal/core/domain"
)

func TestFingerprint_String(t *testing.T) {
	var f domain.Fingerprint
	f[0] = 0xab
	f[15] = 0x01

	got := f.String()
	if len(got) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(got))
	}
	if got[:2] != "ab" {
		t.Errorf("expected leading byte ab, got %s", got[:2])
	}
}

func TestFingerprint_IsZero(t *testing.T) {
	var zero domain.Fingerprint
	if !zero.IsZero() {
		t.Error("expected zero value to report IsZero")
	}

	zero[3] = 1
	if zero.IsZero() {
		t.Error("expected non-zero fingerprint not to report IsZero")
	}
}

func TestFingerprint_JSONRoundTrip(t *testing.T) {
	var f domain.Fingerprint
	for i := range f {
		f[i] = byte(i * 7)
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Failed to marshal fingerprint: %v", err)
	}

	var back domain.Fingerprint
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal fingerprint: %v", err)
	}
	if back != f {
		t.Errorf("round trip changed the fingerprint: %s vs %s", back, f)
	}
}

func TestFingerprint_UnmarshalRejectsBadInput(t *testing.T) {
	var f domain.Fingerprint

	if err := f.UnmarshalText([]byte("not-hex")); err == nil {
		t.Error("expected error for non-hex input")
	}
	if err := f.UnmarshalText([]byte("abcd")); err == nil {
		t.Error("expected error for wrong digest width")
	}
}
