package domain

import "encoding/hex"

// FingerprintSize is the digest width in bytes (128 bits).
const FingerprintSize = 16

// Fingerprint is a deterministic 128-bit content digest used for change
// detection. It is not a cryptographic hash and must never be used for
// security decisions.
type Fingerprint [FingerprintSize]byte

// String returns the lowercase hex rendering of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero reports whether the fingerprint is the zero value, i.e. has never
// been computed.
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// MarshalText implements encoding.TextMarshaler so fingerprints survive JSON
// snapshots losslessly.
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fingerprint) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != FingerprintSize {
		return ErrInvalidFingerprint
	}
	copy(f[:], b)
	return nil
}
