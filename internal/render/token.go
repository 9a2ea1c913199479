package render

import "fmt"

// ClickToken encodes a (buffer, breadcrumb index) pair as a single
// integer so it can ride through the host's numeric click-region slot.
// The layout is bufnr*100000 + 21000 + index: the fixed "21" marker
// digits separate the buffer number from the three index digits and let
// Decode reject values that were never produced by Encode.
type ClickToken int

const (
	tokenMarker = 21
	// MaxIndex is the largest encodable breadcrumb index.
	MaxIndex = 999
)

// EncodeToken encodes a buffer number and breadcrumb index into a token.
func EncodeToken(bufnr, index int) (ClickToken, error) {
	if bufnr < 1 {
		return 0, fmt.Errorf("buffer number must be positive, got %d", bufnr)
	}
	if index < 0 || index > MaxIndex {
		return 0, fmt.Errorf("breadcrumb index out of range [0, %d]: %d", MaxIndex, index)
	}
	return ClickToken(bufnr*100000 + tokenMarker*1000 + index), nil
}

// Decode splits a token back into its buffer number and breadcrumb index.
func (t ClickToken) Decode() (bufnr, index int, err error) {
	v := int(t)
	if v < 100000 {
		return 0, 0, fmt.Errorf("token too small to carry a buffer number: %d", v)
	}
	if (v/1000)%100 != tokenMarker {
		return 0, 0, fmt.Errorf("token marker mismatch: %d", v)
	}
	return v / 100000, v % 1000, nil
}

// IsValid reports whether the token decodes cleanly.
func (t ClickToken) IsValid() bool {
	_, _, err := t.Decode()
	return err == nil
}
