// Package uid derives the 6-byte binding identifier and the 32-bit hop seed
// from a binding phrase.
package uid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/herlein/gocat-hops/pkg/firmware"
)

// Identifier is the binding identifier shared by a transmitter and receiver
type Identifier [firmware.IdentifierLen]byte

// String returns the identifier as lower-case hex
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText renders the identifier as hex for JSON and YAML output
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// ParseIdentifier parses 12 hex digits into an Identifier
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return id, fmt.Errorf("%w: %q: %v", ErrInvalidIdentifier, s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("%w: %q is %d bytes, want %d", ErrInvalidIdentifier, s, len(b), len(id))
	}
	copy(id[:], b)
	return id, nil
}

// Deriver turns phrases into identifiers and identifiers into seeds using
// the constants of one firmware revision
type Deriver struct {
	profile firmware.Profile
}

// NewDeriver creates a Deriver for the given firmware profile
func NewDeriver(profile firmware.Profile) (*Deriver, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Deriver{profile: profile}, nil
}

var defaultDeriver = &Deriver{profile: firmware.Default()}

// DeriveIdentifier derives an identifier with the default firmware profile
func DeriveIdentifier(phrase string) (Identifier, error) {
	return defaultDeriver.Identifier(phrase)
}

// DeriveSeed derives a seed with the default firmware profile
func DeriveSeed(id Identifier) uint32 {
	return defaultDeriver.Seed(id)
}

// Identifier derives the binding identifier for a phrase.
//
// A phrase of NumericMinTokens to NumericMaxTokens comma-separated decimal
// values, each below 256 and written in the digits of any script, is used as raw bytes, right-aligned and
// zero-padded at the front. Anything else is hashed: the phrase is wrapped
// in the profile's binding template and the first six bytes of its MD5
// digest are used. Only an empty phrase is rejected.
func (d *Deriver) Identifier(phrase string) (Identifier, error) {
	var id Identifier
	if phrase == "" {
		return id, fmt.Errorf("%w: phrase is empty", ErrInvalidPhrase)
	}

	if values, ok := d.numericValues(phrase); ok {
		copy(id[len(id)-len(values):], values)
		return id, nil
	}

	sum := md5.Sum([]byte(d.profile.BindingString(phrase)))
	copy(id[:], sum[:len(id)])
	return id, nil
}

// numericValues reports whether phrase is a usable raw byte list
func (d *Deriver) numericValues(phrase string) ([]byte, bool) {
	tokens := strings.Split(phrase, ",")
	if len(tokens) < d.profile.NumericMinTokens || len(tokens) > d.profile.NumericMaxTokens {
		return nil, false
	}

	values := make([]byte, 0, len(tokens))
	for _, token := range tokens {
		v, ok := decimalByte(token)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// decimalByte parses a token made only of decimal digits (Unicode
// category Nd, in any script) whose value fits in a byte
func decimalByte(token string) (byte, bool) {
	if token == "" {
		return 0, false
	}
	v := 0
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		v = v*10 + digitValue(r)
		if v > 0xFF {
			return 0, false
		}
	}
	return byte(v), true
}

// digitValue returns the value of an Nd rune. Nd digits are laid out in
// contiguous runs of ten starting at zero, so the offset from the start of
// the surrounding Nd range gives the value.
func digitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// Seed folds an identifier into the 32-bit hop seed. Bytes 2..5 are packed
// big-endian with the OTA version XORed into the last byte; bytes 0 and 1
// do not contribute.
func (d *Deriver) Seed(id Identifier) uint32 {
	return uint32(id[2])<<24 |
		uint32(id[3])<<16 |
		uint32(id[4])<<8 |
		uint32(id[5]^d.profile.OTAVersion)
}

// Profile returns the firmware profile the deriver was built with
func (d *Deriver) Profile() firmware.Profile {
	return d.profile
}
