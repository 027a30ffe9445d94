// Package firmware holds the per-revision constants that binding-phrase
// hopping firmware uses to derive its identifier, seed and random stream.
// Keeping them as data lets a different firmware revision be described
// without touching the derivation or sequence code.
package firmware

import (
	"fmt"
	"strings"
)

// Default ESP32 / OTA v4 constants
const (
	// DefaultOTAVersion is XORed into the low seed byte
	DefaultOTAVersion uint8 = 4

	// DefaultBindingTemplate wraps the phrase before hashing; it mirrors the
	// build define the firmware is compiled with
	DefaultBindingTemplate = `-DMY_BINDING_PHRASE="%s"`

	// Numeric phrases with this many comma-separated values are taken as raw bytes
	DefaultNumericMinTokens = 4
	DefaultNumericMaxTokens = 6

	// LCG constants of the target libc rand()
	DefaultLCGMultiplier uint32 = 1103515245
	DefaultLCGIncrement  uint32 = 12345
	DefaultLCGMask       uint32 = 0x7FFFFFFF
)

// IdentifierLen is the length of a binding identifier in bytes
const IdentifierLen = 6

// Profile describes one firmware revision
type Profile struct {
	Name            string `json:"name" yaml:"name"`
	OTAVersion      uint8  `json:"ota_version" yaml:"ota_version"`
	BindingTemplate string `json:"binding_template" yaml:"binding_template"`

	NumericMinTokens int `json:"numeric_min_tokens" yaml:"numeric_min_tokens"`
	NumericMaxTokens int `json:"numeric_max_tokens" yaml:"numeric_max_tokens"`

	LCGMultiplier uint32 `json:"lcg_multiplier" yaml:"lcg_multiplier"`
	LCGIncrement  uint32 `json:"lcg_increment" yaml:"lcg_increment"`
	LCGMask       uint32 `json:"lcg_mask" yaml:"lcg_mask"`
}

// Default returns the ESP32 profile with OTA version 4
func Default() Profile {
	return Profile{
		Name:             "esp32-ota4",
		OTAVersion:       DefaultOTAVersion,
		BindingTemplate:  DefaultBindingTemplate,
		NumericMinTokens: DefaultNumericMinTokens,
		NumericMaxTokens: DefaultNumericMaxTokens,
		LCGMultiplier:    DefaultLCGMultiplier,
		LCGIncrement:     DefaultLCGIncrement,
		LCGMask:          DefaultLCGMask,
	}
}

// Validate checks the profile for values the derivation code cannot use
func (p Profile) Validate() error {
	if strings.Count(p.BindingTemplate, "%s") != 1 || strings.Count(p.BindingTemplate, "%") != 1 {
		return fmt.Errorf("%w: binding template %q must contain exactly one %%s and no other %%", ErrInvalidProfile, p.BindingTemplate)
	}
	if p.NumericMinTokens < 1 || p.NumericMaxTokens > IdentifierLen || p.NumericMinTokens > p.NumericMaxTokens {
		return fmt.Errorf("%w: numeric token range %d-%d outside 1-%d",
			ErrInvalidProfile, p.NumericMinTokens, p.NumericMaxTokens, IdentifierLen)
	}
	if p.LCGMask == 0 {
		return fmt.Errorf("%w: LCG mask is zero", ErrInvalidProfile)
	}
	return nil
}

// BindingString substitutes the phrase into the binding template. The
// phrase is inserted verbatim; it is never interpreted as a format.
func (p Profile) BindingString(phrase string) string {
	return strings.Replace(p.BindingTemplate, "%s", phrase, 1)
}

// String returns a one-line summary of the profile
func (p Profile) String() string {
	return fmt.Sprintf("%s (OTA %d, LCG a=%d c=%d mask=0x%08X)",
		p.Name, p.OTAVersion, p.LCGMultiplier, p.LCGIncrement, p.LCGMask)
}
