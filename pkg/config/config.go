// Package config loads and saves hop-sequence tool settings from JSON or
// YAML files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/fhss"
	"github.com/herlein/gocat-hops/pkg/firmware"
)

// Version is the only supported config file version
const Version = "1.0"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DefaultPhrase is the phrase used when none is configured
const DefaultPhrase = "42,13,9,8"

// DefaultColumns is the number of hops per line in text output
const DefaultColumns = 10

// File is the on-disk configuration
type File struct {
	Version     string    `json:"version" yaml:"version"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Created     time.Time `json:"created" yaml:"created"`

	Domain            string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Phrase            string `json:"phrase,omitempty" yaml:"phrase,omitempty"`
	Length            int    `json:"length,omitempty" yaml:"length,omitempty"`
	ClipTrailingBlock bool   `json:"clip_trailing_block,omitempty" yaml:"clip_trailing_block,omitempty"`
	Workers           int    `json:"workers,omitempty" yaml:"workers,omitempty"`

	Firmware FirmwareJSON `json:"firmware" yaml:"firmware"`
	Output   OutputJSON   `json:"output" yaml:"output"`
}

// FirmwareJSON allows partial override of the default firmware profile
type FirmwareJSON struct {
	Name             string  `json:"name,omitempty" yaml:"name,omitempty"`
	OTAVersion       *uint8  `json:"ota_version,omitempty" yaml:"ota_version,omitempty"`
	BindingTemplate  string  `json:"binding_template,omitempty" yaml:"binding_template,omitempty"`
	NumericMinTokens *int    `json:"numeric_min_tokens,omitempty" yaml:"numeric_min_tokens,omitempty"`
	NumericMaxTokens *int    `json:"numeric_max_tokens,omitempty" yaml:"numeric_max_tokens,omitempty"`
	LCGMultiplier    *uint32 `json:"lcg_multiplier,omitempty" yaml:"lcg_multiplier,omitempty"`
	LCGIncrement     *uint32 `json:"lcg_increment,omitempty" yaml:"lcg_increment,omitempty"`
	LCGMask          *uint32 `json:"lcg_mask,omitempty" yaml:"lcg_mask,omitempty"`
}

// OutputJSON defines how results are rendered
type OutputJSON struct {
	Format      string `json:"format,omitempty" yaml:"format,omitempty"` // text, json, csv
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty"`
	Frequencies bool   `json:"frequencies,omitempty" yaml:"frequencies,omitempty"`
}

// Default returns a File holding the built-in defaults
func Default() *File {
	return &File{
		Version: Version,
		Domain:  domains.DefaultName,
		Phrase:  DefaultPhrase,
		Length:  fhss.DefaultLength,
		Output: OutputJSON{
			Format:  FormatText,
			Columns: DefaultColumns,
		},
	}
}

// Validate checks the configuration file for errors
func (c *File) Validate() error {
	if c.Version != Version {
		return fmt.Errorf("%w: %s", ErrConfigVersion, c.Version)
	}

	if c.Domain != "" {
		if _, err := domains.Lookup(c.Domain); err != nil {
			return err
		}
	}

	if c.Length < 0 {
		return fmt.Errorf("%w: %d", fhss.ErrInvalidLength, c.Length)
	}

	switch strings.ToLower(c.Output.Format) {
	case "", FormatText, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Output.Columns < 0 {
		return fmt.Errorf("%w: columns %d", ErrInvalidConfig, c.Output.Columns)
	}

	_, err := c.ToProfile()
	return err
}

// ToProfile applies the firmware overrides to the default profile
func (c *File) ToProfile() (firmware.Profile, error) {
	p := firmware.Default()
	fw := c.Firmware

	if fw.Name != "" {
		p.Name = fw.Name
	}
	if fw.OTAVersion != nil {
		p.OTAVersion = *fw.OTAVersion
	}
	if fw.BindingTemplate != "" {
		p.BindingTemplate = fw.BindingTemplate
	}
	if fw.NumericMinTokens != nil {
		p.NumericMinTokens = *fw.NumericMinTokens
	}
	if fw.NumericMaxTokens != nil {
		p.NumericMaxTokens = *fw.NumericMaxTokens
	}
	if fw.LCGMultiplier != nil {
		p.LCGMultiplier = *fw.LCGMultiplier
	}
	if fw.LCGIncrement != nil {
		p.LCGIncrement = *fw.LCGIncrement
	}
	if fw.LCGMask != nil {
		p.LCGMask = *fw.LCGMask
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// ToOptions converts the file into sequence build options
func (c *File) ToOptions() (fhss.Options, error) {
	p, err := c.ToProfile()
	if err != nil {
		return fhss.Options{}, err
	}
	return fhss.Options{
		ClipTrailingBlock: c.ClipTrailingBlock,
		Profile:           &p,
	}, nil
}

// ApplyDefaults fills zero values with the built-in defaults
func (c *File) ApplyDefaults() {
	d := Default()
	if c.Domain == "" {
		c.Domain = d.Domain
	}
	if c.Phrase == "" {
		c.Phrase = d.Phrase
	}
	if c.Length == 0 {
		c.Length = d.Length
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Columns == 0 {
		c.Output.Columns = d.Output.Columns
	}
}
