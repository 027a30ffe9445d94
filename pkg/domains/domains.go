// Package domains provides the regulatory domain channel plans used when
// building hop sequences. The set is closed: FCC915, AU915, EU868 and IN866.
package domains

import (
	"fmt"
	"strings"
)

// Domain is one regional channel plan
type Domain struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	FreqStartHz  uint32 `json:"freq_start_hz" yaml:"freq_start_hz"`
	FreqStopHz   uint32 `json:"freq_stop_hz" yaml:"freq_stop_hz"`
	ChannelCount uint8  `json:"channel_count" yaml:"channel_count"`
	SyncCenterHz uint32 `json:"sync_center_hz" yaml:"sync_center_hz"`
}

// Default domain when none is given
const DefaultName = "FCC915"

// table lists the per-band plans in display order
var table = []*Domain{
	fcc915,
	au915,
	eu868,
	in866,
}

// Lookup returns the domain with the given name, ignoring case and
// surrounding whitespace
func Lookup(name string) (*Domain, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, d := range table {
		if d.Name == key {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedDomain, name, strings.Join(Names(), ", "))
}

// All returns every domain in table order
func All() []*Domain {
	out := make([]*Domain, len(table))
	copy(out, table)
	return out
}

// Names returns the domain names in table order
func Names() []string {
	names := make([]string, len(table))
	for i, d := range table {
		names[i] = d.Name
	}
	return names
}

// SyncChannel returns the channel index placed at the start of every block
func (d *Domain) SyncChannel() uint8 {
	return d.ChannelCount / 2
}

// ChannelSpacingHz returns the distance between adjacent channels
func (d *Domain) ChannelSpacingHz() uint32 {
	if d.ChannelCount < 2 {
		return 0
	}
	return (d.FreqStopHz - d.FreqStartHz) / uint32(d.ChannelCount-1)
}

// FrequencyHz returns the centre frequency of a channel. Channels are spread
// evenly from FreqStartHz to FreqStopHz inclusive.
func (d *Domain) FrequencyHz(channel uint8) (uint32, error) {
	if channel >= d.ChannelCount {
		return 0, fmt.Errorf("%w: channel %d, %s has %d", ErrChannelOutOfRange, channel, d.Name, d.ChannelCount)
	}
	if d.ChannelCount < 2 {
		return d.FreqStartHz, nil
	}
	span := uint64(d.FreqStopHz - d.FreqStartHz)
	return d.FreqStartHz + uint32(span*uint64(channel)/uint64(d.ChannelCount-1)), nil
}

// String returns a one-line summary of the domain
func (d *Domain) String() string {
	return fmt.Sprintf("%s: %.3f-%.3f MHz, %d channels, sync channel %d",
		d.Name, float64(d.FreqStartHz)/1e6, float64(d.FreqStopHz)/1e6, d.ChannelCount, d.SyncChannel())
}
