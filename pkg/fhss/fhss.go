// Package fhss builds the Frequency Hopping Spread Spectrum (FHSS) channel
// sequence that binding-phrase firmware derives from its hop seed.
package fhss

import (
	"encoding/json"
	"fmt"

	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/firmware"
	"github.com/herlein/gocat-hops/pkg/rng"
)

// DefaultLength is the hop sequence length used by the firmware
const DefaultLength = 256

// Options control how a sequence is built
type Options struct {
	// ClipTrailingBlock reproduces the reference script: a partial block at
	// the end of the sequence skips swaps whose target lies past the end.
	// The draw is still consumed. When false, whole blocks are shuffled and
	// the result truncated, so every length shares its prefix with longer ones.
	ClipTrailingBlock bool

	// Profile selects the firmware constants; nil means firmware.Default()
	Profile *firmware.Profile
}

func (o Options) profile() firmware.Profile {
	if o.Profile == nil {
		return firmware.Default()
	}
	return *o.Profile
}

// Sequence is an ordered list of channel indices, one per hop slot
type Sequence []uint8

// MarshalJSON renders the sequence as a number array rather than base64
func (s Sequence) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(s))
	for i, ch := range s {
		ints[i] = int(ch)
	}
	return json.Marshal(ints)
}

// Build draws a hop sequence of the given length from src.
//
// Slots are grouped in blocks of ChannelCount. The first slot of every block
// is the sync channel and never moves. The remaining slots start as the
// channel equal to their offset in the block, with channel 0 taking the
// sync channel's place. Each non-sync slot, in order, is then swapped with
// a random non-sync slot of the same block, drawing exactly once from src.
func Build(src rng.Source, domain *domains.Domain, length int, opts Options) (Sequence, error) {
	if domain == nil {
		return nil, fmt.Errorf("%w: no domain given", domains.ErrUnsupportedDomain)
	}
	if domain.ChannelCount < 2 {
		return nil, fmt.Errorf("%w: %s has %d channels", domains.ErrUnsupportedDomain, domain.Name, domain.ChannelCount)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	count := int(domain.ChannelCount)
	sync := int(domain.SyncChannel())

	n := length
	if !opts.ClipTrailingBlock {
		n = (length + count - 1) / count * count
	}

	seq := make(Sequence, n)
	for i := range seq {
		switch i % count {
		case 0:
			seq[i] = uint8(sync)
		case sync:
			seq[i] = 0
		default:
			seq[i] = uint8(i % count)
		}
	}

	for i := 0; i < n; i++ {
		if i%count == 0 {
			continue
		}
		blockStart := i / count * count
		j := blockStart + int(src.NextBounded(uint32(count-1))) + 1
		if j < n {
			seq[i], seq[j] = seq[j], seq[i]
		}
	}

	return seq[:length:length], nil
}

// IsSyncSlot reports whether slot i of a sequence for domain is a sync slot
func IsSyncSlot(domain *domains.Domain, i int) bool {
	return i%int(domain.ChannelCount) == 0
}
