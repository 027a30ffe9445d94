package fhss

import (
	"fmt"

	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/rng"
	"github.com/herlein/gocat-hops/pkg/uid"
)

// Result holds everything derived from one phrase and domain
type Result struct {
	Phrase      string          `json:"phrase"`
	Domain      *domains.Domain `json:"-"`
	DomainName  string          `json:"domain"`
	Identifier  uid.Identifier  `json:"uid"`
	Seed        uint32          `json:"seed"`
	SyncChannel uint8           `json:"sync_channel"`
	Hops        Sequence        `json:"hops"`
}

// Compute runs the whole pipeline: phrase to identifier, identifier to seed,
// seed to generator, generator to hop sequence. Inputs are validated before
// anything is derived. Each call owns its generator, so Compute is safe to
// call from many goroutines.
func Compute(phrase, domainName string, length int, opts Options) (*Result, error) {
	domain, err := domains.Lookup(domainName)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	profile := opts.profile()
	deriver, err := uid.NewDeriver(profile)
	if err != nil {
		return nil, err
	}

	id, err := deriver.Identifier(phrase)
	if err != nil {
		return nil, err
	}
	seed := deriver.Seed(id)

	hops, err := Build(rng.NewWithProfile(seed, profile), domain, length, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Phrase:      phrase,
		Domain:      domain,
		DomainName:  domain.Name,
		Identifier:  id,
		Seed:        seed,
		SyncChannel: domain.SyncChannel(),
		Hops:        hops,
	}, nil
}

// Frequencies maps every hop to its centre frequency in Hz
func (r *Result) Frequencies() ([]uint32, error) {
	freqs := make([]uint32, len(r.Hops))
	for i, ch := range r.Hops {
		f, err := r.Domain.FrequencyHz(ch)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		freqs[i] = f
	}
	return freqs, nil
}
