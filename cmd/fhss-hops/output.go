package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/herlein/gocat-hops/pkg/config"
	"github.com/herlein/gocat-hops/pkg/fhss"
)

// renderer writes results to stdout in the configured format
type renderer struct {
	w           io.Writer
	format      string
	columns     int
	frequencies bool
}

type jsonResult struct {
	*fhss.Result
	FrequenciesHz []uint32 `json:"frequencies_hz,omitempty"`
}

func (r *renderer) render(results []*fhss.Result) error {
	switch r.format {
	case config.FormatJSON:
		return r.renderJSON(results)
	case config.FormatCSV:
		return r.renderCSV(results)
	default:
		for _, result := range results {
			if err := r.renderText(result); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *renderer) renderText(result *fhss.Result) error {
	columns := r.columns
	if columns <= 0 {
		columns = config.DefaultColumns
	}

	if len(result.Hops) > 0 {
		fmt.Fprintf(r.w, "FHSS Sequence (indices) for %q on %s:\n", result.Phrase, result.DomainName)
	}
	for i, ch := range result.Hops {
		fmt.Fprintf(r.w, "%2d ", ch)
		if (i+1)%columns == 0 {
			fmt.Fprintln(r.w)
		}
	}
	if len(result.Hops)%columns != 0 {
		fmt.Fprintln(r.w)
	}

	if !r.frequencies {
		return nil
	}

	freqs, err := result.Frequencies()
	if err != nil {
		return err
	}
	fmt.Fprintln(r.w, "Frequencies (MHz):")
	for i, f := range freqs {
		fmt.Fprintf(r.w, "%.3f ", float64(f)/1e6)
		if (i+1)%columns == 0 {
			fmt.Fprintln(r.w)
		}
	}
	if len(freqs)%columns != 0 {
		fmt.Fprintln(r.w)
	}
	return nil
}

func (r *renderer) renderJSON(results []*fhss.Result) error {
	out := make([]jsonResult, len(results))
	for i, result := range results {
		out[i].Result = result
		if r.frequencies {
			freqs, err := result.Frequencies()
			if err != nil {
				return err
			}
			out[i].FrequenciesHz = freqs
		}
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if len(out) == 1 {
		return enc.Encode(out[0])
	}
	return enc.Encode(out)
}

func (r *renderer) renderCSV(results []*fhss.Result) error {
	w := csv.NewWriter(r.w)

	header := []string{"phrase", "domain", "uid", "seed", "slot", "channel"}
	if r.frequencies {
		header = append(header, "frequency_hz")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		var freqs []uint32
		if r.frequencies {
			var err error
			if freqs, err = result.Frequencies(); err != nil {
				return err
			}
		}

		for i, ch := range result.Hops {
			row := []string{
				result.Phrase,
				result.DomainName,
				result.Identifier.String(),
				strconv.FormatUint(uint64(result.Seed), 10),
				strconv.Itoa(i),
				strconv.Itoa(int(ch)),
			}
			if freqs != nil {
				row = append(row, strconv.FormatUint(uint64(freqs[i]), 10))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
