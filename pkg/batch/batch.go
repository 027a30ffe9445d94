// Package batch computes hop sequences for many phrases in parallel.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/fhss"
)

// Job is one phrase and domain to compute
type Job struct {
	Phrase string
	Domain string
	Line   int // source line, 0 when not read from a file
}

// Run computes every job with at most workers goroutines and returns the
// results in job order. Each job builds its own generator; nothing is
// shared between workers. The first failure cancels the remaining jobs.
func Run(ctx context.Context, jobs []Job, length int, opts fhss.Options, workers int) ([]*fhss.Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*fhss.Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fhss.Compute(job.Phrase, job.Domain, length, opts)
			if err != nil {
				if job.Line > 0 {
					return fmt.Errorf("line %d: %w", job.Line, err)
				}
				return fmt.Errorf("job %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadJobs parses one job per line in the form "phrase" or "phrase;domain".
// Blank lines and lines starting with '#' are skipped. The text after the
// last ';' is taken as the domain only when it names a known domain, so
// phrases may contain ';'. Lines without a domain use defaultDomain.
// Phrases keep their inner whitespace, since it changes the derived
// identifier; only the line ending is removed.
func ReadJobs(r io.Reader, defaultDomain string) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(strings.TrimSpace(text), "#") {
			continue
		}

		phrase, domain := text, defaultDomain
		if idx := strings.LastIndex(text, ";"); idx >= 0 {
			if _, err := domains.Lookup(text[idx+1:]); err == nil {
				phrase = text[:idx]
				domain = strings.TrimSpace(text[idx+1:])
			}
		}
		jobs = append(jobs, Job{Phrase: phrase, Domain: domain, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
