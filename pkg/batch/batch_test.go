package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/fhss"
)

func TestRunMatchesSequential(t *testing.T) {
	var jobs []Job
	for i := 0; i < 64; i++ {
		jobs = append(jobs, Job{
			Phrase: fmt.Sprintf("phrase-%d", i),
			Domain: domains.Names()[i%4],
		})
	}

	results, err := Run(context.Background(), jobs, 512, fhss.Options{}, 8)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("Run() returned %d results, want %d", len(results), len(jobs))
	}

	for i, job := range jobs {
		want, err := fhss.Compute(job.Phrase, job.Domain, 512, fhss.Options{})
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		got := results[i]
		if got.Phrase != job.Phrase || got.Seed != want.Seed {
			t.Fatalf("result %d = %s/%d, want %s/%d", i, got.Phrase, got.Seed, job.Phrase, want.Seed)
		}
		if matched, compared := fhss.PrefixMatch(got.Hops, want.Hops); matched != compared || compared != 512 {
			t.Fatalf("result %d hops differ: %d/%d", i, matched, compared)
		}
	}
}

func TestRunStopsOnError(t *testing.T) {
	jobs := []Job{
		{Phrase: "42,13,9,8", Domain: "FCC915"},
		{Phrase: "bad", Domain: "XX999", Line: 7},
	}

	_, err := Run(context.Background(), jobs, 256, fhss.Options{}, 2)
	if !errors.Is(err, domains.ErrUnsupportedDomain) {
		t.Fatalf("Run() error = %v, want ErrUnsupportedDomain", err)
	}
	if !strings.Contains(err.Error(), "line 7") {
		t.Errorf("Run() error = %q, want line number", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []Job{{Phrase: "a", Domain: "FCC915"}}, 256, fhss.Options{}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestReadJobs(t *testing.T) {
	input := strings.Join([]string{
		"# captures from bench",
		"42,13,9,8",
		"",
		"my phrase;eu868",
		"semi;colon;AU915\r",
		"a;b",
		"typo;XX999",
		"spaced; in866 ",
	}, "\n")

	jobs, err := ReadJobs(strings.NewReader(input), "FCC915")
	if err != nil {
		t.Fatalf("ReadJobs() error = %v", err)
	}

	want := []Job{
		{Phrase: "42,13,9,8", Domain: "FCC915", Line: 2},
		{Phrase: "my phrase", Domain: "eu868", Line: 4},
		{Phrase: "semi;colon", Domain: "AU915", Line: 5},
		{Phrase: "a;b", Domain: "FCC915", Line: 6},
		{Phrase: "typo;XX999", Domain: "FCC915", Line: 7},
		{Phrase: "spaced", Domain: "in866", Line: 8},
	}
	if len(jobs) != len(want) {
		t.Fatalf("ReadJobs() = %+v, want %+v", jobs, want)
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Errorf("jobs[%d] = %+v, want %+v", i, jobs[i], want[i])
		}
	}
}
