// fhss-hops: Predict the FHSS hop sequence of a binding-phrase transmitter
//
// This tool derives the binding identifier, hop seed and channel sequence
// that the firmware computes for a phrase and regulatory domain, so that
// captured traffic can be correlated against the predicted pattern.
//
// Examples:
//
//	# Default phrase on the US band
//	./fhss-hops
//
//	# Binding phrase on the EU band, 512 hops, as JSON
//	./fhss-hops -domain EU868 -phrase "my binding phrase" -length 512 -format json
//
//	# Where in the sequence does an observed run of channels sit?
//	./fhss-hops -phrase "my binding phrase" -find "12 31 7"
//
//	# Many phrases at once, one "phrase;domain" per line
//	./fhss-hops -batch phrases.txt -format csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/herlein/gocat-hops/pkg/batch"
	"github.com/herlein/gocat-hops/pkg/config"
	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/fhss"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
}

func main() {
	configPath := flag.String("c", "", "Configuration file path (JSON or YAML)")
	domain := flag.String("domain", domains.DefaultName, "Regulatory domain: "+strings.Join(domains.Names(), ", "))
	phrase := flag.String("phrase", config.DefaultPhrase, "Binding phrase (comma-separated integers or a string)")
	length := flag.Int("length", fhss.DefaultLength, "Number of hops to generate")
	clip := flag.Bool("clip", false, "Skip swaps past the end of a partial trailing block, matching the reference script; "+
		"without it the last partial block is shuffled whole and differs from the script")
	format := flag.String("format", config.FormatText, "Output format: text, json or csv")
	columns := flag.Int("columns", config.DefaultColumns, "Hops per line in text output")
	freqs := flag.Bool("freqs", false, "Also print hop frequencies")
	verbose := flag.Bool("v", false, "Verbose output")

	// Modes
	batchPath := flag.String("batch", "", "File with one 'phrase[;domain]' per line ('-' for stdin); "+
		"text after the last ';' is a domain only if it names one")
	workers := flag.Int("workers", 0, "Batch worker count (default: number of CPUs)")
	interactive := flag.Bool("i", false, "Interactive mode")
	compare := flag.Int("compare", 0, "Compare the sequence with one of this length and report the prefix match")
	find := flag.String("find", "", "Locate an observed channel run, e.g. \"12 31 7\"")
	listDomains := flag.Bool("list-domains", false, "List regulatory domains and exit")
	saveConfig := flag.String("save-config", "", "Write the effective settings to this file and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-domain <name>] [-phrase <phrase>] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Predict the FHSS hop sequence derived from a binding phrase\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -domain EU868 -phrase \"my binding phrase\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -phrase 42,13,9,8 -length 512 -compare 256\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -batch phrases.txt -format csv\n", os.Args[0])
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *listDomains {
		for _, d := range domains.All() {
			fmt.Println(d)
		}
		return
	}

	settings := config.Default()
	if *configPath != "" {
		logrus.Debugf("Loading configuration from: %s", *configPath)
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fatalf("Failed to load configuration: %v", err)
		}
		settings = loaded
		settings.ApplyDefaults()
	}

	// Flags given on the command line override the file
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(settings, set, flagValues{
		domain:  *domain,
		phrase:  *phrase,
		length:  *length,
		clip:    *clip,
		format:  *format,
		columns: *columns,
		freqs:   *freqs,
		workers: *workers,
	})

	if settings.Length <= 0 {
		fatalf("%v", fmt.Errorf("%w: %d", fhss.ErrInvalidLength, settings.Length))
	}
	if err := settings.Validate(); err != nil {
		fatalf("%v", err)
	}
	opts, err := settings.ToOptions()
	if err != nil {
		fatalf("%v", err)
	}
	logrus.Debugf("Firmware profile: %s", opts.Profile)

	if *saveConfig != "" {
		if err := config.SaveToFile(settings, *saveConfig); err != nil {
			fatalf("Failed to save configuration: %v", err)
		}
		logrus.Infof("Configuration saved to %s", *saveConfig)
		return
	}

	out := &renderer{
		w:           os.Stdout,
		format:      settings.Output.Format,
		columns:     settings.Output.Columns,
		frequencies: settings.Output.Frequencies,
	}

	switch {
	case *interactive:
		if err := runInteractive(settings, opts, out); err != nil {
			fatalf("%v", err)
		}
	case *batchPath != "":
		if err := runBatch(*batchPath, settings, opts, out); err != nil {
			fatalf("%v", err)
		}
	default:
		if err := runSingle(settings, opts, out, *compare, *find); err != nil {
			fatalf("%v", err)
		}
	}
}

func runSingle(settings *config.File, opts fhss.Options, out *renderer, compare int, find string) error {
	result, err := fhss.Compute(settings.Phrase, settings.Domain, settings.Length, opts)
	if err != nil {
		return err
	}
	logResult(result)

	if compare != 0 {
		other, err := fhss.Compute(settings.Phrase, settings.Domain, compare, opts)
		if err != nil {
			return err
		}
		matched, compared := fhss.PrefixMatch(result.Hops, other.Hops)
		logrus.WithFields(logrus.Fields{
			"lengths":  fmt.Sprintf("%d/%d", settings.Length, compare),
			"matched":  matched,
			"compared": compared,
		}).Infof("Prefix match: %.1f%%", 100*float64(matched)/float64(compared))
	}

	if find != "" {
		observed, err := parseChannels(find)
		if err != nil {
			return err
		}
		offsets := fhss.Locate(result.Hops, observed)
		if len(offsets) == 0 {
			logrus.Warnf("Observed run %v not found in sequence", observed)
		} else {
			logrus.Infof("Observed run %v found at offsets %v", observed, offsets)
		}
	}

	return out.render([]*fhss.Result{result})
}

func runBatch(path string, settings *config.File, opts fhss.Options, out *renderer) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	jobs, err := batch.ReadJobs(in, settings.Domain)
	if err != nil {
		return err
	}
	logrus.Debugf("Read %d jobs from %s", len(jobs), path)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := batch.Run(ctx, jobs, settings.Length, opts, settings.Workers)
	if err != nil {
		return err
	}
	for _, r := range results {
		logrus.WithFields(logrus.Fields{
			"phrase": r.Phrase,
			"domain": r.DomainName,
			"uid":    r.Identifier.String(),
			"seed":   r.Seed,
		}).Debug("Computed sequence")
	}
	logrus.Infof("Computed %d sequences", len(results))
	return out.render(results)
}

// flagValues carries the parsed values of the flags that can override a
// configuration file
type flagValues struct {
	domain  string
	phrase  string
	length  int
	clip    bool
	format  string
	columns int
	freqs   bool
	workers int
}

// applyFlags copies the flags named in set onto settings
func applyFlags(settings *config.File, set map[string]bool, v flagValues) {
	if set["domain"] {
		settings.Domain = v.domain
	}
	if set["phrase"] {
		settings.Phrase = v.phrase
	}
	if set["length"] {
		settings.Length = v.length
	}
	if set["clip"] {
		settings.ClipTrailingBlock = v.clip
	}
	if set["format"] {
		settings.Output.Format = strings.ToLower(v.format)
	}
	if set["columns"] {
		settings.Output.Columns = v.columns
	}
	if set["freqs"] {
		settings.Output.Frequencies = v.freqs
	}
	if set["workers"] {
		settings.Workers = v.workers
	}
}

// logResult writes the diagnostic summary of a computation
func logResult(r *fhss.Result) {
	logrus.Infof("UID: %s", r.Identifier)
	logrus.Infof("Seed: %d", r.Seed)
	logrus.Infof("Regulatory Domain: %s", r.DomainName)
	logrus.Infof("Sync Channel: %d", r.SyncChannel)
	logrus.Infof("Total Hops: %d", len(r.Hops))
}

// parseChannels parses channel indices separated by spaces or commas
func parseChannels(s string) ([]uint8, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	channels := make([]uint8, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid channel %q: %w", field, err)
		}
		channels = append(channels, uint8(v))
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels in %q", s)
	}
	return channels, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
