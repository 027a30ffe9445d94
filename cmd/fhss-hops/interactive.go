package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/herlein/gocat-hops/pkg/config"
	"github.com/herlein/gocat-hops/pkg/domains"
	"github.com/herlein/gocat-hops/pkg/fhss"
)

const interactiveHelp = `Enter a binding phrase to print its hop sequence, or a command:
  :domain <name>    switch regulatory domain
  :length <n>       set number of hops
  :clip on|off      toggle trailing block clipping
  :find <ch ch ..>  locate a channel run in the last sequence
  :show             print current settings
  :quit             leave`

// session holds the mutable state of an interactive run
type session struct {
	settings *config.File
	opts     fhss.Options
	out      *renderer
	last     *fhss.Result
}

func runInteractive(settings *config.File, opts fhss.Options, out *renderer) error {
	domainItems := make([]readline.PrefixCompleterInterface, 0, len(domains.Names()))
	for _, name := range domains.Names() {
		domainItems = append(domainItems, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "hops> ",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem(":domain", domainItems...),
			readline.PcItem(":length"),
			readline.PcItem(":clip", readline.PcItem("on"), readline.PcItem("off")),
			readline.PcItem(":find"),
			readline.PcItem(":show"),
			readline.PcItem(":help"),
			readline.PcItem(":quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to start interactive mode: %w", err)
	}
	defer rl.Close()

	s := &session{settings: settings, opts: opts, out: out}
	fmt.Println("=== FHSS-HOPS: INTERACTIVE MODE ===")
	fmt.Println(interactiveHelp)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		quit, err := s.handle(line)
		if err != nil {
			logrus.WithError(err).Warn("Command failed")
		}
		if quit {
			return nil
		}
	}
}

// handle runs one input line and reports whether the session should end
func (s *session) handle(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, s.compute(line)
	}

	fields := strings.Fields(line)
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch fields[0] {
	case ":quit", ":q":
		return true, nil
	case ":help":
		fmt.Println(interactiveHelp)
	case ":show":
		fmt.Printf("domain=%s length=%d clip=%t firmware=%s\n",
			s.settings.Domain, s.settings.Length, s.opts.ClipTrailingBlock, s.opts.Profile)
	case ":domain":
		d, err := domains.Lookup(arg)
		if err != nil {
			return false, err
		}
		s.settings.Domain = d.Name
		fmt.Println(d)
	case ":length":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return false, fmt.Errorf("%w: %q", fhss.ErrInvalidLength, arg)
		}
		s.settings.Length = n
	case ":clip":
		switch arg {
		case "on":
			s.opts.ClipTrailingBlock = true
		case "off":
			s.opts.ClipTrailingBlock = false
		default:
			return false, fmt.Errorf("expected on or off, got %q", arg)
		}
	case ":find":
		if s.last == nil {
			return false, errors.New("no sequence computed yet")
		}
		observed, err := parseChannels(arg)
		if err != nil {
			return false, err
		}
		fmt.Printf("offsets: %v\n", fhss.Locate(s.last.Hops, observed))
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
	return false, nil
}

func (s *session) compute(phrase string) error {
	result, err := fhss.Compute(phrase, s.settings.Domain, s.settings.Length, s.opts)
	if err != nil {
		return err
	}
	s.last = result
	logResult(result)
	return s.out.render([]*fhss.Result{result})
}
