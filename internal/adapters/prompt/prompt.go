// Package prompt asks the user yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"golang.org/x/term"
)

// Mode selects how questions are answered.
type Mode int

const (
	// ModeAsk asks on the terminal when one is attached.
	ModeAsk Mode = iota
	// ModeAssumeYes answers every question with yes.
	ModeAssumeYes
	// ModeDisabled never asks.
	ModeDisabled
)

// ResolveMode applies the --yes and --no-prompt flags.
// --no-prompt wins when both are set.
func ResolveMode(yes, noPrompt bool) Mode {
	switch {
	case noPrompt:
		return ModeDisabled
	case yes:
		return ModeAssumeYes
	default:
		return ModeAsk
	}
}

var _ ports.Prompter = (*Prompter)(nil)

// Prompter implements ports.Prompter.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	mode        Mode
}

// New creates a Prompter reading from stdin and writing to stderr.
// It only asks when stdin is a terminal and CI is not set.
func New(mode Mode) *Prompter {
	ci := os.Getenv("CI")
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && ci != "true" && ci != "1"
	return NewWithIO(os.Stdin, os.Stderr, interactive, mode)
}

// NewWithIO creates a Prompter on the given streams.
func NewWithIO(in io.Reader, out io.Writer, interactive bool, mode Mode) *Prompter {
	return &Prompter{in: in, out: out, interactive: interactive, mode: mode}
}

// Confirm asks the question and reports whether the user answered yes.
// Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	switch {
	case p.mode == ModeAssumeYes:
		return true, nil
	case p.mode == ModeDisabled, !p.interactive:
		return false, domain.ErrPromptUnavailable
	}

	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, err
	}

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
