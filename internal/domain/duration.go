package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidDuration is returned for empty chains and non-positive session lengths
var ErrInvalidDuration = errors.New("invalid appointment duration")

// DurationKind tags the shape of a DurationSpec
type DurationKind int

const (
	DurationSingle DurationKind = iota
	DurationChain
)

func (k DurationKind) String() string {
	if k == DurationChain {
		return "chain"
	}
	return "single"
}

// DurationSpec is either a single session or an ordered chain of back-to-back sessions
type DurationSpec struct {
	kind     DurationKind
	sessions []int
}

// Single builds a one-session spec
func Single(minutes int) DurationSpec {
	return DurationSpec{kind: DurationSingle, sessions: []int{minutes}}
}

// Chain builds a multi-session spec; the slice is copied
func Chain(minutes ...int) DurationSpec {
	return DurationSpec{kind: DurationChain, sessions: slices.Clone(minutes)}
}

// Kind returns the tag
func (d DurationSpec) Kind() DurationKind {
	return d.kind
}

// IsChain returns true for multi-session requests
func (d DurationSpec) IsChain() bool {
	return d.kind == DurationChain
}

// Sessions returns a copy of the per-session lengths in minutes
func (d DurationSpec) Sessions() []int {
	return slices.Clone(d.sessions)
}

// Baseline is the duration used for generation and occupancy filtering:
// the single length, or the longest session of a chain.
func (d DurationSpec) Baseline() int {
	if len(d.sessions) == 0 {
		return 0
	}
	return slices.Max(d.sessions)
}

// Total is the summed length of all sessions
func (d DurationSpec) Total() int {
	total := 0
	for _, m := range d.sessions {
		total += m
	}
	return total
}

// Validate checks that there is at least one session and every session is positive
func (d DurationSpec) Validate() error {
	if len(d.sessions) == 0 {
		return fmt.Errorf("%w: no sessions", ErrInvalidDuration)
	}
	for i, m := range d.sessions {
		if m <= 0 {
			return fmt.Errorf("%w: session %d has %d minutes", ErrInvalidDuration, i, m)
		}
	}
	return nil
}

// ValidateRange checks every session against [min, max] minutes
func (d DurationSpec) ValidateRange(min, max int) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for i, m := range d.sessions {
		if m < min || m > max {
			return fmt.Errorf("%w: session %d must be between %d and %d minutes", ErrInvalidDuration, i, min, max)
		}
	}
	return nil
}

func (d DurationSpec) String() string {
	if d.IsChain() {
		return fmt.Sprintf("chain%v", d.sessions)
	}
	return fmt.Sprintf("%dm", d.Baseline())
}
