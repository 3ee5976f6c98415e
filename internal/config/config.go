// Package config holds the engine configuration: an immutable value
// produced by merging caller options over defaults. Re-setup merges a new
// Options over the previous value and yields a new Config; nothing is
// mutated in place.
package config

import (
	"fmt"

	"github.com/dshills/relnum/internal/format"
	"github.com/dshills/relnum/internal/policy"
)

// Config is the effective engine configuration. Values are immutable
// after Merge; treat as a snapshot.
type Config struct {
	// Ignored holds the filetype patterns excluded from rendering.
	Ignored IgnoreList

	// SpaceReserve is extra column headroom demanded before the window
	// edge when deciding whether an annotation fits.
	SpaceReserve int

	// ShowOnBlankLines permits annotations on blank lines.
	ShowOnBlankLines bool

	// ShowOnCursorLine permits an annotation on the cursor line.
	ShowOnCursorLine bool

	// MinLineDistance suppresses lines within this distance of the
	// cursor, inclusive.
	MinLineDistance int

	// Format maps a signed cursor offset to annotation text and style.
	Format format.Func
}

// Default returns the built-in configuration: no ignored filetypes, no
// space reserve, blank lines hidden, cursor line shown, distance 1, and
// absolute decimal formatting.
func Default() Config {
	return Config{
		ShowOnCursorLine: true,
		MinLineDistance:  1,
		Format:           format.Default,
	}
}

// Rules projects the configuration onto the suppression policy's knobs.
func (c Config) Rules() policy.Rules {
	return policy.Rules{
		ShowOnCursorLine: c.ShowOnCursorLine,
		ShowOnBlankLines: c.ShowOnBlankLines,
		MinLineDistance:  c.MinLineDistance,
		SpaceReserve:     c.SpaceReserve,
	}
}

// Options is a partial configuration supplied at setup. Nil fields keep
// the prior value; set fields override it. IgnoredFiletypes distinguishes
// nil (keep) from an empty non-nil slice (clear the list).
type Options struct {
	IgnoredFiletypes []string    `toml:"ignored_filetypes"`
	SpaceReserve     *int        `toml:"space_reserve"`
	ShowOnBlankLines *bool       `toml:"show_on_blank_lines"`
	ShowOnCursorLine *bool       `toml:"show_on_cursor_line"`
	MinLineDistance  *int        `toml:"min_line_distance"`
	Format           format.Func `toml:"-"`
}

// Merge produces a new Config with o's set fields applied over c.
// Patterns are compiled and numeric options validated; c is unchanged on
// error.
func (c Config) Merge(o Options) (Config, error) {
	out := c

	if o.IgnoredFiletypes != nil {
		ignored, err := CompileIgnoreList(o.IgnoredFiletypes)
		if err != nil {
			return Config{}, err
		}
		out.Ignored = ignored
	}
	if o.SpaceReserve != nil {
		if *o.SpaceReserve < 0 {
			return Config{}, fmt.Errorf("%w: space_reserve %d", ErrNegativeOption, *o.SpaceReserve)
		}
		out.SpaceReserve = *o.SpaceReserve
	}
	if o.ShowOnBlankLines != nil {
		out.ShowOnBlankLines = *o.ShowOnBlankLines
	}
	if o.ShowOnCursorLine != nil {
		out.ShowOnCursorLine = *o.ShowOnCursorLine
	}
	if o.MinLineDistance != nil {
		if *o.MinLineDistance < 0 {
			return Config{}, fmt.Errorf("%w: min_line_distance %d", ErrNegativeOption, *o.MinLineDistance)
		}
		out.MinLineDistance = *o.MinLineDistance
	}
	if o.Format != nil {
		out.Format = o.Format
	}

	return out, nil
}
