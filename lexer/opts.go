// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/sirupsen/logrus"
)

type (
	// Opts defines options shared by the Lexer & outline writers.
	Opts struct {
		Debug     bool
		EndMarker rune
		Splitter  rune
		Logger    logrus.FieldLogger
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	// DefEndMarker a `rune` indicating the end of a node's children.
	DefEndMarker = ')'

	// DefSplitter is the character used to split the outline's values.
	DefSplitter = ','

	emptyRune rune = 0
)

// NewOpts configures the default Opts.
func NewOpts() *Opts {
	return &Opts{
		EndMarker: DefEndMarker,
		Splitter:  DefSplitter,
		Logger:    logrus.New(),
	}
}

// Marker errors.
var (
	ErrInvalidMarker = errors.New("invalid marker")
)

// Validate populates missing Opts entries with defaults & checks the markers.
func (o *Opts) Validate() error {
	o.setDefaults()

	return validateMarkers(o.Splitter, o.EndMarker)
}

func (o *Opts) setDefaults() {
	if o.EndMarker == emptyRune {
		o.EndMarker = DefEndMarker
	}
	if o.Splitter == emptyRune {
		o.Splitter = DefSplitter
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
}

// WithOpts configures the Lexer from an Opts, filling in defaults.
func WithOpts(o Opts) Option {
	return func(l *Lexer) {
		o.setDefaults()

		l.debug = o.Debug
		l.endMarker = o.EndMarker
		l.splitter = o.Splitter
		l.logger = o.Logger
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// validateMarkers rejects markers the Lexer would skip as whitespace or read as part of a value.
func validateMarkers(splitter, endMarker rune) error {
	for _, r := range []rune{splitter, endMarker} {
		if r == emptyRune || unicode.IsSpace(r) || isValue(r) {
			return fmt.Errorf("%w: %q", ErrInvalidMarker, r)
		}
	}
	if splitter == endMarker {
		return fmt.Errorf("%w: splitter & end marker are both %q", ErrInvalidMarker, splitter)
	}

	return nil
}
