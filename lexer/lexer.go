// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// StateFunction type for the next function to be executed.
	StateFunction func(context.Context) StateFunction

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to capture node identifiers & markers from an outline.
	Lexer struct {
		debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// buffer holds the runes of the value being lexed.
		buffer []rune

		// pending is a rune returned to the source by backup.
		pending    rune
		hasPending bool

		// pos is the count of consumed runes, start the position of the current Item.
		pos   int
		start int

		valueCounter int
		endCounter   int
	}
)

const (
	sourceLimit   = 32
	defBufferSize = 10
)

// Lexing errors.
var (
	ErrUnknownTokens = errors.New("unknown tokens")
)

// Improves on performance compared to ORs.
var (
	whitespace = [utf8.RuneSelf]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	valueSymbols = [utf8.RuneSelf]bool{
		'_': true,
		'-': true,
		'.': true,
	}
)

// New creates a new Lexer, the source defaults to an empty input.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefEndMarker,
		splitter:  DefSplitter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Debug obtains the debug option.
func (l *Lexer) Debug() bool { return l.debug }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the count of lexed values.
//
// Read it once the Item channel is drained.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the count of lexed end markers.
//
// Read it once the Item channel is drained.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Validate checks the configured markers.
func (l *Lexer) Validate() error { return validateMarkers(l.splitter, l.endMarker) }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions, closing the Item channel on completion.
//
// Cancelling ctx stops the Lexer without emitting further Items.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		if ctx.Err() != nil {
			return
		}

		stateFunction = stateFunction(ctx)
	}
}

// LexWhitespace discards whitespace & lexes the markers following it.
func (l *Lexer) LexWhitespace(ctx context.Context) StateFunction {
	if err := l.acceptWhile(isWhitespace); err != nil {
		return l.fail(ctx, err)
	}

	l.start = l.pos
	r, err := l.next()
	if err != nil {
		return l.fail(ctx, err)
	}

	switch {
	case r == l.endMarker:
		l.endCounter++
		if !l.emit(ctx, ItemEndMarker, "") {
			return nil
		}

		return l.LexWhitespace
	case r == l.splitter:
		if !l.emit(ctx, ItemSplitter, "") {
			return nil
		}

		return l.LexWhitespace
	case isValue(r):
		l.buffer = append(l.buffer[:0], r)

		return l.LexValue
	default:
		rest := []rune{r}
		for len(rest) < sourceLimit {
			if r, err = l.next(); err != nil {
				break
			}
			rest = append(rest, r)
		}

		return l.fail(ctx, fmt.Errorf("%w at %d: %s", ErrUnknownTokens, l.start, string(rest)))
	}
}

// LexValue lexes a node identifier.
func (l *Lexer) LexValue(ctx context.Context) StateFunction {
	for {
		r, err := l.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return l.fail(ctx, err)
		}

		// End of current token type.
		if !isValue(r) || r == l.endMarker || r == l.splitter {
			l.backup(r)
			break
		}
		l.buffer = append(l.buffer, r)
	}

	l.valueCounter++
	if !l.emit(ctx, ItemValue, string(l.buffer)) {
		return nil
	}

	return l.LexWhitespace
}

// Item returns a lexed Item, ok is false once the Lexer is done.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// next returns the next rune in the input.
func (l *Lexer) next() (r rune, err error) {
	if l.hasPending {
		r, l.hasPending = l.pending, false
	} else if r, _, err = l.source.ReadRune(); err != nil {
		return
	}
	l.pos++

	return
}

// backup returns a rune to the input, only one rune can be pending.
func (l *Lexer) backup(r rune) {
	l.pending, l.hasPending = r, true
	l.pos--
}

// acceptWhile consumes runes while fn holds.
func (l *Lexer) acceptWhile(fn ValidationFunction) error {
	for {
		r, err := l.next()
		if err != nil {
			return err
		}

		if !fn(r) {
			l.backup(r)
			return nil
		}
	}
}

// emit sends an Item over the communication channel, reporting false on cancellation.
func (l *Lexer) emit(ctx context.Context, id ItemID, val string) bool {
	return l.send(ctx, Item{ID: id, Val: val, Pos: l.start})
}

func (l *Lexer) send(ctx context.Context, item Item) bool {
	if l.debug {
		l.logger.Debugf("lexer emit: %s", item)
	}

	select {
	case <-ctx.Done():
		return false
	case l.c <- item:
		return true
	}
}

// fail terminates the lex operation with an ItemEOF for io.EOF, an ItemError otherwise.
func (l *Lexer) fail(ctx context.Context, err error) StateFunction {
	if errors.Is(err, io.EOF) {
		l.start = l.pos
		l.emit(ctx, ItemEOF, "")
		return nil
	}

	l.send(ctx, Item{ID: ItemError, Err: err, Pos: l.pos})

	return nil
}

// IsValue reports whether s lexes as a single value under the Opts' markers.
func (o *Opts) IsValue(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !isValue(r) || r == o.EndMarker || r == o.Splitter {
			return false
		}
	}

	return true
}

// isWhitespace return true for whitespace, newline & carriage return.
func isWhitespace(r rune) bool { return r < utf8.RuneSelf && whitespace[r] }

// isValue return true for letters, digits & the permitted symbols.
func isValue(r rune) bool {
	return (r < utf8.RuneSelf && valueSymbols[r]) || unicode.IsLetter(r) || unicode.IsDigit(r)
}
