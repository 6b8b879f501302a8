// SPDX-License-Identifier: MIT
package nodetree

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/nodetree/lexer"
)

// Deserialization errors.
var (
	ErrInvalidOutlineSrc   = errors.New("invalid outline source")
	ErrExcessiveValues     = errors.New("the outline source has excessive values")
	ErrExcessiveEndMarkers = errors.New("the outline source has excessive end markers")
	ErrMissingSplitter     = errors.New("missing splitter before value")
	ErrMissingValue        = errors.New("missing value after splitter")
)

// Deserialize transforms an outline into a [Tree] of [Record]s, the lexer options supply the
// source & markers.
//
// Top-level values become roots, nested values take the enclosing value as their parent. An
// empty source yields an empty Tree.
func Deserialize(ctx context.Context, opts ...lexer.Option) (t *Tree[string, *Record[string]], err error) {
	l := lexer.New(opts...)
	t = New[string]([]*Record[string]{}, WithLogger(l.Logger()), WithDebug(l.Debug()))

	if err = l.Validate(); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidOutlineSrc, err)
		return
	}

	lexCtx, lexCancel := context.WithCancel(ctx)
	defer lexCancel()
	go l.Lex(lexCtx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			if l.Debug() {
				l.Logger().Debugf("partial tree: %s", spew.Sprint(IDs[string](t.Flat())))
			}

			err = fmt.Errorf("%w: %w", ErrInvalidOutlineSrc, err)
		}
	}()

	if err = deserialize(ctx, l, t); err != nil {
		return
	}

	if l.Debug() {
		l.Logger().Debugf("deserialized %d values, %d end markers: %v",
			l.ValueCounter(), l.EndCounter(), IDs[string](t.Flat()))
	}

	return
}

// deserialize performs the deserialization grunt work, adding the lexed values to t.
func deserialize(ctx context.Context, l *lexer.Lexer, t *Tree[string, *Record[string]]) (err error) {
	// The nodes with unterminated children, innermost last.
	var open []string
	expectValue, afterSplitter := true, false

	for {
		item, proceed := l.Item()
		if !proceed {
			// Lexer terminated by cancellation.
			return ctx.Err()
		}

		switch item.ID {
		case lexer.ItemError:
			// Stop input processing.
			return item.Err
		case lexer.ItemEOF:
			switch {
			case afterSplitter:
				return fmt.Errorf("%w at %d", ErrMissingValue, item.Pos)
			case len(open) > 0:
				return fmt.Errorf("%w: +%d (%s)", ErrExcessiveValues, len(open), open[len(open)-1])
			}

			return
		case lexer.ItemSplitter:
			if expectValue {
				return fmt.Errorf("%w at %d", ErrMissingValue, item.Pos)
			}
			expectValue, afterSplitter = true, true
		case lexer.ItemEndMarker:
			if len(open) < 1 {
				return fmt.Errorf("%w: %s at %d", ErrExcessiveEndMarkers, string(l.EndMarker()), item.Pos)
			}
			if afterSplitter {
				return fmt.Errorf("%w at %d", ErrMissingValue, item.Pos)
			}
			open = open[:len(open)-1]
			expectValue = false
		case lexer.ItemValue:
			if !expectValue {
				return fmt.Errorf("%w %q at %d", ErrMissingSplitter, item.Val, item.Pos)
			}

			var parentID string
			if len(open) > 0 {
				parentID = open[len(open)-1]
			}
			t.Add(NewRecord(item.Val, parentID))

			open = append(open, item.Val)
			expectValue, afterSplitter = false, false
		}
	}
}
