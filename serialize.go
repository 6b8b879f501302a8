// SPDX-License-Identifier: MIT
package nodetree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/nodetree/lexer"
)

// Serialization errors.
var (
	ErrUnencodableValue = errors.New("value cannot be encoded in an outline")
)

// Serialize transforms a [Tree] into an outline: every node is written as its id, followed by
// its children & an end marker, values are separated by the splitter.
//
// Roots are written in insertion order, children in the order they were added; a child is only
// written under the parent its stored node names. Orphaned nodes follow the roots & decode as
// roots, as do the nodes left unreached on cyclic parent links, which are logged.
func (t *Tree[K, T]) Serialize(ctx context.Context, opts lexer.Opts) (output string, err error) {
	if err = opts.Validate(); err != nil {
		return
	}

	var buffer strings.Builder
	written := make(map[K]struct{}, len(t.order))

	writeTop := func(node T) error {
		if _, ok := written[node.ID()]; ok {
			return nil
		}
		if buffer.Len() > 0 {
			buffer.WriteRune(opts.Splitter)
		}

		return t.serialize(ctx, &opts, &buffer, node, written)
	}

	for _, node := range append(t.Roots(), t.Orphans()...) {
		if err = writeTop(node); err != nil {
			return
		}
	}

	for id, node := range t.All() {
		if _, ok := written[id]; ok {
			continue
		}

		opts.Logger.Warnf("(%v) is unreachable from a root, writing it as a top-level value", id)
		if err = writeTop(node); err != nil {
			return
		}
	}

	output = buffer.String()
	if opts.Debug {
		opts.Logger.Debugf("serialized %d nodes: %s", len(written), output)
	}

	return
}

// serialize performs the serialization grunt work.
func (t *Tree[K, T]) serialize(ctx context.Context, opts *lexer.Opts, buffer *strings.Builder, node T, written map[K]struct{}) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	id := node.ID()
	value := fmt.Sprint(id)
	if !opts.IsValue(value) {
		return fmt.Errorf("%w: %q", ErrUnencodableValue, value)
	}
	buffer.WriteString(value)
	written[id] = struct{}{}

	for _, child := range t.childrenOf(id) {
		// Only cyclic parent links lead to a written node.
		if _, ok := written[child.ID()]; ok {
			continue
		}

		buffer.WriteRune(opts.Splitter)
		if err = t.serialize(ctx, opts, buffer, child, written); err != nil {
			return
		}
	}
	buffer.WriteRune(opts.EndMarker)

	return
}
