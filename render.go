// SPDX-License-Identifier: MIT
package nodetree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

const (
	orphansBranch     = "(orphans)"
	unreachableBranch = "(unreachable)"
)

// Render draws the [Tree] as text: every root with its descendants, followed by the orphaned
// nodes under an "(orphans)" branch & the nodes caught in parent link cycles under an
// "(unreachable)" branch.
//
// label formats a node, the node id is printed for a nil label. Children are drawn in the order
// they were added, under the parent their stored node names; an id met twice, which only
// happens on cyclic parent links, is not expanded again.
func (t *Tree[K, T]) Render(label func(T) string) string {
	if label == nil {
		label = func(node T) string { return fmt.Sprint(node.ID()) }
	}

	out := treeprint.New()
	drawn := make(map[K]struct{}, len(t.order))

	for _, root := range t.Roots() {
		t.render(out, root, label, drawn)
	}

	if orphans := t.Orphans(); len(orphans) > 0 {
		branch := out.AddBranch(orphansBranch)
		for _, orphan := range orphans {
			t.render(branch, orphan, label, drawn)
		}
	}

	var branch treeprint.Tree
	for id, node := range t.All() {
		if _, ok := drawn[id]; ok {
			continue
		}
		if branch == nil {
			branch = out.AddBranch(unreachableBranch)
		}
		t.render(branch, node, label, drawn)
	}

	return out.String()
}

func (t *Tree[K, T]) render(out treeprint.Tree, node T, label func(T) string, drawn map[K]struct{}) {
	id := node.ID()
	if _, ok := drawn[id]; ok {
		out.AddNode(label(node))
		return
	}
	drawn[id] = struct{}{}

	children := t.childrenOf(id)
	if len(children) < 1 {
		out.AddNode(label(node))
		return
	}

	branch := out.AddBranch(label(node))
	for _, child := range children {
		t.render(branch, child, label, drawn)
	}
}
