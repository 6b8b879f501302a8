// SPDX-License-Identifier: MIT
package nodetree

import (
	"sort"

	"golang.org/x/exp/constraints"
)

type (
	// Node defines an interface for entities that can be held by a [Tree].
	Node[K comparable] interface {
		// ID obtains the identifier of the Node.
		ID() K
		// ParentID obtains the identifier of the Node's parent.
		//
		// The zero value marks a root Node.
		ParentID() K
	}

	// Record is a sample Node interface implementation.
	Record[K comparable] struct {
		Key    K      `json:"id"`
		Parent K      `json:"parentId,omitempty"`
		Label  string `json:"label,omitempty"`
	}

	// childSet holds child ids in insertion order, without duplicates.
	childSet[K comparable] struct {
		ids   []K
		index map[K]struct{}
	}
)

// NewRecord instantiates a Record.
func NewRecord[K comparable](id, parentID K) *Record[K] {
	return &Record[K]{Key: id, Parent: parentID}
}

// ID obtains the identifier stored by the Record.
func (r *Record[K]) ID() K { return r.Key }

// ParentID obtains the parent identifier stored by the Record.
func (r *Record[K]) ParentID() K { return r.Parent }

func newChildSet[K comparable]() *childSet[K] {
	return &childSet[K]{index: make(map[K]struct{})}
}

// add appends id unless it is already a member.
func (c *childSet[K]) add(id K) {
	if _, ok := c.index[id]; ok {
		return
	}

	c.index[id] = struct{}{}
	c.ids = append(c.ids, id)
}

// Len is the number of members.
func (c *childSet[K]) Len() int { return len(c.ids) }

// SortByID sorts a list of nodes in ascending order of their identifiers.
//
// Useful when comparing node lists whose order is irrelevant.
func SortByID[K constraints.Ordered, T Node[K]](nodes []T) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}

// IDs returns the identifiers of a list of nodes, preserving their order.
func IDs[K comparable, T Node[K]](nodes []T) (ids []K) {
	ids = make([]K, len(nodes))
	for index := range nodes {
		ids[index] = nodes[index].ID()
	}

	return
}
