// SPDX-License-Identifier: MIT
package nodetree

import (
	"iter"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// Tree indexes a flat set of nodes by identifier & by parent identifier.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read: no
	// operation other than Add mutates the Tree.
	Tree[K comparable, T Node[K]] struct {
		// cfg contains a pointer to the Tree's [Config].
		cfg *Config

		// order holds distinct ids in the order they were first added.
		order []K

		// byID contains the stored nodes.
		byID map[K]T

		// byParentID holds the child ids recorded for a parent id.
		byParentID map[K]*childSet[K]
	}

	// Config defines configuration options for [Tree] operations.
	Config struct {
		// Logger for [Tree] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// PoolSize is the worker count used by batch queries.
		PoolSize int
	}

	// Option defines the Tree functional option type.
	Option func(*Config)
)

// DefConfig obtains the package's [Tree] default options.
func DefConfig() *Config {
	return &Config{
		Logger:   logrus.New(),
		Debug:    false,
		PoolSize: runtime.GOMAXPROCS(0),
	}
}

// WithConfig replaces the [Tree] [Config].
//
// Options following this one modify the supplied Config.
func WithConfig(cfg *Config) Option {
	return func(c *Config) { *c = *cfg }
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithPoolSize configures the batch query worker count.
func WithPoolSize(size int) Option {
	return func(c *Config) { c.PoolSize = size }
}

// New instantiates a [Tree], adding nodes in order.
func New[K comparable, T Node[K]](nodes []T, options ...Option) *Tree[K, T] {
	cfg := DefConfig()
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	t := &Tree[K, T]{
		cfg:        cfg,
		order:      make([]K, 0, len(nodes)),
		byID:       make(map[K]T, len(nodes)),
		byParentID: make(map[K]*childSet[K]),
	}

	for _, node := range nodes {
		t.Add(node)
	}

	return t
}

// From instantiates a [Tree] from a list of nodes using the default [Config].
func From[K comparable, T Node[K]](nodes []T) *Tree[K, T] { return New[K](nodes) }

// Config retrieves the [Tree]'s Config.
func (t *Tree[K, T]) Config() *Config { return t.cfg }

// Add a node to the [Tree].
//
// A node whose id is already present replaces the stored node, keeping its position. The id
// stays registered under the previous parent id.
func (t *Tree[K, T]) Add(node T) {
	id := node.ID()
	if _, ok := t.byID[id]; ok {
		if t.cfg.Debug {
			t.cfg.Logger.Debugf("replacing node (%v)", id)
		}
	} else {
		t.order = append(t.order, id)
	}
	t.byID[id] = node

	var rootID K
	parentID := node.ParentID()
	if parentID == rootID {
		return
	}

	children, ok := t.byParentID[parentID]
	if !ok {
		children = newChildSet[K]()
		t.byParentID[parentID] = children
	}
	children.add(id)
}

// Get retrieves the node stored for an id.
func (t *Tree[K, T]) Get(id K) (node T, ok bool) {
	node, ok = t.byID[id]
	return
}

// Len is the number of distinct ids in the [Tree].
func (t *Tree[K, T]) Len() int { return len(t.order) }

// All returns an iterator over (id, node) pairs in insertion order.
func (t *Tree[K, T]) All() iter.Seq2[K, T] {
	return func(yield func(K, T) bool) {
		for _, id := range t.order {
			if !yield(id, t.byID[id]) {
				return
			}
		}
	}
}

// Roots lists the parent-less nodes in insertion order.
func (t *Tree[K, T]) Roots() (roots []T) {
	roots = make([]T, 0)

	var rootID K
	for _, node := range t.All() {
		if node.ParentID() == rootID {
			roots = append(roots, node)
		}
	}

	return
}

// Orphans lists the nodes whose parent id cannot be resolved, in insertion order.
func (t *Tree[K, T]) Orphans() (orphans []T) {
	orphans = make([]T, 0)

	var rootID K
	for _, node := range t.All() {
		parentID := node.ParentID()
		if parentID == rootID {
			continue
		}
		if _, ok := t.byID[parentID]; !ok {
			orphans = append(orphans, node)
		}
	}

	return
}

// Flat projects the [Tree] as a list of nodes in insertion order.
func (t *Tree[K, T]) Flat() (nodes []T) {
	nodes = make([]T, 0, len(t.order))
	for _, node := range t.All() {
		nodes = append(nodes, node)
	}

	return
}

// childrenOf lists the stored children of the node id whose records still name id as their
// parent, in the order they were added.
func (t *Tree[K, T]) childrenOf(id K) (children []T) {
	set, ok := t.byParentID[id]
	if !ok {
		return
	}

	children = make([]T, 0, set.Len())
	for _, childID := range set.ids {
		// Skip ids whose latest record moved to another parent.
		if child, ok := t.byID[childID]; ok && child.ParentID() == id {
			children = append(children, child)
		}
	}

	return
}

// DescendantsOf lists the nodes descended from the node id.
//
// The traversal starts from the direct children of id, appending the children of every visited
// node to the end of the worklist. An id is enqueued at most once, so the traversal terminates
// even when parent links form a cycle; a cycle through id lists id as its own descendant.
func (t *Tree[K, T]) DescendantsOf(id K) (descendants []T) {
	descendants = make([]T, 0)

	children, ok := t.byParentID[id]
	if !ok {
		return
	}

	queue := make([]K, 0, children.Len())
	enqueued := make(map[K]struct{}, children.Len())
	enqueue := func(c *childSet[K]) {
		for _, childID := range c.ids {
			if _, ok := enqueued[childID]; ok {
				continue
			}
			enqueued[childID] = struct{}{}
			queue = append(queue, childID)
		}
	}
	enqueue(children)

	var front K
	for len(queue) > 0 {
		// Pop from queue.
		front, queue = queue[0], queue[1:]

		node, ok := t.byID[front]
		if !ok {
			continue
		}
		descendants = append(descendants, node)

		if grandChildren, ok := t.byParentID[front]; ok {
			enqueue(grandChildren)
		}
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("descendants of (%v): %v", id, IDs[K](descendants))
	}

	return
}

// IsAncestorOf reports whether ancestorID is an ancestor of the node id.
//
// A node is never its own ancestor.
func (t *Tree[K, T]) IsAncestorOf(id, ancestorID K) bool {
	if id == ancestorID {
		return false
	}

	found := false
	t.walkUp(id, func(ancestor T) bool {
		found = ancestor.ID() == ancestorID
		return !found
	})

	return found
}

// AncestorsOf lists the ancestors of the node id, from its parent up to the topmost resolvable
// ancestor.
func (t *Tree[K, T]) AncestorsOf(id K) (ancestors []T) {
	ancestors = make([]T, 0)
	t.walkUp(id, func(ancestor T) bool {
		ancestors = append(ancestors, ancestor)
		return true
	})

	return
}

// walkUp follows parent links from the node id, calling fn for every resolved ancestor until fn
// returns false.
//
// The walk ends on a root, on an unresolved parent id or on revisiting a node.
func (t *Tree[K, T]) walkUp(id K, fn func(T) bool) {
	node, ok := t.byID[id]
	if !ok {
		return
	}

	var rootID K
	visited := map[K]struct{}{id: {}}
	chain := []K{id}

	for {
		parentID := node.ParentID()
		if parentID == rootID {
			return
		}

		if _, ok = visited[parentID]; ok {
			t.cfg.Logger.Warnf("parent links of (%v) revisit (%v), ending walk", id, parentID)
			if t.cfg.Debug {
				t.cfg.Logger.Debugf("walked: %s", spew.Sprint(chain))
			}
			return
		}

		if node, ok = t.byID[parentID]; !ok {
			if t.cfg.Debug {
				t.cfg.Logger.Debugf("unresolved parent (%v) of (%v)", parentID, chain[len(chain)-1])
			}
			return
		}
		visited[parentID] = struct{}{}
		chain = append(chain, parentID)

		if !fn(node) {
			return
		}
	}
}

// Without produces a copy of the [Tree] lacking the node id & its descendants.
//
// The copy is configured like the receiver & keeps the relative insertion order of the remaining
// nodes.
func (t *Tree[K, T]) Without(id K) *Tree[K, T] {
	omit := map[K]struct{}{id: {}}
	for _, node := range t.DescendantsOf(id) {
		omit[node.ID()] = struct{}{}
	}

	nodes := make([]T, 0, len(t.order))
	for nodeID, node := range t.All() {
		if _, ok := omit[nodeID]; !ok {
			nodes = append(nodes, node)
		}
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("without (%v): omitted %d of %d nodes", id, len(t.order)-len(nodes), len(t.order))
	}

	return New[K](nodes, WithConfig(t.cfg))
}
