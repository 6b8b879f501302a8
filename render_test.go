// SPDX-License-Identifier: MIT
package nodetree

import (
	"reflect"
	"strings"
	"testing"
)

// renderedLabels strips the tree drawing from Render's output, keeping the labels in order.
func renderedLabels(output string) (labels []string) {
	for _, line := range strings.Split(output, "\n") {
		if label := strings.TrimLeft(line, "│├└─ \u00a0"); label != "" {
			labels = append(labels, label)
		}
	}

	return
}

func TestTree_Render(t *testing.T) {
	tests := []struct {
		name  string
		tree  *recordTree
		label func(*Record[string]) string
		want  []string
	}{
		{
			name: "fixture",
			tree: simpleTree(),
			want: []string{".", "root", "child-a", "child-a-1", "child-a-2", "child-b", "root-2"},
		},
		{
			name:  "label",
			tree:  From[string]([]*Record[string]{{Key: "a", Label: "top"}, {Key: "b", Parent: "a"}}),
			label: func(r *Record[string]) string { return r.Key + "=" + r.Label },
			want:  []string{".", "a=top", "b="},
		},
		{
			name: "orphans",
			tree: From[string]([]*Record[string]{{Key: "a"}, {Key: "x", Parent: "missing"}, {Key: "y", Parent: "x"}}),
			want: []string{".", "a", orphansBranch, "x", "y"},
		},
		{
			name: "cyclic parent links",
			tree: From[string]([]*Record[string]{{Key: "r"}, {Key: "A", Parent: "B"}, {Key: "B", Parent: "A"}}),
			want: []string{".", "r", unreachableBranch, "A", "B", "A"},
		},
		{
			name: "re-parented node",
			tree: func() *recordTree {
				tree := simpleTree()
				tree.Add(&Record[string]{Key: "child-b", Parent: "root-2"})
				return tree
			}(),
			want: []string{".", "root", "child-a", "child-a-1", "child-a-2", "root-2", "child-b"},
		},
		{
			name: "empty",
			tree: New[string]([]*Record[string]{}),
			want: []string{"."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.tree.Render(tt.label)
			if got := renderedLabels(output); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tree.Render() labels = %v, want %v\n%s", got, tt.want, output)
			}
		})
	}
}

func TestTree_RenderNesting(t *testing.T) {
	output := simpleTree().Render(nil)

	indent := func(label string) int {
		for _, line := range strings.Split(output, "\n") {
			if strings.HasSuffix(line, " "+label) {
				return len([]rune(line)) - len([]rune(label))
			}
		}

		t.Fatalf("Tree.Render() lacks %q:\n%s", label, output)
		return 0
	}

	if !(indent("root") < indent("child-a") && indent("child-a") < indent("child-a-1")) {
		t.Errorf("Tree.Render() nesting is wrong:\n%s", output)
	}
	if indent("root") != indent("root-2") || indent("child-a") != indent("child-b") {
		t.Errorf("Tree.Render() siblings are misaligned:\n%s", output)
	}
}
