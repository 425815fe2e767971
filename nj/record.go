package nj

import (
	"context"

	"github.com/katalvlaran/njtree/matrix"
)

// Record is the serializable form of a Node. Children is omitted for leaves.
type Record struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Distance float64  `json:"distance" yaml:"distance"`
	IsLeaf   bool     `json:"is_leaf" yaml:"is_leaf"`
	Children []Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// Record converts the subtree rooted at n.
func (n *Node) Record() Record {
	rec := Record{
		ID:       n.id,
		Label:    n.label,
		Distance: n.distance,
		IsLeaf:   n.IsLeaf(),
	}
	if len(n.children) > 0 {
		rec.Children = make([]Record, len(n.children))
		for x, c := range n.children {
			rec.Children[x] = c.Record()
		}
	}

	return rec
}

// Result is the complete output of one reconstruction.
type Result struct {
	Tree       Record     `json:"tree" yaml:"tree"`
	Newick     string     `json:"newick" yaml:"newick"`
	Statistics Statistics `json:"statistics" yaml:"statistics"`
}

// BuildTree validates the input, runs Neighbor-Joining and returns the tree
// record, Newick text and statistics in one call.
func BuildTree(dist [][]float64, labels []string, opts ...Option) (*Result, error) {
	return BuildTreeContext(context.Background(), dist, labels, opts...)
}

// BuildTreeContext is BuildTree with cancellation, see Builder.RunContext.
func BuildTreeContext(ctx context.Context, dist [][]float64, labels []string, opts ...Option) (*Result, error) {
	b, err := New(dist, labels, opts...)
	if err != nil {
		return nil, err
	}

	return b.finish(ctx)
}

// BuildTreeFromMatrix is BuildTree for an existing matrix.
func BuildTreeFromMatrix(m matrix.Matrix, labels []string, opts ...Option) (*Result, error) {
	b, err := NewFromMatrix(m, labels, opts...)
	if err != nil {
		return nil, err
	}

	return b.finish(context.Background())
}

func (b *Builder) finish(ctx context.Context) (*Result, error) {
	if _, err := b.RunContext(ctx); err != nil {
		return nil, err
	}

	return b.Result()
}
