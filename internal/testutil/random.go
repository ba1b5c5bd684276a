package testutil

import (
	"math/rand/v2"

	"github.com/erraggy/flatjson/value"
)

// TreeOptions shapes the documents produced by RandomTree.
type TreeOptions struct {
	// MaxDepth bounds container nesting below the root.
	MaxDepth int
	// MaxWidth bounds the number of members or elements per container.
	MaxWidth int
	// NestedArrays allows arrays to appear directly inside arrays.
	NestedArrays bool
	// Keys is the pool object keys are drawn from. A small pool makes
	// repeated keys, and therefore merges, likely.
	Keys []string
}

// DefaultTreeOptions returns options that produce small, varied trees.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{
		MaxDepth:     4,
		MaxWidth:     4,
		NestedArrays: true,
		Keys:         []string{"a", "b", "c", "id", "name", "tags"},
	}
}

// RandomTree returns a random object rooted document. The same rng state
// always yields the same tree.
func RandomTree(rng *rand.Rand, opts TreeOptions) value.Value {
	g := &treeGen{rng: rng, opts: opts}
	return g.object(0)
}

type treeGen struct {
	rng  *rand.Rand
	opts TreeOptions
}

func (g *treeGen) node(depth int, inArray bool) value.Value {
	if depth >= g.opts.MaxDepth {
		return g.scalar()
	}
	switch g.rng.IntN(6) {
	case 0, 1, 2:
		return g.scalar()
	case 3:
		return g.object(depth + 1)
	default:
		if inArray && !g.opts.NestedArrays {
			return g.object(depth + 1)
		}
		return g.array(depth + 1)
	}
}

func (g *treeGen) object(depth int) value.Value {
	n := g.rng.IntN(g.opts.MaxWidth + 1)
	m := value.NewMap(n)
	for range n {
		key := g.opts.Keys[g.rng.IntN(len(g.opts.Keys))]
		m.Set(key, g.node(depth, false))
	}
	return value.Object(m)
}

func (g *treeGen) array(depth int) value.Value {
	n := g.rng.IntN(g.opts.MaxWidth + 1)
	elems := make([]value.Value, 0, n)
	for range n {
		elems = append(elems, g.node(depth, true))
	}
	return value.Array(elems...)
}

func (g *treeGen) scalar() value.Value {
	switch g.rng.IntN(4) {
	case 0:
		return value.Null()
	case 1:
		return value.Bool(g.rng.IntN(2) == 0)
	case 2:
		return value.Int(g.rng.Int64N(1000))
	default:
		return value.String(g.opts.Keys[g.rng.IntN(len(g.opts.Keys))])
	}
}
