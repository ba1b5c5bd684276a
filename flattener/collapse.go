package flattener

import (
	"fmt"

	"github.com/erraggy/flatjson/flaterrors"
	"github.com/erraggy/flatjson/internal/pathutil"
	"github.com/erraggy/flatjson/value"
)

// collapser holds the state of one flatten call. It is never shared.
type collapser struct {
	sep       string
	alt       bool
	preserve  bool
	normalize bool
	collision CollisionPolicy
	maxDepth  int
	logger    Logger

	out        *value.Map
	collisions int
}

// accumulator collects the values bound for each key while an array is
// being traversed. Keys are committed in the order they were first touched.
type accumulator struct {
	keys []string
	vals map[string][]value.Value
}

func newAccumulator() *accumulator {
	return &accumulator{vals: make(map[string][]value.Value)}
}

// add appends v to the values for key, creating the entry on first use.
func (a *accumulator) add(key string, v value.Value) {
	vals, ok := a.vals[key]
	if !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = append(vals, v)
}

func (c *collapser) child(at pathutil.Key, segment string) pathutil.Key {
	if c.normalize {
		segment = pathutil.NormalizeSegment(segment)
	}
	return at.Child(segment, c.sep)
}

func (c *collapser) checkDepth(depth int, at pathutil.Key) error {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return &flaterrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(c.maxDepth),
			Actual:       int64(depth),
			Path:         at.String(),
		}
	}
	return nil
}

// collapse visits v outside of array context. Scalars are written directly,
// objects extend the key, and arrays are gathered and committed as a unit.
func (c *collapser) collapse(v value.Value, at pathutil.Key, depth int) error {
	if err := c.checkDepth(depth, at); err != nil {
		return err
	}

	switch v.Kind() {
	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
		c.write(at.String(), v)
		return nil

	case value.KindObject:
		for k, child := range v.Members().All() {
			if err := c.collapse(child, c.child(at, k), depth+1); err != nil {
				return err
			}
		}
		return nil

	case value.KindArray:
		if c.preserve {
			for i, e := range v.Elements() {
				if err := c.collapse(e, at.Index(i, c.sep), depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		acc := newAccumulator()
		if err := c.gather(v, at, acc, depth, false); err != nil {
			return err
		}
		c.commit(acc)
		return nil

	default:
		panic(fmt.Sprintf("flattener: unknown value kind %d", v.Kind()))
	}
}

// gather visits v inside array context: every scalar leaf is appended to
// the accumulator entry for its key instead of being written.
//
// An array met directly inside another array is kept whole unless
// alternate flattening is on, in which case it is walked with the same key.
func (c *collapser) gather(v value.Value, at pathutil.Key, acc *accumulator, depth int, inArray bool) error {
	if err := c.checkDepth(depth, at); err != nil {
		return err
	}

	switch v.Kind() {
	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
		acc.add(at.String(), v)
		return nil

	case value.KindObject:
		for k, child := range v.Members().All() {
			if err := c.gather(child, c.child(at, k), acc, depth+1, false); err != nil {
				return err
			}
		}
		return nil

	case value.KindArray:
		if inArray && !c.alt {
			acc.add(at.String(), v)
			return nil
		}
		for _, e := range v.Elements() {
			if err := c.gather(e, at, acc, depth+1, true); err != nil {
				return err
			}
		}
		return nil

	default:
		panic(fmt.Sprintf("flattener: unknown value kind %d", v.Kind()))
	}
}

// write stores a scalar reached outside array context.
func (c *collapser) write(key string, v value.Value) {
	prev, exists := c.out.Get(key)
	if !exists {
		c.out.Set(key, v)
		return
	}
	c.collide(key)
	if c.collision == CollisionMerge {
		v = value.Array(append(elementsOf(prev), v)...)
	}
	c.out.Set(key, v)
}

// commit stores every accumulator entry as an array value.
func (c *collapser) commit(acc *accumulator) {
	for _, key := range acc.keys {
		vals := acc.vals[key]
		if prev, exists := c.out.Get(key); exists {
			c.collide(key)
			if c.collision == CollisionMerge {
				vals = append(elementsOf(prev), vals...)
			}
		}
		c.out.Set(key, value.Array(vals...))
	}
}

func (c *collapser) collide(key string) {
	c.collisions++
	c.logger.Debug("key collision", "key", key, "policy", c.collision.String())
}

// elementsOf returns a fresh slice holding prev's elements, or prev itself
// when it is not an array.
func elementsOf(prev value.Value) []value.Value {
	if prev.Kind() != value.KindArray {
		return []value.Value{prev}
	}
	elems := prev.Elements()
	out := make([]value.Value, len(elems), len(elems)+1)
	copy(out, elems)
	return out
}
