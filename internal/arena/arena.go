// Package arena implements the bump allocator backing one parse.
//
// Every AST node, every synthesized string, and every child vector
// produced while parsing a single file is carried by one Arena. The
// allocator never frees individual objects; the whole region is
// reclaimed at once when the caller drops the Arena. This mirrors the
// lifetime discipline of a single compiler pass: nodes never outlive
// the parse that created them, and cross-tree references across two
// arenas are a programming error, not a supported use case.
package arena

// chunkSize is the number of slots allocated per slab before a new
// slab is appended. A few hundred keeps initial allocations cheap for
// small files while amortizing append cost on large ones.
const chunkSize = 256

// slab is one fixed-size backing array for Alloc[T]. Go has no
// placement-new, so "bump allocation" here means: append to a slab
// with spare capacity, grow a new slab on overflow. Pointers into a
// slab stay valid because a slab is never reallocated once its
// capacity is reached; only new elements are appended within the
// pre-reserved capacity.
type slab[T any] struct {
	items []T
}

// Arena owns every byte slice and node slab allocated for one parse.
type Arena struct {
	bytes  [][]byte
	nodeID uint32
}

// New returns an empty Arena ready to back one parse.
func New() *Arena {
	return &Arena{}
}

// NewString copies s into arena-owned storage and returns it as a
// byte slice the caller may safely retain for the arena's lifetime.
// Used for synthesized identifiers and decoded string/template
// literals that can't be represented as a zero-copy slice of the
// source text.
func (a *Arena) NewString(s string) []byte {
	buf := make([]byte, len(s))
	copy(buf, s)
	a.bytes = append(a.bytes, buf)
	return buf
}

// NextNodeID hands out the next distinct node id for this arena.
// Nothing in the module calls it: the semantic builder assigns the
// AstNodeIds that identifiers and declarations carry with its own
// counter.
func (a *Arena) NextNodeID() uint32 {
	id := a.nodeID
	a.nodeID++
	return id
}

// NodeCount reports how many node ids NextNodeID has handed out so
// far.
func (a *Arena) NodeCount() uint32 {
	return a.nodeID
}

// Slab is a type-safe, arena-scoped bump allocator for a single kind
// of payload. Call NewSlab[T]() once per node kind in a parser and
// reuse it for every node of that kind; it only ever grows.
type Slab[T any] struct {
	slabs []slab[T]
}

// NewSlab constructs a slab, pre-reserving its first chunk so the
// first chunkSize allocations never hit an append-driven growth.
func NewSlab[T any]() *Slab[T] {
	return &Slab[T]{slabs: []slab[T]{{items: make([]T, 0, chunkSize)}}}
}

// Alloc places v in the slab and returns a stable pointer to the
// stored copy. The pointer remains valid for the arena's lifetime.
func (s *Slab[T]) Alloc(v T) *T {
	last := &s.slabs[len(s.slabs)-1]
	if len(last.items) == cap(last.items) {
		s.slabs = append(s.slabs, slab[T]{items: make([]T, 0, chunkSize)})
		last = &s.slabs[len(s.slabs)-1]
	}
	last.items = append(last.items, v)
	return &last.items[len(last.items)-1]
}

// Len returns how many values have been allocated from this slab,
// summed across all chunks.
func (s *Slab[T]) Len() int {
	n := 0
	for _, c := range s.slabs {
		n += len(c.items)
	}
	return n
}
