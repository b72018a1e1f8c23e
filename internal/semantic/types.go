// Package semantic builds the scope tree, symbol table, and
// control-flow graph for one parsed program. It is a second pass over
// the AST the parser already produced: the parser never resolves a
// name or mints a node id, it only shapes the tree.
package semantic

import "github.com/astforge/astforge/internal/span"

// ScopeFlags classifies what kind of lexical scope a Scope represents.
// A scope can carry more than one flag, e.g. an arrow function body is
// both ScopeFunction and ScopeArrow.
type ScopeFlags uint16

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeBlock
	ScopeArrow
	ScopeStrict
	ScopeClassStaticBlock
)

func (f ScopeFlags) Has(bit ScopeFlags) bool { return f&bit != 0 }

// ScopeId indexes into Model.Scopes. InvalidScopeId marks the root
// scope's absent parent.
type ScopeId uint32

const InvalidScopeId ScopeId = ^ScopeId(0)

// Scope is one node of the scope tree: a parent pointer, the set of
// names bound directly within it, and the child scopes nested inside.
type Scope struct {
	Id       ScopeId
	Parent   ScopeId
	Flags    ScopeFlags
	Bindings map[span.Atom]SymbolId
	Children []ScopeId
}

// SymbolFlags records how a symbol was declared. A symbol can be both
// SymbolVar and SymbolFunction when a function declaration is also
// visible as a var binding in its enclosing function scope.
type SymbolFlags uint16

const (
	SymbolVar SymbolFlags = 1 << iota
	SymbolLet
	SymbolConst
	SymbolFunction
	SymbolClass
	SymbolImport
	SymbolTypeOnly
)

func (f SymbolFlags) Has(bit SymbolFlags) bool { return f&bit != 0 }

// SymbolId indexes into Model.Symbols.
type SymbolId uint32

const InvalidSymbolId SymbolId = ^SymbolId(0)

// Symbol is one declared binding: its name, the scope it lives in, the
// node that declared it, and every reference that resolved to it.
type Symbol struct {
	Id          SymbolId
	Name        span.Atom
	Declaration span.AstNodeId
	Scope       ScopeId
	Flags       SymbolFlags
	References  []span.AstNodeId
}

// Reference is one identifier use. Symbol is InvalidSymbolId when the
// name resolves past the top scope, i.e. a global or an undeclared
// reference.
type Reference struct {
	Id     span.AstNodeId
	Name   span.Atom
	Scope  ScopeId
	Symbol SymbolId
}

// Counts seeds capacities for the scope/symbol pass: a
// pre-pass walk increments these four counters so the real pass can
// preallocate its slices once instead of growing them node by node.
type Counts struct {
	Nodes      int
	Scopes     int
	Symbols    int
	References int
}

// Model is the full semantic result for one program: every scope,
// every symbol, every reference, plus the control-flow graphs built
// per function and once for the module top level.
type Model struct {
	Scopes     []Scope
	Symbols    []Symbol
	References []Reference
	Graphs     []*Graph
	Counts     Counts
}

func (m *Model) Scope(id ScopeId) *Scope   { return &m.Scopes[id] }
func (m *Model) Symbol(id SymbolId) *Symbol { return &m.Symbols[id] }

// SymbolByDeclaration finds the symbol bound by a given declaration
// node, the lookup direction a consumer with only a LocRef's node id
// needs (e.g. the .d.ts emitter resolving an interface's name). It's
// a linear scan: nothing in this pass's own logic needs this
// direction, so there's no index to keep up to date for it.
func (m *Model) SymbolByDeclaration(id span.AstNodeId) (*Symbol, bool) {
	for i := range m.Symbols {
		if m.Symbols[i].Declaration == id {
			return &m.Symbols[i], true
		}
	}
	return nil, false
}

// CreateScope is the scope-mutation helper the traversal framework
// exposes to passes that introduce a new lexical scope, e.g. a
// transform that wraps a statement in a synthesized block.
func (m *Model) CreateScope(parent ScopeId, flags ScopeFlags) ScopeId {
	return m.newScope(parent, flags)
}

// AddSymbol is the symbol-mutation helper the traversal framework
// exposes to passes that introduce a new binding, e.g. a transform
// that hoists a synthesized variable into an enclosing scope.
func (m *Model) AddSymbol(name span.Atom, decl span.AstNodeId, scope ScopeId, flags SymbolFlags) SymbolId {
	return m.newSymbol(name, decl, scope, flags)
}

func (m *Model) newScope(parent ScopeId, flags ScopeFlags) ScopeId {
	id := ScopeId(len(m.Scopes))
	m.Scopes = append(m.Scopes, Scope{Id: id, Parent: parent, Flags: flags, Bindings: make(map[span.Atom]SymbolId)})
	if parent != InvalidScopeId {
		m.Scopes[parent].Children = append(m.Scopes[parent].Children, id)
	}
	return id
}

func (m *Model) newSymbol(name span.Atom, decl span.AstNodeId, scope ScopeId, flags SymbolFlags) SymbolId {
	id := SymbolId(len(m.Symbols))
	m.Symbols = append(m.Symbols, Symbol{Id: id, Name: name, Declaration: decl, Scope: scope, Flags: flags})
	m.Scopes[scope].Bindings[name] = id
	return id
}

// nodeIds mints the distinct numeric AstNodeId every binding and
// reference must carry. The parser leaves every slot
// at span.InvalidNodeId; this pass is where identities are actually
// assigned, mirroring how a semantic builder walk is the first pass
// that needs to address individual nodes by id rather than by pointer.
type nodeIds struct{ next uint32 }

func (n *nodeIds) alloc() span.AstNodeId {
	id := span.AstNodeId(n.next)
	n.next++
	return id
}
