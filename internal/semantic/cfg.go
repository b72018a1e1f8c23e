package semantic

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/span"
)

// InstrKind tags one instruction held by a basic block.
type InstrKind uint8

const (
	InstrStatement InstrKind = iota
	InstrUnreachable
	InstrThrow
	InstrCondition
	InstrIterationOf
	InstrIterationIn
	InstrBreakLabeled
	InstrBreakUnlabeled
	InstrContinueLabeled
	InstrContinueUnlabeled
	InstrReturnImplicitUndefined
	InstrReturnNotImplicitUndefined
)

// Instruction is one entry in a Block's ordered instruction list.
// LabelId is only meaningful for the Labeled break/continue kinds.
type Instruction struct {
	Kind    InstrKind
	Span    span.Span
	LabelId span.AstNodeId
}

// EdgeKind tags one edge between two basic blocks.
type EdgeKind uint8

const (
	EdgeNormal EdgeKind = iota
	EdgeBackedge
	EdgeNewFunction
	EdgeUnreachable
	EdgeJoin
	EdgeFinalize
	EdgeJump
	EdgeError
)

// BlockId indexes into Graph.Blocks. InvalidBlockId marks an absent target.
type BlockId int32

const InvalidBlockId BlockId = -1

// Block is a maximal straight-line run of instructions with a single
// entry and single exit. Reachable is computed once, after the whole
// graph is built, by a forward sweep from Entry.
type Block struct {
	Id           BlockId
	Instructions []Instruction
	Reachable    bool
}

// Edge connects two blocks, tagged with the construct that produced it.
type Edge struct {
	From, To BlockId
	Kind     EdgeKind
}

// Graph is the CFG for one function body or the module top level.
// FnNode is the declaring node's id (span.InvalidNodeId for the
// module-level graph).
type Graph struct {
	Blocks []Block
	Edges  []Edge
	Entry  BlockId
	Exit   BlockId // pseudo-block: function/module exit, never has instructions
	FnNode span.AstNodeId
}

func (g *Graph) Block(id BlockId) *Block { return &g.Blocks[id] }

func (g *Graph) newBlock() BlockId {
	id := BlockId(len(g.Blocks))
	g.Blocks = append(g.Blocks, Block{Id: id})
	return id
}

func (g *Graph) addEdge(from, to BlockId, kind EdgeKind) {
	if from == InvalidBlockId || to == InvalidBlockId {
		return
	}
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
}

func (g *Graph) emit(block BlockId, ins Instruction) {
	b := g.Block(block)
	b.Instructions = append(b.Instructions, ins)
}

// markReachable computes each block's Reachable flag with a forward
// sweep from the entry block. EdgeUnreachable is excluded from the
// sweep on purpose: it exists precisely to connect dead code to its
// block, and following it would make every unreachable block reachable
// again.
func (g *Graph) markReachable() {
	visited := make(map[BlockId]bool, len(g.Blocks))
	var stack []BlockId
	if g.Entry != InvalidBlockId {
		stack = append(stack, g.Entry)
	}
	adj := make(map[BlockId][]Edge, len(g.Blocks))
	for _, e := range g.Edges {
		if e.Kind == EdgeUnreachable {
			continue
		}
		adj[e.From] = append(adj[e.From], e)
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		id := stack[n]
		stack = stack[:n]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, e := range adj[id] {
			if !visited[e.To] {
				stack = append(stack, e.To)
			}
		}
	}
	for i := range g.Blocks {
		g.Blocks[i].Reachable = visited[g.Blocks[i].Id]
	}
}

// loopFrame tracks one enclosing loop/switch/label context for
// break/continue resolution: labeled variants carry the label id;
// edges target the resolved loop/switch/label exit.
type loopFrame struct {
	label         span.Atom
	isLoopOrSwitch bool
	breakTo       BlockId
	continueTo    BlockId // InvalidBlockId when this frame isn't continuable
}

type cfgBuilder struct {
	g       *Graph
	cur     BlockId
	frames  []loopFrame
	queue   []queuedFn // nested functions discovered while building this graph
}

type queuedFn struct {
	node span.AstNodeId
	body []js_ast.Stmt
}

// BuildModuleGraph builds the CFG for the module top level once, and
// recursively for every nested function found in its body, returning
// one Graph per function plus the module-level graph as the first
// element.
func BuildModuleGraph(program *js_ast.Program) []*Graph {
	var graphs []*Graph
	queue := []queuedFn{{node: span.InvalidNodeId, body: program.Body}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		g := buildFunctionGraph(item.node, item.body)
		graphs = append(graphs, g.graph)
		queue = append(queue, g.nested...)
	}
	return graphs
}

type builtGraph struct {
	graph  *Graph
	nested []queuedFn
}

func buildFunctionGraph(fnNode span.AstNodeId, body []js_ast.Stmt) builtGraph {
	g := &Graph{FnNode: fnNode}
	g.Entry = g.newBlock()
	g.Exit = g.newBlock()
	b := &cfgBuilder{g: g, cur: g.Entry}
	b.stmts(body)
	if b.cur != InvalidBlockId {
		g.addEdge(b.cur, g.Exit, EdgeNormal)
	}
	g.markReachable()
	return builtGraph{graph: g, nested: b.queue}
}

// terminate marks the current block as ending control flow on this
// path (return/throw/break/continue). If more statements follow in
// the same list, the remainder is unreachable and gets its own block
// joined by an Unreachable edge.
func (b *cfgBuilder) terminate() {
	b.cur = InvalidBlockId
}

// freshAfterTerminal starts a new block for dead code following a
// terminator, wired in with an Unreachable edge from last.
func (b *cfgBuilder) freshAfterTerminal(last BlockId) BlockId {
	next := b.g.newBlock()
	b.g.addEdge(last, next, EdgeUnreachable)
	return next
}

func (b *cfgBuilder) stmts(list []js_ast.Stmt) {
	for _, s := range list {
		b.stmt(s)
	}
}

func (b *cfgBuilder) stmt(s js_ast.Stmt) {
	if s.IsAbsent() {
		return
	}
	if b.cur == InvalidBlockId {
		b.cur = b.freshAfterTerminal(b.lastEmittedBlock())
	}
	switch d := s.Data.(type) {
	case *js_ast.SLabel:
		b.label(d, s.Span)
	case *js_ast.SBlock:
		b.stmts(d.Body)
	case *js_ast.SIf:
		b.ifStmt(d)
	case *js_ast.SWhile:
		b.whileStmt(d, span.Atom{})
	case *js_ast.SDoWhile:
		b.doWhileStmt(d, span.Atom{})
	case *js_ast.SFor:
		b.forStmt(d, span.Atom{})
	case *js_ast.SForIn:
		b.forInOf(d.Body, s.Span, false, span.Atom{})
	case *js_ast.SForOf:
		b.forInOf(d.Body, s.Span, true, span.Atom{})
	case *js_ast.SSwitch:
		b.switchStmt(d, span.Atom{})
	case *js_ast.STry:
		b.tryStmt(d)
	case *js_ast.SReturn:
		kind := InstrReturnImplicitUndefined
		if !d.Value.IsAbsent() {
			kind = InstrReturnNotImplicitUndefined
		}
		b.g.emit(b.cur, Instruction{Kind: kind, Span: s.Span})
		b.g.addEdge(b.cur, b.g.Exit, EdgeNormal)
		b.terminate()
	case *js_ast.SThrow:
		b.g.emit(b.cur, Instruction{Kind: InstrThrow, Span: s.Span})
		b.g.addEdge(b.cur, b.g.Exit, EdgeError)
		b.terminate()
	case *js_ast.SBreak:
		b.breakStmt(d.Label, s.Span)
	case *js_ast.SContinue:
		b.continueStmt(d.Label, s.Span)
	case *js_ast.SFunction:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.g.addEdge(b.cur, b.cur, EdgeNewFunction)
		b.enqueueFn(&d.Fn)
	case *js_ast.SClass:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.enqueueClass(&d.Class)
	case *js_ast.SExpr:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.enqueueExpr(d.Value)
	case *js_ast.SVar:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		for _, decl := range d.Declarators {
			b.enqueueExpr(decl.Value)
		}
	case *js_ast.SWith:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.enqueueExpr(d.Value)
		b.stmt(d.Body)
	case *js_ast.SExportDefault:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.enqueueExpr(d.Value)
		if d.Fn != nil {
			b.enqueueFn(&d.Fn.Fn)
		}
		if d.Class != nil {
			b.enqueueClass(&d.Class.Class)
		}
	case *js_ast.STSModule:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
		b.stmts(d.Body)
	default:
		b.g.emit(b.cur, Instruction{Kind: InstrStatement, Span: s.Span})
	}
}

// lastEmittedBlock returns the most recently created block, used to
// anchor the Unreachable edge when statements follow a terminator.
func (b *cfgBuilder) lastEmittedBlock() BlockId {
	return BlockId(len(b.g.Blocks) - 1)
}

func (b *cfgBuilder) ifStmt(d *js_ast.SIf) {
	head := b.cur
	b.g.emit(head, Instruction{Kind: InstrCondition})
	b.enqueueExpr(d.Test)

	yes := b.g.newBlock()
	b.g.addEdge(head, yes, EdgeJump)
	b.cur = yes
	b.stmt(d.Yes)
	yesEnd := b.cur

	var noEnd BlockId = head
	hasElse := !d.No.IsAbsent()
	if hasElse {
		no := b.g.newBlock()
		b.g.addEdge(head, no, EdgeJump)
		b.cur = no
		b.stmt(d.No)
		noEnd = b.cur
	}

	merge := b.g.newBlock()
	if yesEnd != InvalidBlockId {
		b.g.addEdge(yesEnd, merge, EdgeJoin)
	}
	if hasElse {
		if noEnd != InvalidBlockId {
			b.g.addEdge(noEnd, merge, EdgeJoin)
		}
	} else {
		b.g.addEdge(head, merge, EdgeJoin)
	}
	b.cur = merge
}

func (b *cfgBuilder) pushLoop(label span.Atom, breakTo, continueTo BlockId) {
	b.frames = append(b.frames, loopFrame{label: label, isLoopOrSwitch: true, breakTo: breakTo, continueTo: continueTo})
}

func (b *cfgBuilder) popFrame() { b.frames = b.frames[:len(b.frames)-1] }

func (b *cfgBuilder) whileStmt(d *js_ast.SWhile, label span.Atom) {
	header := b.g.newBlock()
	b.g.addEdge(b.cur, header, EdgeNormal)
	b.g.emit(header, Instruction{Kind: InstrCondition})
	b.enqueueExpr(d.Test)

	follow := b.g.newBlock()
	b.pushLoop(label, follow, header)
	body := b.g.newBlock()
	b.g.addEdge(header, body, EdgeJump)
	b.cur = body
	b.stmt(d.Body)
	if b.cur != InvalidBlockId {
		b.g.addEdge(b.cur, header, EdgeBackedge)
	}
	b.popFrame()
	b.g.addEdge(header, follow, EdgeJump)
	b.cur = follow
}

func (b *cfgBuilder) doWhileStmt(d *js_ast.SDoWhile, label span.Atom) {
	body := b.g.newBlock()
	b.g.addEdge(b.cur, body, EdgeNormal)
	follow := b.g.newBlock()
	header := b.g.newBlock()
	b.pushLoop(label, follow, header)
	b.cur = body
	b.stmt(d.Body)
	if b.cur != InvalidBlockId {
		b.g.addEdge(b.cur, header, EdgeNormal)
	}
	b.g.emit(header, Instruction{Kind: InstrCondition})
	b.enqueueExpr(d.Test)
	b.g.addEdge(header, body, EdgeBackedge)
	b.g.addEdge(header, follow, EdgeJump)
	b.popFrame()
	b.cur = follow
}

func (b *cfgBuilder) forStmt(d *js_ast.SFor, label span.Atom) {
	if !d.Init.IsAbsent() {
		b.stmt(d.Init)
	}
	header := b.g.newBlock()
	if b.cur != InvalidBlockId {
		b.g.addEdge(b.cur, header, EdgeNormal)
	}
	b.g.emit(header, Instruction{Kind: InstrCondition})
	b.enqueueExpr(d.Test)

	follow := b.g.newBlock()
	b.pushLoop(label, follow, header)
	body := b.g.newBlock()
	b.g.addEdge(header, body, EdgeJump)
	b.cur = body
	b.stmt(d.Body)
	if b.cur != InvalidBlockId {
		b.enqueueExpr(d.Update)
		b.g.addEdge(b.cur, header, EdgeBackedge)
	}
	b.popFrame()
	b.g.addEdge(header, follow, EdgeJump)
	b.cur = follow
}

func (b *cfgBuilder) forInOf(body js_ast.Stmt, sp span.Span, isOf bool, label span.Atom) {
	header := b.g.newBlock()
	b.g.addEdge(b.cur, header, EdgeNormal)
	kind := InstrIterationIn
	if isOf {
		kind = InstrIterationOf
	}
	b.g.emit(header, Instruction{Kind: kind, Span: sp})

	follow := b.g.newBlock()
	b.pushLoop(label, follow, header)
	bodyBlock := b.g.newBlock()
	b.g.addEdge(header, bodyBlock, EdgeJump)
	b.cur = bodyBlock
	b.stmt(body)
	if b.cur != InvalidBlockId {
		b.g.addEdge(b.cur, header, EdgeBackedge)
	}
	b.popFrame()
	b.g.addEdge(header, follow, EdgeJump)
	b.cur = follow
}

func (b *cfgBuilder) switchStmt(d *js_ast.SSwitch, label span.Atom) {
	head := b.cur
	b.enqueueExpr(d.Value)
	follow := b.g.newBlock()
	b.pushLoop(label, follow, InvalidBlockId)

	caseBlocks := make([]BlockId, len(d.Cases))
	for i := range d.Cases {
		caseBlocks[i] = b.g.newBlock()
		b.g.addEdge(head, caseBlocks[i], EdgeJump)
	}
	for i, c := range d.Cases {
		b.enqueueExpr(c.Test)
		b.cur = caseBlocks[i]
		b.stmts(c.Body)
		if b.cur != InvalidBlockId {
			if i+1 < len(caseBlocks) {
				// fallthrough implied by edge order.
				b.g.addEdge(b.cur, caseBlocks[i+1], EdgeJump)
			} else {
				b.g.addEdge(b.cur, follow, EdgeJump)
			}
		}
	}
	b.popFrame()
	b.cur = follow
}

func (b *cfgBuilder) tryStmt(d *js_ast.STry) {
	tryBlock := b.g.newBlock()
	b.g.addEdge(b.cur, tryBlock, EdgeNormal)
	b.cur = tryBlock
	b.stmts(d.Body)
	tryEnd := b.cur

	var catchEnd BlockId = InvalidBlockId
	if d.Catch != nil {
		catchBlock := b.g.newBlock()
		if tryEnd != InvalidBlockId {
			b.g.addEdge(tryEnd, catchBlock, EdgeError)
		} else {
			b.g.addEdge(b.lastEmittedBlock(), catchBlock, EdgeError)
		}
		b.cur = catchBlock
		b.stmts(d.Catch.Body)
		catchEnd = b.cur
	}

	if len(d.Finally) > 0 {
		finallyBlock := b.g.newBlock()
		if tryEnd != InvalidBlockId {
			b.g.addEdge(tryEnd, finallyBlock, EdgeFinalize)
		}
		if catchEnd != InvalidBlockId {
			b.g.addEdge(catchEnd, finallyBlock, EdgeFinalize)
		} else if d.Catch != nil {
			b.g.addEdge(b.lastEmittedBlock(), finallyBlock, EdgeFinalize)
		}
		b.cur = finallyBlock
		b.stmts(d.Finally)
		cont := b.g.newBlock()
		if b.cur != InvalidBlockId {
			b.g.addEdge(b.cur, cont, EdgeJump)
		}
		b.cur = cont
		return
	}

	merge := b.g.newBlock()
	if tryEnd != InvalidBlockId {
		b.g.addEdge(tryEnd, merge, EdgeJoin)
	}
	if catchEnd != InvalidBlockId {
		b.g.addEdge(catchEnd, merge, EdgeJoin)
	}
	b.cur = merge
}

func (b *cfgBuilder) label(d *js_ast.SLabel, sp span.Span) {
	switch inner := d.Stmt.Data.(type) {
	case *js_ast.SWhile:
		b.whileStmt(inner, d.Name)
		return
	case *js_ast.SDoWhile:
		b.doWhileStmt(inner, d.Name)
		return
	case *js_ast.SFor:
		b.forStmt(inner, d.Name)
		return
	case *js_ast.SForIn:
		b.forInOf(inner.Body, d.Stmt.Span, false, d.Name)
		return
	case *js_ast.SForOf:
		b.forInOf(inner.Body, d.Stmt.Span, true, d.Name)
		return
	case *js_ast.SSwitch:
		b.switchStmt(inner, d.Name)
		return
	}
	// A label on a non-loop statement: break to it skips the
	// statement, continue is not resolvable to it.
	follow := b.g.newBlock()
	b.frames = append(b.frames, loopFrame{label: d.Name, isLoopOrSwitch: false, breakTo: follow, continueTo: InvalidBlockId})
	b.stmt(d.Stmt)
	b.popFrame()
	if b.cur != InvalidBlockId {
		b.g.addEdge(b.cur, follow, EdgeJump)
	}
	b.cur = follow
}

func (b *cfgBuilder) breakStmt(label span.Atom, sp span.Span) {
	kind := InstrBreakUnlabeled
	if !label.IsEmpty() {
		kind = InstrBreakLabeled
	}
	b.g.emit(b.cur, Instruction{Kind: kind, Span: sp})
	target := b.resolveBreak(label)
	b.g.addEdge(b.cur, target, EdgeJump)
	b.terminate()
}

func (b *cfgBuilder) continueStmt(label span.Atom, sp span.Span) {
	kind := InstrContinueUnlabeled
	if !label.IsEmpty() {
		kind = InstrContinueLabeled
	}
	b.g.emit(b.cur, Instruction{Kind: kind, Span: sp})
	target := b.resolveContinue(label)
	b.g.addEdge(b.cur, target, EdgeBackedge)
	b.terminate()
}

func (b *cfgBuilder) resolveBreak(label span.Atom) BlockId {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if label.IsEmpty() {
			if f.isLoopOrSwitch {
				return f.breakTo
			}
			continue
		}
		if f.label.Equal(label) {
			return f.breakTo
		}
	}
	return b.g.Exit
}

func (b *cfgBuilder) resolveContinue(label span.Atom) BlockId {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.continueTo == InvalidBlockId {
			if !label.IsEmpty() && f.label.Equal(label) {
				break // labels a non-loop: unresolved per grammar, fall through to Exit
			}
			continue
		}
		if label.IsEmpty() || f.label.Equal(label) {
			return f.continueTo
		}
	}
	return b.g.Exit
}

// enqueueFn records a nested function body so BuildModuleGraph builds
// its own Graph after the current one finishes; the nested scope gets
// its own separate Graph rather than a shared block numbering space.
// Only a function declaration statement also marks its containing
// block with an EdgeNewFunction self-edge (see stmt).
func (b *cfgBuilder) enqueueFn(f *js_ast.Fn) {
	id := span.InvalidNodeId
	if f.Name != nil {
		id = f.Name.Id
	}
	b.queue = append(b.queue, queuedFn{node: id, body: f.Body})
}

func (b *cfgBuilder) enqueueClass(c *js_ast.Class) {
	for i := range c.Members {
		m := &c.Members[i]
		if m.Fn != nil {
			b.enqueueFn(m.Fn)
		}
		if m.IsStaticBlock {
			b.enqueueFn(&js_ast.Fn{Body: m.StaticBlock})
		}
	}
}

// enqueueExpr walks an expression for nested function literals
// (function/arrow expressions, class expressions) without building a
// full per-expression CFG — expression evaluation order is not
// modeled; granularity stays one block per statement.
func (b *cfgBuilder) enqueueExpr(e js_ast.Expr) {
	if e.IsAbsent() {
		return
	}
	v := &js_ast.Visitor{Expr: func(e js_ast.Expr) {
		switch d := e.Data.(type) {
		case *js_ast.EFunction:
			b.enqueueFn(&d.Fn)
		case *js_ast.EArrow:
			b.enqueueFn(&d.Fn)
		case *js_ast.EClass:
			b.enqueueClass(&d.Class)
		}
	}}
	js_ast.WalkExpr(e, v)
}
