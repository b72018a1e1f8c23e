package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/semantic"
)

func build(t *testing.T, src string) *semantic.Model {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.js", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{})
	require.False(t, panicked)
	return semantic.Build(&program, source, log)
}

func TestModuleGraphExists(t *testing.T) {
	model := build(t, "let x = 1;\nif (x) { x = 2; }\n")
	require.NotEmpty(t, model.Graphs)
	graph := model.Graphs[0]
	assert.NotEqual(t, semantic.InvalidBlockId, graph.Entry)
	assert.True(t, graph.Block(graph.Entry).Reachable)
}

func TestUnreachableAfterReturn(t *testing.T) {
	model := build(t, "function f() {\n  return 1;\n  let dead = 2;\n}\n")
	require.NotEmpty(t, model.Graphs)

	var fnGraph *semantic.Graph
	for _, g := range model.Graphs {
		if len(g.Blocks) > 1 {
			fnGraph = g
		}
	}
	require.NotNil(t, fnGraph, "expected a per-function graph alongside the module graph")

	var sawUnreachable bool
	for i := range fnGraph.Blocks {
		if !fnGraph.Blocks[i].Reachable {
			sawUnreachable = true
		}
	}
	assert.True(t, sawUnreachable, "block following an unconditional return must be marked unreachable")
}

func TestLoopBackedge(t *testing.T) {
	model := build(t, "while (true) { x++; }\n")
	require.NotEmpty(t, model.Graphs)
	graph := model.Graphs[0]

	var sawBackedge bool
	for _, e := range graph.Edges {
		if e.Kind == semantic.EdgeBackedge {
			sawBackedge = true
		}
	}
	assert.True(t, sawBackedge, "a while loop's body must close a backedge to its condition block")
}
