package tsdecl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/tsdecl"
)

func build(t *testing.T, src string) (string, *semantic.Model) {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{SourceType: config.SourceTS})
	require.False(t, panicked)
	model := semantic.Build(&program, source, log)
	return tsdecl.Emit(&program, model), model
}

func TestEmitExportedFunction(t *testing.T) {
	out, _ := build(t, "export function add(a: number, b: number): number { return a + b; }")
	assert.Contains(t, out, "export declare function add(a: number, b: number): number;")
}

func TestEmitSkipsUnexportedDeclarations(t *testing.T) {
	out, _ := build(t, "function helper(): void {}\nexport function pub(): void {}")
	assert.NotContains(t, out, "helper")
	assert.Contains(t, out, "pub")
}

func TestEmitExportedTypeAlias(t *testing.T) {
	out, _ := build(t, "export type Id = string | number;")
	assert.Contains(t, out, "export type Id = string | number;")
}
