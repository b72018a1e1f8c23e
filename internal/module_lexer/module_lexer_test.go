package module_lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/module_lexer"
)

func scan(t *testing.T, src string) module_lexer.Result {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.js", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{SourceType: config.SourceMJS})
	require.False(t, panicked)
	return module_lexer.Scan(&program, src)
}

func TestStaticImportSpecifier(t *testing.T) {
	result := scan(t, `import { a } from "./a.js";`)
	require.Len(t, result.Imports, 1)
	entry := result.Imports[0]
	assert.Equal(t, module_lexer.StaticImport, entry.Kind)
	assert.Equal(t, "./a.js", entry.Specifier.String())
	assert.True(t, result.HasModuleSyntax)
}

func TestDynamicImportWithVariableSpecifier(t *testing.T) {
	result := scan(t, `const p = import(path);`)
	require.Len(t, result.Imports, 1)
	entry := result.Imports[0]
	assert.Equal(t, module_lexer.DynamicImport, entry.Kind)
	assert.True(t, entry.Specifier.IsEmpty(), "a non-literal dynamic import source has no specifier")
	assert.NotZero(t, entry.DynamicImportOpenParenStart)
}

func TestReexportFacade(t *testing.T) {
	result := scan(t, `export * from "./other.js";`)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, module_lexer.ExportStar, result.Imports[0].Kind)
	assert.True(t, result.Facade, "a module consisting only of re-exports is a facade")
}

func TestNonFacadeWhenBodyHasSideEffects(t *testing.T) {
	result := scan(t, `export * from "./other.js";`+"\nconsole.log(1);\n")
	assert.False(t, result.Facade)
}

func TestImportMetaRecorded(t *testing.T) {
	result := scan(t, `console.log(import.meta.url);`)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, module_lexer.ImportMeta, result.Imports[0].Kind)
}
