package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/config"
)

func TestSourceTypeForExt(t *testing.T) {
	cases := []struct {
		ext  string
		want config.SourceType
		ok   bool
	}{
		{".js", config.SourceJS, true},
		{".jsx", config.SourceJSX, true},
		{".ts", config.SourceTS, true},
		{".tsx", config.SourceTSX, true},
		{".mjs", config.SourceMJS, true},
		{".cjs", config.SourceCJS, true},
		{".json", 0, false},
	}
	for _, c := range cases {
		got, ok := sourceTypeForExt(c.ext)
		assert.Equal(t, c.ok, ok, c.ext)
		if c.ok {
			assert.Equal(t, c.want, got, c.ext)
		}
	}
}

func TestIgnoredMatchesBasenameGlob(t *testing.T) {
	assert.True(t, ignored("src/gen/types.d.ts", []string{"*.d.ts"}))
	assert.False(t, ignored("src/index.ts", []string{"*.d.ts"}))
}

func TestResolveInputsWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("let x = 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.d.ts"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte(""), 0o644))

	inputs, err := resolveInputs([]string{dir}, []string{"skip.d.ts"})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, config.SourceTS, inputs[0].Options.SourceType)
}

func TestResolveInputsErrorsWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte(""), 0o644))
	_, err := resolveInputs([]string{dir}, nil)
	assert.Error(t, err)
}

func TestThreadCountDefaultsToGOMAXPROCS(t *testing.T) {
	assert.Positive(t, threadCount(0))
	assert.Equal(t, 4, threadCount(4))
}
