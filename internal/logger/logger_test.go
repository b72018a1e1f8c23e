package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/logger"
)

func TestLocationOrNil(t *testing.T) {
	source := &logger.Source{PrettyPath: "in.ts", Contents: "let x\nlet y = z\n"}
	log := logger.NewLog()
	log.AddError(source, logger.SemanticError, logger.Loc{Start: 10}, "\"z\" is not defined")

	msgs := log.Msgs()
	require.Len(t, msgs, 1)
	loc := msgs[0].Location
	require.NotNil(t, loc)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 4, loc.Column)
	assert.Equal(t, "let y = z", loc.LineText)
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	source := &logger.Source{PrettyPath: "in.ts", Contents: "x"}
	log := logger.NewLog()
	log.AddWarning(source, logger.LintDiagnostic, logger.Loc{Start: 0}, "looks suspicious")
	assert.False(t, log.HasErrors(), "a warning must not count as an error")

	log.AddError(source, logger.ParseError, logger.Loc{Start: 0}, "unexpected token")
	assert.True(t, log.HasErrors())
}

func TestMsgsSortedByLocation(t *testing.T) {
	source := &logger.Source{PrettyPath: "in.ts", Contents: "aaaa\nbbbb\ncccc\n"}
	log := logger.NewLog()
	log.AddError(source, logger.ParseError, logger.Loc{Start: 11}, "third")
	log.AddError(source, logger.ParseError, logger.Loc{Start: 1}, "first")
	log.AddError(source, logger.ParseError, logger.Loc{Start: 6}, "second")

	msgs := log.Msgs()
	require.Len(t, msgs, 3)
	want := []string{"first", "second", "third"}
	for i, text := range want {
		assert.Equal(t, text, msgs[i].Text, "position %d", i)
	}
}
