package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astforge/astforge/internal/logger"
)

func TestRenderLogPlainWhenNotATerminal(t *testing.T) {
	source := &logger.Source{PrettyPath: "in.ts", Contents: "x"}
	log := logger.NewLog()
	log.AddError(source, logger.ParseError, logger.Loc{Start: 0}, "boom")

	var buf bytes.Buffer
	renderLog(&buf, log)
	assert.Contains(t, buf.String(), "boom")
	assert.NotContains(t, buf.String(), ansiRed, "a non-terminal writer must never get ANSI codes")
}

func TestIsTerminalFalseForBuffer(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isTerminal(&buf))
}
