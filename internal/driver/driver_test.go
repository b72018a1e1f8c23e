package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/driver"
	"github.com/astforge/astforge/internal/logger"
)

func TestRunProcessesEveryInputConcurrently(t *testing.T) {
	inputs := []driver.Input{
		{Path: "a.js", Pretty: "a.js", Content: `import { x } from "./x.js";`, Options: config.ParseOptions{SourceType: config.SourceMJS}},
		{Path: "b.js", Pretty: "b.js", Content: `export * from "./y.js";`, Options: config.ParseOptions{SourceType: config.SourceMJS}},
		{Path: "c.js", Pretty: "c.js", Content: `{ var x = 1; x; }`, Options: config.ParseOptions{SourceType: config.SourceJS}},
	}
	log := logger.NewLog()
	results, err := driver.Run(context.Background(), inputs, 2, log)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "./x.js", results[0].Module.Imports[0].Specifier.String())
	assert.True(t, results[1].Module.Facade)
	assert.NotEmpty(t, log.Msgs(), "the lone-block in c.js must be reported through the shared log")
}

func TestRunSingleThreadedFallback(t *testing.T) {
	inputs := []driver.Input{
		{Path: "a.js", Pretty: "a.js", Content: "let x = 1;", Options: config.ParseOptions{SourceType: config.SourceJS}},
	}
	log := logger.NewLog()
	results, err := driver.Run(context.Background(), inputs, 0, log)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
