// Package driver fans a batch of files out across a worker pool: one
// parse per file onto a bounded set of goroutines, each worker owning
// its own arena. No shared mutable state exists between workers except
// diagnostic aggregation behind a mutex.
package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/module_lexer"
	"github.com/astforge/astforge/internal/rules"
	"github.com/astforge/astforge/internal/semantic"
)

// Input is one file queued for processing.
type Input struct {
	Path    string
	Pretty  string
	Content string
	Options config.ParseOptions
}

// FileResult is the per-file output of Run, held alongside the
// diagnostics already folded into the shared Log.
type FileResult struct {
	Input       Input
	Module      module_lexer.Result
	Diagnostics int
}

// Run parses, semantically analyzes, and lints every input, running
// at most threads workers concurrently. Each goroutine owns a private
// arena.Arena for the lifetime of one file's pipeline, since cross-tree
// references across two arenas are a programming error; the only
// object shared across goroutines is log, which is already safe for
// concurrent use.
func Run(ctx context.Context, inputs []Input, threads int, log *logger.Log) ([]FileResult, error) {
	if threads < 1 {
		threads = 1
	}
	results := make([]FileResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = processFile(in, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processFile runs the single-threaded, non-blocking per-parse
// pipeline: parse, semantic build, module lexer, lint rules, all
// against one private arena.
func processFile(in Input, log *logger.Log) FileResult {
	a := arena.New()
	source := &logger.Source{PrettyPath: in.Pretty, Contents: in.Content}

	program, _ := js_parser.Parse(log, source, a, in.Options)
	model := semantic.Build(&program, source, log)
	_ = model

	mod := module_lexer.Scan(&program, in.Content)

	rules.CheckNoLoneBlocks(program.Body, source, log)
	rules.CheckPreferSpread(&program, source, log)
	rules.CheckNoEmptyStaticBlock(&program, source, log)

	return FileResult{Input: in, Module: mod}
}
