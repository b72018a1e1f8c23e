package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/pass"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/transform"
	"github.com/astforge/astforge/internal/tsdecl"
)

var (
	flagTarget    string
	flagMinify    bool
	flagEmitTypes bool
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the compressor and transformer pipelines and print the result",
		RunE:  runBuild,
	}
	cmd.Flags().StringVar(&flagTarget, "target", "esnext", "lowering target year (es2015/es2017/es2019/es2020/esnext)")
	cmd.Flags().BoolVar(&flagMinify, "minify", false, "run the compressor pipeline before emitting")
	cmd.Flags().BoolVar(&flagEmitTypes, "emit-types", false, "also print a .d.ts-shaped declaration block per file")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputs, err := resolveInputs(flagPaths, flagIgnore)
	if err != nil {
		return err
	}
	target, err := parseTarget(flagTarget)
	if err != nil {
		return err
	}

	log := logger.NewLog()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, in := range inputs {
		a := arena.New()
		source := &logger.Source{PrettyPath: in.Pretty, Contents: in.Content}
		program, _ := js_parser.Parse(log, source, a, in.Options)
		model := semantic.Build(&program, source, log)

		if flagMinify {
			pass.RunCompressorPipeline(&program, a, model)
		}
		transform.RunPipeline(&program, a, model, target, transform.DefaultPlugins())

		if err := enc.Encode(js_ast.SerializeProgram(&program)); err != nil {
			return err
		}
		if flagEmitTypes {
			fmt.Fprintln(os.Stdout, tsdecl.Emit(&program, model))
		}
	}

	renderLog(os.Stderr, log)
	if len(log.Msgs()) > 0 {
		os.Exit(exitFindings)
	}
	return nil
}

func parseTarget(s string) (transform.Target, error) {
	switch s {
	case "es2015":
		return transform.ES2015, nil
	case "es2017":
		return transform.ES2017, nil
	case "es2019":
		return transform.ES2019, nil
	case "es2020":
		return transform.ES2020, nil
	case "esnext", "":
		return transform.ESNext, nil
	}
	if year, err := strconv.Atoi(s); err == nil {
		return transform.Target(year), nil
	}
	return 0, fmt.Errorf("astforge build: unrecognized --target %q", s)
}
