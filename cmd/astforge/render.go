package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/astforge/astforge/internal/logger"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// renderLog writes every recorded diagnostic to w, colorizing
// severity when w is a real terminal (stdout/stderr, not a pipe or a
// redirected file).
func renderLog(w io.Writer, log *logger.Log) {
	color := isTerminal(w)
	for _, msg := range log.Msgs() {
		fmt.Fprintln(w, colorize(color, msg))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorize(color bool, msg logger.Msg) string {
	if !color {
		return msg.String()
	}
	switch msg.Severity {
	case logger.SevError:
		return ansiRed + msg.String() + ansiReset
	case logger.SevWarning:
		return ansiYellow + msg.String() + ansiReset
	default:
		return msg.String()
	}
}
