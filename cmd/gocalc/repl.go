package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	calc "github.com/mattn/gocalc"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

const banner = "gocalc: integer arithmetic with + - * / % and parentheses. Ctrl-D or :quit exits."

// prompter is the part of *liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type history interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

func repl(cfg *config, sess *calc.Session, out io.Writer, logger zerolog.Logger) int {
	fmt.Fprintln(out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		loadHistory(ln, cfg.HistoryFile)
		defer saveHistory(ln, cfg.HistoryFile, logger)
	}
	return replLoop(ln, cfg.Prompt, sess, out, logger)
}

func loadHistory(h history, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = h.ReadHistory(f)
}

func saveHistory(h history, path string, logger zerolog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("cannot save history")
		return
	}
	defer f.Close()
	if _, err := h.WriteHistory(f); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("cannot save history")
	}
}

// replLoop prompts until end of input or :quit. Ctrl-C discards the
// current line.
func replLoop(p prompter, prompt string, sess *calc.Session, out io.Writer, logger zerolog.Logger) int {
	sess.Snippets = true
	for {
		line, err := p.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return 0
		}
		if err != nil {
			logger.Error().Err(err).Msg("read failed")
			return 1
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return 0
		}
		p.AppendHistory(line)
		sess.EvalLine(line)
	}
}
