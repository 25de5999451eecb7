package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	calc "github.com/mattn/gocalc"
	"github.com/rs/zerolog"
)

// newLogger returns a console logger on w. An empty level means warn.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "gocalc").Logger().
		Level(lvl), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gocalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gocalc [flags] [file]")
		fs.PrintDefaults()
	}
	cfgFile := fs.String("config", configPath(), "config file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	showTree := fs.Bool("tree", false, "print the parsed tree before each result")
	workers := fs.Int("j", 1, "evaluate batch input with N workers")
	expr := fs.String("e", "", "evaluate one expression and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "tree":
			cfg.ShowTree = *showTree
		case "j":
			cfg.Workers = *workers
		}
	})

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "log-level:", err)
		return 2
	}
	sess := calc.NewSession(stdout, stderr, logger)
	sess.ShowTree = cfg.ShowTree
	sess.Workers = cfg.Workers

	if isFlagSet(fs, "e") {
		if strings.TrimSpace(*expr) == "" {
			fmt.Fprintln(stderr, "-e: empty expression")
			return 2
		}
		sess.Snippets = true
		if _, err := sess.EvalLine(*expr); err != nil {
			return 1
		}
		return 0
	}

	var in io.Reader = stdin
	if fs.NArg() == 1 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			logger.Error().Err(err).Msg("open failed")
			return 1
		}
		defer f.Close()
		in = f
	} else if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return repl(cfg, sess, stdout, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := sess.Run(ctx, in); err != nil {
		logger.Error().Err(err).Msg("read failed")
		return 1
	}
	logger.Info().Int("lines", sess.Lines).Int("failures", sess.Failures).Msg("done")
	return 0
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
