package calc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Session evaluates input line by line, printing each result to Out and
// each failure to Err. A failing line never stops the session.
type Session struct {
	Out io.Writer
	Err io.Writer

	// ShowTree prints the parsed tree before each result.
	ShowTree bool
	// Snippets follows positioned errors with the line and a caret.
	Snippets bool
	// Workers > 1 evaluates batch input concurrently with EvalLines.
	Workers int

	Lines    int
	Failures int

	log     zerolog.Logger
	builder *Builder
}

func NewSession(out, errOut io.Writer, logger zerolog.Logger) *Session {
	return &Session{
		Out:     out,
		Err:     errOut,
		log:     logger,
		builder: NewBuilder(DefaultOpTable()),
	}
}

func isBlank(line string) bool {
	return strings.Trim(line, " \t\r") == ""
}

// EvalLine evaluates one line and reports the outcome. Blank lines are
// ignored.
func (s *Session) EvalLine(line string) (int32, error) {
	line = strings.TrimSuffix(line, "\r")
	if isBlank(line) {
		return 0, nil
	}
	s.Lines++

	e, err := parseWith(s.builder, line)
	if err != nil {
		return 0, s.fail(line, err)
	}
	if s.ShowTree {
		fmt.Fprintf(s.Out, "Parsed:\n%s\n", Format(e))
	}
	v, err := Eval(e)
	if err != nil {
		return 0, s.fail(line, err)
	}
	s.log.Debug().Int("line", s.Lines).Str("expr", e.String()).Int32("value", v).Msg("evaluated")
	fmt.Fprintln(s.Out, v)
	return v, nil
}

func (s *Session) fail(line string, err error) error {
	s.Failures++
	level := zerolog.WarnLevel
	var ie *InternalError
	if errors.As(err, &ie) {
		level = zerolog.ErrorLevel
	}
	s.log.WithLevel(level).Int("line", s.Lines).Err(err).Msg("line failed")

	fmt.Fprintf(s.Err, "error: %v\n", err)
	if s.Snippets {
		if snip := ErrorSnippet(line, err); snip != "" {
			fmt.Fprintln(s.Err, snip)
		}
	}
	return err
}

// readLine returns the next line without its terminator. io.EOF is
// returned only once no input remains.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimSuffix(line, "\n"), err
}

// Run reads lines from r until end of input. Lines have no length limit.
// Only read errors and cancellation are returned.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)

	if s.Workers > 1 {
		return s.runParallel(ctx, br)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := readLine(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s.EvalLine(line)
	}
}

func (s *Session) runParallel(ctx context.Context, br *bufio.Reader) error {
	var lines []string
	for {
		line, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSuffix(line, "\r")
		if isBlank(line) {
			continue
		}
		lines = append(lines, line)
	}

	s.log.Debug().Int("lines", len(lines)).Int("workers", s.Workers).Msg("evaluating batch")
	results, err := EvalLines(ctx, lines, s.Workers)
	if err != nil {
		return err
	}
	for _, res := range results {
		s.Lines++
		if res.Err != nil {
			s.fail(res.Line, res.Err)
			continue
		}
		fmt.Fprintln(s.Out, res.Value)
	}
	return nil
}
