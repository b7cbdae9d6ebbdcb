// Package shell is the line-oriented command loop in front of an fs.Engine.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"memfs/internal/fs"
	"memfs/internal/logging"

	"github.com/hashicorp/go-multierror"
)

var (
	shellLogger = logging.GetLogger().WithPrefix("shell")
)

// Options controls how a Shell presents itself.
type Options struct {
	Prompt     string
	Color      bool
	ShowPrompt bool
}

// Shell reads commands from in, runs them against an engine and writes the
// results to out.
type Shell struct {
	engine *fs.Engine
	in     io.Reader
	out    io.Writer
	opts   Options
	styles styles
}

// New creates a shell over engine.
func New(engine *fs.Engine, in io.Reader, out io.Writer, opts Options) *Shell {
	return &Shell{
		engine: engine,
		in:     in,
		out:    out,
		opts:   opts,
		styles: newStyles(out, opts.Color),
	}
}

// ParseLine splits a command line into its verb and argument. The verb is
// everything before the first space; the argument is the remainder with that
// one space removed, so further spaces belong to the argument.
func ParseLine(line string) (verb, arg string) {
	line = strings.TrimRight(line, "\r\n")
	verb, arg, _ = strings.Cut(line, " ")
	return verb, arg
}

// Run executes commands until exit, end of input or cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.prompt()
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			shellLogger.Debug("End of input")
			return nil
		}
		if s.Execute(scanner.Text()) {
			return nil
		}
	}
}

// RunScript executes each command in order, echoing it first. It stops early
// at exit.
func (s *Shell) RunScript(commands []string) {
	for _, line := range commands {
		fmt.Fprintln(s.out, s.styles.echo.render(s.opts.Prompt+line))
		if s.Execute(line) {
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should stop.
func (s *Shell) Execute(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	verb, arg := ParseLine(line)
	shellLogger.Trace("Executing %q with argument %q", verb, arg)

	switch verb {
	case "exit":
		return true
	case "mkdir":
		s.report(s.engine.Mkdir(arg))
	case "touch":
		s.report(s.engine.Touch(arg))
	case "cd":
		s.report(s.engine.Cd(arg))
	case "rm":
		s.report(s.engine.Rm(arg))
	case "ls":
		s.ls()
	case "pwd":
		fmt.Fprintln(s.out, s.engine.Pwd())
	case "tree":
		s.tree()
	case "check":
		s.check()
	case "help":
		s.help()
	default:
		fmt.Fprintln(s.out, s.styles.err.render("unknown command: "+verb))
	}
	return false
}

func (s *Shell) prompt() {
	if s.opts.ShowPrompt {
		fmt.Fprint(s.out, s.styles.prompt.render(s.opts.Prompt))
	}
}

func (s *Shell) report(err error) {
	switch {
	case err == nil:
	case fs.IsInformational(err):
		fmt.Fprintln(s.out, s.styles.info.render(err.Error()))
	default:
		fmt.Fprintln(s.out, s.styles.err.render("error: "+err.Error()))
	}
}

func (s *Shell) ls() {
	for entry := range s.engine.List() {
		fmt.Fprintln(s.out, s.styles.entry(entry.Type).render(entry.Name))
	}
}

func (s *Shell) tree() {
	for _, line := range s.engine.Tree() {
		indent := strings.Repeat("  ", line.Depth)
		name := strings.TrimPrefix(line.String(), indent)
		fmt.Fprintln(s.out, indent+s.styles.entry(line.Type).render(name))
	}
}

func (s *Shell) check() {
	err := s.engine.Check()
	if err == nil {
		fmt.Fprintln(s.out, s.styles.info.render("ok"))
		return
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.WrappedErrors() {
			fmt.Fprintln(s.out, s.styles.err.render("error: "+e.Error()))
		}
		return
	}
	s.report(err)
}

var helpText = []struct {
	usage string
	short string
}{
	{"mkdir <name>", "create a directory in the current directory"},
	{"touch <name>", "create a file in the current directory"},
	{"ls", "list the current directory"},
	{"cd <path>", "change directory (/, .., a name or a path)"},
	{"pwd", "print the current directory"},
	{"rm <name>", "remove a file or a directory with everything below it"},
	{"tree", "print the whole filesystem"},
	{"check", "verify the filesystem's internal consistency"},
	{"help", "show this help"},
	{"exit", "leave the shell"},
}

func (s *Shell) help() {
	for _, h := range helpText {
		fmt.Fprintf(s.out, "  %s %s\n", s.styles.verb.render(fmt.Sprintf("%-14s", h.usage)), h.short)
	}
}
