package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"rpdc/internal"
)

const banner = "rpdc interactive mode. Type :help for commands, :quit to leave."

const continuationPrompt = "... "

const helpText = `:help           show this message
:quit, :exit    leave the session
:load <file>    run a script in the current session
:reset          drop every global definition
:tokens <code>  print the tokens of code
:ast <code>     print the syntax tree of code`

type repl struct {
	interp   *internal.Interpreter
	cfg      *config
	out      io.Writer
	reporter *colorReporter
}

func newRepl(interp *internal.Interpreter, cfg *config, out io.Writer, reporter *colorReporter) *repl {
	return &repl{
		interp:   interp,
		cfg:      cfg,
		out:      out,
		reporter: reporter,
	}
}

func (r *repl) loop() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	r.readHistory(ln)
	defer r.writeHistory(ln)

	fmt.Fprintln(r.out, banner)
	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return exitOK
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if quit := r.eval(code); quit {
			return exitOK
		}
	}
}

// read collects lines until every bracket is closed. Ctrl-C drops the
// pending input, Ctrl-D ends the session.
func (r *repl) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := r.cfg.Prompt
		if b.Len() > 0 {
			prompt = continuationPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if openBrackets(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// eval runs a line of code or a command and reports whether the session ends
func (r *repl) eval(code string) bool {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, ":") {
		// Diagnostics were already reported
		r.interp.Run(code)
		return false
	}

	name, arg := trimmed, ""
	if idx := strings.IndexAny(trimmed, " \t"); idx >= 0 {
		name, arg = trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
	}

	switch name {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, helpText)
	case ":reset":
		r.interp.Reset()
	case ":load":
		if arg == "" {
			r.reporter.Errorf("usage: :load <file>")
			break
		}
		source, err := readSource(arg)
		if err != nil {
			r.reporter.Errorf("%v", err)
			break
		}
		r.interp.Run(source)
	case ":tokens":
		tokens, _ := r.interp.Tokens(arg)
		fmt.Fprintln(r.out, strings.Join(tokens, "\n"))
	case ":ast":
		if tree, err := r.interp.Tree(arg); err == nil {
			fmt.Fprint(r.out, tree)
		}
	default:
		r.reporter.Errorf("unknown command %s. Type :help for a list.", name)
	}
	return false
}

func (r *repl) readHistory(ln *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}
	if f, err := os.Open(r.cfg.HistoryFile); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
}

func (r *repl) writeHistory(ln *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}
	if f, err := os.Create(r.cfg.HistoryFile); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
}

// openBrackets counts the parentheses and braces left open in src.
// Brackets inside strings and comments do not count, an unterminated
// string counts as open.
func openBrackets(src string) int {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return depth + 1
			}
			i += end + 1
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				end := strings.IndexByte(src[i:], '\n')
				if end < 0 {
					return depth
				}
				i += end
			}
		}
	}
	return depth
}
