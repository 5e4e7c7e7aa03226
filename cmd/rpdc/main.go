package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"rpdc/internal"
)

// Exit codes follow sysexits.h
const (
	exitOK      = 0
	exitUsage   = 64
	exitStatic  = 65
	exitNoInput = 66
	exitRuntime = 70
	exitConfig  = 78
)

type options struct {
	eval       string
	configPath string
	noColor    bool
	logLevel   string
	tokens     bool
	ast        bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rpdc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: rpdc [flags] [script]")
		fs.PrintDefaults()
	}

	opts := options{}
	fs.StringVar(&opts.eval, "e", "", "evaluate `code` and exit")
	fs.StringVar(&opts.configPath, "config", "", "read configuration from `file` (default $HOME/"+defaultConfigName+")")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	fs.StringVar(&opts.logLevel, "log-level", "", "log `level` (debug, info, warn, error)")
	fs.BoolVar(&opts.tokens, "tokens", false, "print the token stream instead of running")
	fs.BoolVar(&opts.ast, "ast", false, "print the syntax tree instead of running")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 || (fs.NArg() == 1 && opts.eval != "") {
		fs.Usage()
		return exitUsage
	}

	configPath, explicit := opts.configPath, opts.configPath != ""
	if !explicit {
		configPath = defaultConfigPath()
	}
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noColor {
		noColor := false
		cfg.Color = &noColor
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}
	logger.SetLevel(level)
	logger.WithField("config", configPath).Debug("configuration loaded")

	reporter := newColorReporter(stderr, cfg.colorEnabled())
	interp := internal.NewInterpreter(stdPrinter{out: stdout}, reporter)
	interp.SetLogger(logger)

	var source string
	switch {
	case opts.eval != "":
		source = opts.eval
	case fs.NArg() == 1:
		source, err = readSource(fs.Arg(0))
		if err != nil {
			reporter.Errorf("%v", err)
			return exitNoInput
		}
	default:
		r := newRepl(interp, cfg, stdout, reporter)
		return r.loop()
	}

	switch {
	case opts.tokens:
		tokens, err := interp.Tokens(source)
		fmt.Fprintln(stdout, strings.Join(tokens, "\n"))
		return exitCode(err)
	case opts.ast:
		tree, err := interp.Tree(source)
		fmt.Fprint(stdout, tree)
		return exitCode(err)
	default:
		return exitCode(interp.Run(source))
	}
}

func readSource(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	b, err := ioutil.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var runErr *internal.RuntimeError
	if errors.As(err, &runErr) {
		return exitRuntime
	}
	return exitStatic
}
