// Command lscc is the LSC compiler. It scans, parses and checks LSC
// sources and translates them to C++.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/you-not-fish/lsc/internal/log"
	"github.com/you-not-fish/lsc/internal/project"
)

// Version information
const Version = "0.1.0-dev"

// Exit codes.
const (
	exitOK      = 0
	exitCompile = 1 // a unit failed to compile
	exitUsage   = 2 // bad arguments or configuration
)

// exitCode ends a command with the given status once its diagnostics
// have been printed.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file (default: " + project.DefaultConfigFile + " if present)",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: debug, info, warn, error",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Usage: "Log format: text or json",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colorize diagnostics: auto, always, never",
		Value: "auto",
	}
	searchPathFlag = cli.StringSliceFlag{
		Name:  "search, I",
		Usage: "Additional directory searched by using statements",
	}
	noRuntimeFlag = cli.BoolFlag{
		Name:  "no-runtime",
		Usage: "Do not load the built-in runtime declarations",
	}
)

// autoColor is the color decision of --color=auto.
var autoColor bool

func main() {
	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)
	if autoColor = useColor(os.Stderr); autoColor {
		stderr = colorable.NewColorableStderr()
	}
	os.Exit(run(os.Args, stdout, stderr))
}

// useColor reports whether f is a terminal that accepts escape sequences.
func useColor(f *os.File) bool {
	return (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "lscc"
	app.Usage = "the LSC compiler"
	app.Version = fmt.Sprintf("%s (%s)", Version, runtime.Version())
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		logFormatFlag,
		colorFlag,
		searchPathFlag,
		noRuntimeFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		astCommand,
		checkCommand,
		emitCommand,
		dumpConfigCommand,
	}
	return app
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return exitOK
	}
	if code, ok := err.(exitCode); ok {
		return int(code)
	}
	fmt.Fprintf(stderr, "lscc: %v\n", err)
	return exitUsage
}

// usageErrorf prints a usage error and returns the matching exit code.
func usageErrorf(ctx *cli.Context, format string, args ...interface{}) error {
	fmt.Fprintf(ctx.App.ErrWriter, "lscc: "+format+"\n", args...)
	return exitCode(exitUsage)
}

// makeConfig loads the configuration and applies the global flags.
func makeConfig(ctx *cli.Context) (*project.Config, error) {
	cfg := project.DefaultConfig()

	file := ctx.GlobalString(configFileFlag.Name)
	if file == "" {
		if _, err := os.Stat(project.DefaultConfigFile); err == nil {
			file = project.DefaultConfigFile
		}
	}
	if file != "" {
		if err := project.LoadConfig(file, &cfg); err != nil {
			return nil, err
		}
	}

	if v := ctx.GlobalString(verbosityFlag.Name); v != "" {
		cfg.Log.Level = v
	}
	if v := ctx.GlobalString(logFormatFlag.Name); v != "" {
		cfg.Log.Format = v
	}
	cfg.SearchPaths = append(cfg.SearchPaths, ctx.GlobalStringSlice("search")...)
	if ctx.GlobalBool(noRuntimeFlag.Name) {
		cfg.Runtime = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setup prepares the configuration, logger and diagnostics printer of a
// command.
func setup(ctx *cli.Context) (*project.Config, *slog.Logger, *printer, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, nil, nil, usageErrorf(ctx, "%v", err)
	}
	lc := cfg.LoggerConfig()
	lc.Output = ctx.App.ErrWriter
	logger := log.New(lc)

	p, err := newPrinter(ctx.App.ErrWriter, ctx.GlobalString(colorFlag.Name))
	if err != nil {
		return nil, nil, nil, usageErrorf(ctx, "%v", err)
	}
	return cfg, logger, p, nil
}
