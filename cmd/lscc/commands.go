package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/you-not-fish/lsc/internal/project"
	"github.com/you-not-fish/lsc/internal/syntax"
)

var (
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "Write the syntax tree as JSON",
	}
	typedFlag = cli.BoolFlag{
		Name:  "typed",
		Usage: "Check the unit first and show result types",
	}
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "Output file (default: stdout for one input, <input>.cpp otherwise)",
	}

	tokensCommand = cli.Command{
		Action:      tokens,
		Name:        "tokens",
		Usage:       "Print the token stream of a source file",
		ArgsUsage:   "<file>",
		Description: `The tokens command scans one file and prints a table of its tokens.`,
	}
	astCommand = cli.Command{
		Action:    dumpAST,
		Name:      "ast",
		Usage:     "Print the syntax tree of the given units",
		ArgsUsage: "<file>...",
		Flags:     []cli.Flag{jsonFlag, typedFlag},
		Description: `The ast command parses each unit and prints the classes it declares.
Runtime declarations are omitted.`,
	}
	checkCommand = cli.Command{
		Action:      check,
		Name:        "check",
		Usage:       "Parse and analyze the given units",
		ArgsUsage:   "<file>...",
		Description: `The check command reports the diagnostics of every unit.`,
	}
	emitCommand = cli.Command{
		Action:      emit,
		Name:        "emit",
		Usage:       "Translate the given units to C++",
		ArgsUsage:   "<file>...",
		Flags:       []cli.Flag{outputFlag},
		Description: `The emit command checks each unit and writes its C++ translation.`,
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command shows the effective configuration values.`,
	}
)

// tokens is the tokens command.
func tokens(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageErrorf(ctx, "tokens takes exactly one file")
	}
	cfg, logger, p, err := setup(ctx)
	if err != nil {
		return err
	}
	toks, err := project.NewUnit(ctx.Args().First(), cfg, logger).Tokens()
	if err != nil {
		p.error(err)
		return exitCode(exitCompile)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Position", "Token", "Literal"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	for _, t := range toks {
		table.Append([]string{t.Pos.String(), t.Kind.String(), formatLiteral(t.Lit)})
	}
	table.Render()
	return nil
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return ""
	}
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// compile runs the units named on the command line up to phase and
// prints their diagnostics.
func compile(ctx *cli.Context, phase project.Phase) ([]project.Result, error) {
	if ctx.NArg() == 0 {
		return nil, usageErrorf(ctx, "no input file")
	}
	cfg, logger, p, err := setup(ctx)
	if err != nil {
		return nil, err
	}
	results, err := project.CompileAll(context.Background(), ctx.Args(), phase, cfg, logger)
	if err != nil {
		return nil, err
	}
	return results, p.results(results)
}

// dumpAST is the ast command.
func dumpAST(ctx *cli.Context) error {
	phase := project.PhaseParse
	if ctx.Bool(typedFlag.Name) {
		phase = project.PhaseCheck
	}
	results, err := compile(ctx, phase)
	if results == nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, c := range r.Unit.Package().Classes() {
			if c.Tok().Pos.Filename() == project.RuntimeFile {
				continue
			}
			fprint := syntax.Fprint
			if ctx.Bool(jsonFlag.Name) {
				fprint = syntax.FprintJSON
			}
			if perr := fprint(ctx.App.Writer, c); perr != nil {
				return perr
			}
		}
	}
	return err
}

// check is the check command.
func check(ctx *cli.Context) error {
	_, err := compile(ctx, project.PhaseCheck)
	return err
}

// emit is the emit command.
func emit(ctx *cli.Context) error {
	out := ctx.String("output")
	if out != "" && ctx.NArg() > 1 {
		return usageErrorf(ctx, "--output requires a single input file")
	}
	results, err := compile(ctx, project.PhaseCheck)
	if results == nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		target := out
		if target == "" && len(results) > 1 {
			target = strings.TrimSuffix(r.Unit.File(), filepath.Ext(r.Unit.File())) + ".cpp"
		}
		if werr := writeUnit(ctx.App.Writer, target, r.Unit); werr != nil {
			fmt.Fprintf(ctx.App.ErrWriter, "lscc: %v\n", werr)
			return exitCode(exitCompile)
		}
	}
	return err
}

// writeUnit emits u to the file target, or to w if target is empty.
func writeUnit(w io.Writer, target string, u *project.Unit) error {
	if target == "" {
		return u.Emit(w)
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if err := u.Emit(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return usageErrorf(ctx, "%v", err)
	}
	out, err := project.Dump(cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
