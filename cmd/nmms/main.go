/*
Nmms is a command-line driver for the NMMS reasoner core.

It reads and writes material bases as JSON files and exposes the three
core operations as subcommands: telling the base a new explicit
consequence, asking whether a sequent is derivable, and an interactive
REPL that accepts both plus base introspection and file save/load.

Usage:

	nmms tell   -b BASE [--create] [--rq] STATEMENT
	nmms ask    -b BASE [--rq] [--trace] [--max-depth N] [--json] [--quiet] SEQUENT
	nmms repl   [-b BASE] [--rq] [--direct]

STATEMENT is either "Γ |~ Δ" or "atom X [DESCRIPTION]" (the latter adds a
bare atom to the base's language; DESCRIPTION is free text kept only for
the human reading the command line). SEQUENT is "Γ => Δ". Either side of
either arrow may be empty, and both accept a comma-separated list of
sentences.

Exit codes for tell: 0 success, 1 error. Exit codes for ask: 0 the
sequent is derivable, 2 it is not, 1 error (grep-style, so a shell script
can branch on $?).

With --batch FILE, tell reads one STATEMENT per line from FILE instead of
from the command line; blank lines and lines starting with "#" are
skipped.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/nmms"
	"github.com/dekarrin/nmms/internal/input"
	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/persist"
	"github.com/dekarrin/nmms/internal/proofsearch"
	"github.com/dekarrin/nmms/internal/replcmd"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitError indicates an error unrelated to derivability: bad flags,
	// unparseable input, an unreadable or unwritable base file.
	ExitError

	// ExitNotDerivable is returned by ask alone, when the sequent is
	// well-formed but not derivable from the base.
	ExitNotDerivable
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	baseFile    *string = pflag.StringP("base", "b", "", "The JSON material base file to operate on")
	createBase  *bool   = pflag.Bool("create", false, "For tell, create BASE if it does not already exist")
	rqMode      *bool   = pflag.Bool("rq", false, "Parse atoms and sentences in RQ (restricted-quantifier) mode")
	traceFlag   *bool   = pflag.Bool("trace", false, "For ask, print the proof-search trace")
	maxDepth    *int    = pflag.Int("max-depth", proofsearch.DefaultMaxDepth, "Maximum recursion depth for proof search")
	jsonOutput  *bool   = pflag.Bool("json", false, "For ask, print the result as a JSON object")
	quiet       *bool   = pflag.Bool("quiet", false, "For ask, suppress the DERIVABLE/NOT DERIVABLE line; exit code alone carries the answer")
	batchFile   *string = pflag.String("batch", "", "For tell, read one statement per line from FILE instead of the command line")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "For repl, force reading directly from stdin instead of GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a subcommand: tell, ask, or repl")
		returnCode = ExitError
		return
	}

	mode := sentence.Propositional
	if *rqMode {
		mode = sentence.RQ
	}

	sub := strings.ToLower(args[0])
	rest := strings.Join(args[1:], " ")

	var err error
	switch sub {
	case "tell":
		err = runTell(mode, rest)
	case "ask":
		returnCode, err = runAsk(mode, rest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
		}
		return
	case "repl":
		err = runRepl(mode)
	default:
		err = fmt.Errorf("unknown subcommand %q: expected tell, ask, or repl", sub)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
	}
}

func runTell(mode sentence.Mode, statement string) error {
	if *baseFile == "" {
		return fmt.Errorf("tell requires -b BASE")
	}

	mb, err := loadOrCreateBase(*baseFile, *createBase)
	if err != nil {
		return err
	}

	if *batchFile != "" {
		lines, err := readBatchLines(*batchFile)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := applyTellStatement(mb, mode, line); err != nil {
				return fmt.Errorf("%q: %w", line, err)
			}
		}
	} else {
		if statement == "" {
			return fmt.Errorf("tell requires a statement")
		}
		if err := applyTellStatement(mb, mode, statement); err != nil {
			return err
		}
	}

	return saveBase(*baseFile, mb)
}

// applyTellStatement applies a single tell-mode STATEMENT ("Γ |~ Δ" or
// "atom X [DESCRIPTION]") to mb.
func applyTellStatement(mb *materialbase.MaterialBase, mode sentence.Mode, statement string) error {
	if rest, ok := stripAtomPrefix(statement); ok {
		fields := strings.SplitN(rest, " ", 2)
		if fields[0] == "" {
			return fmt.Errorf("atom statement missing atom text")
		}
		a, err := sentence.Parse(fields[0], mode)
		if err != nil {
			return err
		}
		return mb.AddAtom(a)
	}

	gamma, delta, err := sentence.ParseSequent(statement, mode, sentence.Tells)
	if err != nil {
		return err
	}
	return mb.AddConsequence(gamma, delta)
}

func stripAtomPrefix(statement string) (rest string, ok bool) {
	const prefix = "atom "
	if len(statement) >= len(prefix) && strings.EqualFold(statement[:len(prefix)], prefix) {
		return strings.TrimSpace(statement[len(prefix):]), true
	}
	return "", false
}

type askResult struct {
	Derivable    bool     `json:"derivable"`
	DepthReached int      `json:"depth_reached"`
	CacheHits    int      `json:"cache_hits"`
	Trace        []string `json:"trace,omitempty"`
}

func runAsk(mode sentence.Mode, sequent string) (int, error) {
	if *baseFile == "" {
		return ExitError, fmt.Errorf("ask requires -b BASE")
	}
	if sequent == "" {
		return ExitError, fmt.Errorf("ask requires a sequent")
	}

	data, err := os.ReadFile(*baseFile)
	if err != nil {
		return ExitError, fmt.Errorf("read base: %w", err)
	}
	mb, err := persist.FromJSON(data, mode)
	if err != nil {
		return ExitError, fmt.Errorf("load base: %w", err)
	}

	r := nmms.FromBase(mb, proofsearch.MaxDepth(*maxDepth))

	gamma, delta, err := sentence.ParseSequent(sequent, mode, sentence.Asks)
	if err != nil {
		return ExitError, err
	}
	result := r.Derives(gamma, delta)

	if *jsonOutput {
		out := askResult{Derivable: result.Derivable, DepthReached: result.DepthReached, CacheHits: result.CacheHits}
		if *traceFlag {
			out.Trace = result.Trace
		}
		enc, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return ExitError, err
		}
		fmt.Println(string(enc))
	} else {
		if !*quiet {
			verdict := "NOT DERIVABLE"
			if result.Derivable {
				verdict = "DERIVABLE"
			}
			fmt.Println(verdict)
		}
		if *traceFlag {
			printTrace(result.Trace)
		}
	}

	if result.Derivable {
		return ExitSuccess, nil
	}
	return ExitNotDerivable, nil
}

// printTrace wraps each trace line at 100 columns the way tunaq's
// console messages are wrapped, so deeply indented DEPTH LIMIT/AXIOM
// lines are broken up rather than printed as one long line.
func printTrace(lines []string) {
	for _, line := range lines {
		fmt.Println(rosed.Edit(line).Wrap(100).String())
	}
}

func runRepl(mode sentence.Mode) error {
	var mb *materialbase.MaterialBase
	if *baseFile != "" {
		if _, err := os.Stat(*baseFile); err == nil {
			loaded, err := loadOrCreateBase(*baseFile, true)
			if err != nil {
				return err
			}
			mb = loaded
		} else {
			mb = materialbase.New()
		}
	} else {
		mb = materialbase.New()
	}

	r := nmms.FromBase(mb, proofsearch.MaxDepth(*maxDepth))
	session := replcmd.NewSession(r, mode, os.Stdout)

	var reader interface {
		ReadCommand() (string, error)
		Close() error
	}
	if *forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		icr, err := input.NewInteractiveReader()
		if err != nil {
			reader = input.NewDirectReader(os.Stdin)
		} else {
			reader = icr
		}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		cmd := replcmd.Parse(line)
		quit, err := session.Dispatch(cmd)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}

	return nil
}

func loadOrCreateBase(path string, create bool) (*materialbase.MaterialBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && create {
			return materialbase.New(), nil
		}
		return nil, fmt.Errorf("read base: %w", err)
	}
	mode := sentence.Propositional
	if *rqMode {
		mode = sentence.RQ
	}
	mb, err := persist.FromJSON(data, mode)
	if err != nil {
		return nil, fmt.Errorf("load base: %w", err)
	}
	return mb, nil
}

func saveBase(path string, mb *materialbase.MaterialBase) error {
	data, err := persist.ToJSON(mb)
	if err != nil {
		return fmt.Errorf("encode base: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write base: %w", err)
	}
	return nil
}

func readBatchLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

