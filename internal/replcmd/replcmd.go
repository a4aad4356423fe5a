// Package replcmd implements the flat REPL command grammar of §6's repl
// mode: tell, ask, show, trace on|off, save, load, help, quit. Unlike the
// teacher's verb/noun/object adventure grammar (internal/command), every
// command here is just a verb plus a single trailing argument string, so
// parsing and dispatch are a single small file rather than a lexer/parser
// pair.
package replcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/nmms"
	"github.com/dekarrin/nmms/internal/persist"
	"github.com/dekarrin/nmms/internal/sentence"
)

// Command is a single parsed REPL input line: a verb and everything after
// the first run of whitespace, unsplit, since the argument to tell/ask is
// itself a sequent that may legitimately contain spaces.
type Command struct {
	Name string
	Arg  string
}

// Parse splits line into a Command. The verb is lowercased; the argument
// is left exactly as typed apart from surrounding whitespace trimming. A
// blank line parses to a Command with an empty Name.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}
	}
	parts := strings.SplitN(line, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Arg = strings.TrimSpace(parts[1])
	}
	return cmd
}

// Session holds the mutable state a REPL dispatch loop needs across
// commands: which reasoner and parse mode is active, whether trace lines
// are printed after ask, and where to write replies. It has no knowledge
// of how lines arrive (see internal/input for that).
type Session struct {
	Reasoner *nmms.Reasoner
	Mode     sentence.Mode
	Trace    bool
	Out      io.Writer
}

// NewSession returns a Session ready to dispatch commands against r.
func NewSession(r *nmms.Reasoner, mode sentence.Mode, out io.Writer) *Session {
	return &Session{Reasoner: r, Mode: mode, Out: out}
}

// Dispatch executes a single parsed command, writing its reply to
// s.Out. quit is true once the session should stop reading further
// commands (the quit/exit command). err is only non-nil for unrecoverable
// dispatch failures (an unwritable Out, say); ordinary rejected input
// (bad sequent syntax, unknown command) is reported through Out and does
// not set err.
func (s *Session) Dispatch(cmd Command) (quit bool, err error) {
	switch cmd.Name {
	case "":
		return false, nil

	case "tell":
		if err := s.Reasoner.Tell(cmd.Arg, s.Mode); err != nil {
			return false, s.printf("error: %v\n", err)
		}
		return false, s.printf("OK\n")

	case "ask":
		result, err := s.Reasoner.Ask(cmd.Arg, s.Mode)
		if err != nil {
			return false, s.printf("error: %v\n", err)
		}
		verdict := "NOT DERIVABLE"
		if result.Derivable {
			verdict = "DERIVABLE"
		}
		if werr := s.printf("%s\n", verdict); werr != nil {
			return false, werr
		}
		if s.Trace {
			for _, line := range result.Trace {
				if werr := s.printf("%s\n", line); werr != nil {
					return false, werr
				}
			}
		}
		return false, nil

	case "show":
		return false, s.show()

	case "trace":
		switch strings.ToLower(cmd.Arg) {
		case "on":
			s.Trace = true
			return false, s.printf("trace on\n")
		case "off":
			s.Trace = false
			return false, s.printf("trace off\n")
		default:
			return false, s.printf("error: usage: trace on|off\n")
		}

	case "save":
		if cmd.Arg == "" {
			return false, s.printf("error: usage: save FILE\n")
		}
		data, merr := persist.ToJSON(s.Reasoner.Base)
		if merr != nil {
			return false, s.printf("error: %v\n", merr)
		}
		if werr := os.WriteFile(cmd.Arg, data, 0644); werr != nil {
			return false, s.printf("error: %v\n", werr)
		}
		return false, s.printf("saved to %s\n", cmd.Arg)

	case "load":
		if cmd.Arg == "" {
			return false, s.printf("error: usage: load FILE\n")
		}
		data, rerr := os.ReadFile(cmd.Arg)
		if rerr != nil {
			return false, s.printf("error: %v\n", rerr)
		}
		base, perr := persist.FromJSON(data, s.Mode)
		if perr != nil {
			return false, s.printf("error: %v\n", perr)
		}
		s.Reasoner = nmms.FromBase(base)
		return false, s.printf("loaded %s\n", cmd.Arg)

	case "help":
		return false, s.printf("%s", helpText)

	case "quit", "exit":
		return true, nil

	default:
		return false, s.printf("error: unknown command %q; try HELP\n", cmd.Name)
	}
}

func (s *Session) show() error {
	if err := s.printf("language: %s\n", sentence.SetString(s.Reasoner.Base.Language())); err != nil {
		return err
	}
	for _, pair := range s.Reasoner.Base.Consequences() {
		if err := s.printf("  %s |~ %s\n", sentence.SetString(pair[0]), sentence.SetString(pair[1])); err != nil {
			return err
		}
	}
	for _, rec := range s.Reasoner.Base.Schemas() {
		if rec.Kind == "concept" {
			if err := s.printf("  schema: R=%s a=%s -> C=%s\n", rec.Role, rec.Individual, rec.Concept); err != nil {
				return err
			}
		} else {
			if err := s.printf("  schema: R=%s a=%s C=%s -> %s\n", rec.Role, rec.Individual, rec.Concept, sentence.SetString(rec.Consequent)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.Out, format, args...)
	return err
}

const helpText = `commands:
  tell GAMMA |~ DELTA   register an explicit base consequence
  ask GAMMA => DELTA    query whether GAMMA derives DELTA
  show                  print the current base's language, consequences, and schemas
  trace on|off          toggle proof-trace output after ask
  save FILE             write the current base to FILE as JSON
  load FILE             replace the current base with the contents of FILE
  help                  print this message
  quit                  end the session
`
