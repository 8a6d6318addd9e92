package engine

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// CommandKind is the kind of a single command character
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandMove
	CommandLeft
	CommandRight
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	}
	return "unknown"
}

// Command is one lexed token of a command string.
type Command struct {
	Kind    CommandKind
	Literal string
	Column  int
}

var (
	commandLexer     *lexmachine.Lexer
	commandLexerErr  error
	commandLexerOnce sync.Once
)

func buildCommandLexer() (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`M`), commandAction(CommandMove))
	lexer.Add([]byte(`L`), commandAction(CommandLeft))
	lexer.Add([]byte(`R`), commandAction(CommandRight))
	// Anything else is a single unknown byte. The interpreter stops on it.
	lexer.Add([]byte(`.|[\n]`), commandAction(CommandUnknown))

	if err := lexer.Compile(); err != nil {
		return nil, err
	}
	return lexer, nil
}

func commandAction(kind CommandKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		literal := string(m.Bytes)
		if kind == CommandUnknown && m.TC < len(s.Text) {
			if r, size := utf8.DecodeRune(s.Text[m.TC:]); size > 1 && r != utf8.RuneError {
				literal = string(r)
			}
		}
		return Command{Kind: kind, Literal: literal, Column: m.StartColumn}, nil
	}
}

// Tokenize splits a command string into commands, one per character.
// Characters outside M, L and R come back as CommandUnknown.
func Tokenize(commands string) ([]Command, error) {
	commandLexerOnce.Do(func() {
		commandLexer, commandLexerErr = buildCommandLexer()
	})
	if commandLexerErr != nil {
		return nil, fmt.Errorf("failed to compile command lexer: %w", commandLexerErr)
	}

	scanner, err := commandLexer.Scanner([]byte(commands))
	if err != nil {
		return nil, err
	}

	var out []Command
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			if ui.StartTC >= len(commands) {
				break
			}
			out = append(out, Command{Kind: CommandUnknown, Literal: commands[ui.StartTC : ui.StartTC+1], Column: ui.StartColumn})
			scanner.TC = ui.StartTC + 1
			continue
		} else if err != nil {
			return nil, err
		}
		out = append(out, tok.(Command))
	}
	return out, nil
}
