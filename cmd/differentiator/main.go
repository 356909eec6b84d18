// Command differentiator runs the round loop described by the engine's
// external interface: read one expression per line from standard input,
// differentiate it with respect to every variable it mentions, and print
// each simplified derivative. It is a thin collaborator around the engine,
// not part of the core design (see package symdiff).
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chzyer/readline"

	"github.com/IronHammer-Std/symdiff"
)

func main() {
	historyFile := flag.String("history", "/tmp/.symdiff-history.tmp", "readline history file")
	prompt := flag.String("prompt", "> ", "input prompt")
	flag.Parse()

	l, err := readline.NewEx(&readline.Config{
		Prompt:            *prompt,
		HistoryFile:       *historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		log.Fatalf("readline init: %v", err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		switch {
		case err == readline.ErrInterrupt:
			continue
		case err == io.EOF:
			return
		case err != nil:
			log.Printf("readline: %v", err)
			return
		}
		runRound(strings.TrimSpace(line))
	}
}

// runRound processes one line of input end to end: a fresh Round so no
// state survives between lines, a single parse, then one differentiation +
// simplification per free variable in first-seen order.
func runRound(line string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic while processing round: %v", rec)
		}
	}()
	if line == "" {
		return
	}

	round := symdiff.NewRound()
	toks := round.Lex(line)
	tree, err := round.Parse(toks)
	if err != nil {
		fmt.Printf("Syntax Error: %s\n", err.Error())
		return
	}

	for _, id := range round.Vars.Order() {
		round.ResetDividedByZero()
		derivative := round.Simplify(round.Diff(tree, id))
		if round.DividedByZero {
			fmt.Println("Runtime Error: Divided by 0")
			continue
		}
		fmt.Printf("%s: %s\n", round.Vars.Name(id), round.Print(derivative))
	}
}
