//go:build ignore

// debug_tokens prints the raw token stream of a file, one token per line.
//
//	go run tools/debug_tokens.go prog.c
package main

import (
	"fmt"
	"os"

	"github.com/glebzikunov/MTRAN/internal/lexer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_tokens <file>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for t, err := range lexer.New(string(data)).All() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%-12s %q at %d:%d\n", t.Type, t.Lex, t.Line, t.Col)
	}
}
