/*
File    : epilang/cmd/epilang/main.go
*/

// Package main is the entry point for the Epilang interpreter: interactive
// REPL by default, or one-shot file execution when given a source path.
package main

import (
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/epilang-lang/epilang/eval"
	"github.com/epilang-lang/epilang/lexer"
	"github.com/epilang-lang/epilang/parser"
	"github.com/epilang-lang/epilang/repl"
	"github.com/epilang-lang/epilang/value"
)

// VERSION is the interpreter's version string.
var VERSION = "v1.0.0"

// AUTHOR is the interpreter's maintainer contact.
var AUTHOR = "epilang-lang"

// LICENCE is the interpreter's software license.
var LICENCE = "MIT"

// PROMPT is the command prompt shown in REPL mode.
var PROMPT = "epilang >>> "

// BANNER is the ASCII logo shown at REPL startup.
var BANNER = `
 ███████╗██████╗ ██╗██╗      █████╗ ███╗   ██╗ ██████╗
 ██╔════╝██╔══██╗██║██║     ██╔══██╗████╗  ██║██╔════╝
 █████╗  ██████╔╝██║██║     ███████║██╔██╗ ██║██║  ███╗
 ██╔══╝  ██╔═══╝ ██║██║     ██╔══██║██║╚██╗██║██║   ██║
 ███████╗██║     ██║███████╗██║  ██║██║ ╚████║╚██████╔╝
 ╚══════╝╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝
`

// LINE is the separator line used for banner formatting.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		switch arg {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		case "server":
			if len(os.Args) < 3 {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] missing port for server mode. Usage: epilang server <port>\n")
				os.Exit(1)
			}
			startServer(os.Args[2])
			return
		}

		runFile(arg)
		return
	}

	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Epilang - a small expression language with delimited continuations")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  epilang                   Start interactive REPL mode")
	yellowColor.Println("  epilang <path-to-file>    Execute an Epilang source file")
	yellowColor.Println("  epilang server <port>     Start a REPL server on the given port")
	yellowColor.Println("  epilang --help            Display this help message")
	yellowColor.Println("  epilang --version         Display version information")
}

func showVersion() {
	cyanColor.Println("Epilang")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads, parses, and evaluates a single source file, printing its
// result or reporting the first error encountered.
func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}
	executeFileWithRecovery(string(source))
}

// startServer listens on port, handing each accepted connection its own
// independent REPL session.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("Epilang REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("new client connected from %s\n", conn.RemoteAddr())
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(conn, conn)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}

func executeFileWithRecovery(source string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", recovered)
			os.Exit(1)
		}
	}()

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[LEXICAL ERROR] %s\n", err)
		os.Exit(1)
	}

	expr, err := parser.Parse(tokens)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", err)
		os.Exit(1)
	}

	result, err := eval.Eval(expr)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if result.Type() != value.UnitType {
		yellowColor.Fprintf(os.Stdout, "%s\n", result.String())
	}
}
