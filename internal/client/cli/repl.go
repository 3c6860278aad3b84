package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Refs(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// errUsage makes the REPL print the usage line of the current command.
var errUsage = errors.New("usage")

var usage = map[string]string{
	"login":  "login [username]",
	"list":   "list <resource> [page] [perPage] [field] [ASC|DESC] [key=value...]",
	"get":    "get <resource> <id...>",
	"refs":   "refs <resource> <target> <id>",
	"create": "create <resource> key=value...",
	"update": "update <resource> <id...> key=value...",
	"delete": "delete <resource> <id...>",
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit". Command errors
// are printed and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: list, get, refs, create, update, delete, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)
		case "l", "list":
			cmd = "list"
			cmdErr = a.List(ctx, args)
		case "get":
			cmdErr = a.Get(ctx, args)
		case "refs":
			cmdErr = a.Refs(ctx, args)
		case "create":
			cmdErr = a.Create(ctx, args)
		case "update":
			cmdErr = a.Update(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		switch {
		case errors.Is(cmdErr, errUsage):
			printlnFn("Usage:", usage[cmd])
		case cmdErr != nil:
			printlnFn("Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}
