package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	// Exec runs a command and reports whether it exists.
	Exec(ctx context.Context, cmd string, args []string) bool
}

const (
	helpLoggedOut = "Available commands: login, whoami, medicines, doctors, cart, reminders, labtests, docs, chat, appointments, orders, watch, exit"
	helpLoggedIn  = "Available commands: whoami, medicines, doctors, cart, reminders, labtests, docs, chat, appointments, orders, watch, logout, exit"
)

// runREPL reads one line at a time from in, treats the first word as the
// command and dispatches it to a. The loop ends on EOF, on "exit"/"quit"
// or when ctx is done. Command failures are reported by the commands
// themselves, so the loop never stops because of one.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "sehatbeat %s> ", statusFn())

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			cmd, args := parts[0], parts[1:]

			switch cmd {
			case "help":
				if a.isLoggedIn() {
					fmt.Fprintln(w, helpLoggedIn)
				} else {
					fmt.Fprintln(w, helpLoggedOut)
				}

			case "exit", "quit":
				fmt.Fprintln(w, "Bye!")
				return

			default:
				if !a.Exec(ctx, cmd, args) {
					fmt.Fprintln(w, "Unknown command:", cmd)
				}
			}
		}

		if err != nil {
			return
		}
	}
}
