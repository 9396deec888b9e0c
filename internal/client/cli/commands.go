package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
)

type commandFn func(a *App, ctx context.Context, args []string) error

var commands = map[string]commandFn{
	"login":        (*App).login,
	"logout":       (*App).logout,
	"whoami":       (*App).whoami,
	"medicines":    (*App).medicines,
	"doctors":      (*App).doctors,
	"cart":         (*App).cart,
	"reminders":    (*App).reminders,
	"labtests":     (*App).labTests,
	"docs":         (*App).docs,
	"chat":         (*App).chat,
	"appointments": (*App).appointments,
	"orders":       (*App).orders,
	"watch":        (*App).watch,
}

// Exec runs cmd inside guard. It returns false for unknown commands.
func (a *App) Exec(ctx context.Context, cmd string, args []string) bool {
	fn, ok := commands[cmd]
	if !ok {
		return false
	}
	a.guard(ctx, cmd, func(ctx context.Context) error {
		return fn(a, ctx, args)
	})
	return true
}

var (
	errBackendDisabled = errors.New("backend is disabled")
	errNoUser          = errors.New("no user, log in first")
	errNotLoaded       = errors.New("no data yet")
)

type usageError string

func (e usageError) Error() string {
	return "usage: " + string(e)
}

// snapshot returns the loaded value of q, or why there is none.
func snapshot[T any](q *live.Query[T]) (T, error) {
	var zero T
	switch {
	case q.Disabled():
		return zero, errBackendDisabled
	case q.Skipped():
		return zero, errNoUser
	}
	if v, ok := q.Get(); ok {
		return v, nil
	}
	if err := q.Err(); err != nil {
		return zero, err
	}
	return zero, errNotLoaded
}

// report prints what a mutator did.
func (a *App) report(what string, o hooks.Outcome, err error) error {
	if err != nil {
		return err
	}
	if o.Skipped() {
		a.printf("%s skipped: %s\n", what, o)
		return nil
	}
	a.printf("%s: done\n", what)
	return nil
}

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// askTime reads a local date ("2006-01-02") or date and time
// ("2006-01-02 15:04") and returns Unix milliseconds.
func (a *App) askTime(prompt string) (int64, error) {
	s, err := a.ask(prompt + " (YYYY-MM-DD [HH:MM])")
	if err != nil {
		return 0, err
	}
	return parseTime(s)
}

func parseTime(s string) (int64, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.Local); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("bad time %q", s)
}

func formatTime(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

// splitList splits a comma separated answer, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad quantity %q", s)
	}
	return n, nil
}

func sub(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}
