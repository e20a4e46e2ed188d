package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/juju/ansiterm"
	"github.com/mattn/go-isatty"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

var (
	okColor    = ansiterm.Foreground(ansiterm.Green)
	errColor   = ansiterm.Foreground(ansiterm.BrightRed)
	warnColor  = ansiterm.Foreground(ansiterm.Yellow)
	labelColor = ansiterm.Foreground(ansiterm.BrightBlue)
)

// isTerminal checks if w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// NewWriter wraps out, enabling colour only on terminals.
func NewWriter(out io.Writer) *ansiterm.Writer {
	w := ansiterm.NewWriter(out)
	w.SetColorCapable(isTerminal(out))
	return w
}

// Success prints a green status line.
func Success(w *ansiterm.Writer, format string, args ...any) {
	okColor.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

// Failure prints a red status line.
func Failure(w *ansiterm.Writer, format string, args ...any) {
	errColor.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

// Warning prints a yellow status line.
func Warning(w *ansiterm.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

// FormatDate renders epoch milliseconds in local time.
func FormatDate(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("Jan 2, 2006 15:04")
}

func newTable(out io.Writer) *ansiterm.TabWriter {
	tw := ansiterm.NewTabWriter(out, 0, 8, 2, ' ', 0)
	tw.SetColorCapable(isTerminal(out))
	return tw
}

// PrintProjects writes a project table, newest first as given.
func PrintProjects(out io.Writer, projects []data.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(out, "No projects yet.")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPOSITION\tIMAGE\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t", p.ID, truncate(p.Title, 40))
		labelColor.Fprintf(tw, "%s", p.Category)
		fmt.Fprintf(tw, "\t%s\t%s\t%s\n", p.ObjectPosition.OrDefault(), imageKind(p.ImageURL), FormatDate(p.CreatedAt))
	}
	return tw.Flush()
}

// PrintMessages writes an inbox table, newest first as given.
func PrintMessages(out io.Writer, msgs []data.Message) error {
	if len(msgs) == 0 {
		_, err := fmt.Fprintln(out, "Inbox is empty.")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tDATE\tFROM\tEMAIL\tMESSAGE")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%s\t%s\t", m.ID, FormatDate(m.Date))
		labelColor.Fprintf(tw, "%s", m.Name)
		fmt.Fprintf(tw, "\t%s\t%s\n", m.Email, truncate(oneLine(m.Message), 60))
	}
	return tw.Flush()
}

// PrintMessage writes one message in full.
func PrintMessage(w *ansiterm.Writer, m data.Message) {
	labelColor.Fprintf(w, "%s", m.Name)
	fmt.Fprintf(w, " <%s>  %s\n\n%s\n", m.Email, FormatDate(m.Date), m.Message)
}

func imageKind(u string) string {
	switch {
	case u == "":
		return "none"
	case strings.HasPrefix(u, "data:"):
		return fmt.Sprintf("inline %dKB", len(u)/1024)
	default:
		return "hosted"
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
