// Package printers renders notes and todos for the terminal.
package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/notas/pkg/note"
)

const (
	checked   = "[x]"
	unchecked = "[ ]"
	bodyWidth = 80
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Interactive reports whether w is a terminal.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Notes lists notes one per row with a preview, todo progress and the time
// of the last change.
func (pp *PrettyPrint) Notes(notes ...*note.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, n := range notes {
		done := len(n.Todos) - n.OpenCount()
		progress := f.Sprintf("%d/%d", done, len(n.Todos))
		updated := f.Sprint(note.FormatMillis(n.UpdatedAt))
		if pp.ShowID {
			tbl.AddRow(y.Sprint(n.ID), n.Preview(note.PreviewWidth), progress, updated)
		} else {
			tbl.AddRow(n.Preview(note.PreviewWidth), progress, updated)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Note prints one note: its preview as a title, the plain text body and its
// todos.
func (pp *PrettyPrint) Note(n *note.Note) {
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Fprintln(pp.out(), n.ID)
	}
	pp.Title(n.Preview(note.PreviewWidth))

	if body := note.PlainText(n.Content); body != "" {
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(body, bodyWidth))
	}
	pp.NewLine()

	pp.TitleWithCount("Todos", len(n.Todos), "todo")
	pp.Todos(n.Todos...)
}

func (pp *PrettyPrint) Todos(todos ...note.Todo) {
	if len(todos) == 0 {
		pp.none()
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	link := color.New(color.FgCyan, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, td := range todos {
		box, text := unchecked, t.Sprint(td.Text)
		if td.Completed {
			box, text = checked, done.Sprint(td.Text)
		}
		if src := td.Source(); src != "" {
			text += " " + link.Sprintf("(%s)", src)
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(td.ID), box, text)
		} else {
			tbl.AddRow(box, text)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}
