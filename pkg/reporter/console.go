package reporter

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gdocmark/internal/ui/pretty"
)

// fallbackWidth is used when the writer is not a terminal.
const fallbackWidth = 100

// console is the buffered, styled writer shared by the terminal reporters.
type console struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newConsole(opts Options) console {
	return console{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// flush writes buffered output, keeping the first error in *err.
func (c *console) flush(err *error) {
	if ferr := c.bw.Flush(); *err == nil {
		*err = ferr
	}
}

func (c *console) noFiles() {
	fmt.Fprintln(c.bw, c.styles.Dim.Render("No files to convert."))
}

// width reports the terminal width of w, or fallbackWidth.
func width(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallbackWidth
	}
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		return cols
	}
	return fallbackWidth
}
