package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"

	"worklog/internal/config"
)

const columnGap = "  "

// Column is a table column. Right aligns its cells to the right.
type Column struct {
	Title string
	Right bool
}

// Renderer writes command results as aligned tables or as JSON.
type Renderer struct {
	out    io.Writer
	format string
}

func NewRenderer(out io.Writer, format string) *Renderer {
	if format != config.FormatJSON {
		format = config.FormatTable
	}
	return &Renderer{out: out, format: format}
}

// JSON reports whether results should be written as JSON.
func (r *Renderer) JSON() bool {
	return r.format == config.FormatJSON
}

func (r *Renderer) WriteJSON(v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Table writes rows under a header line. Widths are measured in terminal
// cells so accented and wide characters line up.
func (r *Renderer) Table(columns []Column, rows [][]string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
		rules[i] = strings.Repeat("-", widths[i])
	}

	r.writeRow(columns, widths, titles)
	r.writeRow(columns, widths, rules)
	for _, row := range rows {
		r.writeRow(columns, widths, row)
	}
}

func (r *Renderer) writeRow(columns []Column, widths []int, cells []string) {
	parts := make([]string, len(columns))
	for i, col := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if col.Right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	fmt.Fprintln(r.out, strings.TrimRight(strings.Join(parts, columnGap), " "))
}
