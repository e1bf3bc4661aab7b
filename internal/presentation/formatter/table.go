package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-inbox-csv/internal/util"
)

// TableFormatter prints a boxed per-folder summary
type TableFormatter struct {
	w       io.Writer
	headers []string
	color   bool
	maxCell int
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	f := &TableFormatter{
		w:       w,
		headers: []string{"Conversation", "Folder", "Files", "Messages", "Rows", "Skipped", "Enc. Errors"},
		maxCell: 40,
	}
	if file, ok := w.(*os.File); ok && util.IsTerminal(file) {
		f.color = true
		// Two text columns share what the five numeric columns leave over
		if cell := (util.TerminalWidth(file) - 60) / 2; cell >= 12 && cell < f.maxCell {
			f.maxCell = cell
		}
	}
	return f
}

func (f *TableFormatter) Format(summary RunSummary) error {
	rows := make([][]string, 0, len(summary.Folders)+1)
	var total FolderSummary
	for _, s := range summary.Folders {
		rows = append(rows, f.values(s.Conversation, filepath.Base(s.Folder), s))
		total.Files += s.Files
		total.Messages += s.Messages
		total.Rows += s.Rows
		total.EmptySkipped += s.EmptySkipped
		total.EncodingSkipped += s.EncodingSkipped
		total.EncodingFailures += s.EncodingFailures
	}
	totalRow := f.values("Total", fmt.Sprintf("%d folders", len(summary.Folders)), total)

	widths := f.calculateColumnWidths(append(rows, totalRow))

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths, true)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths, false)
	}
	if len(rows) > 0 {
		f.printBorder(widths, "middle")
	}
	f.printRow(totalRow, widths, false)
	f.printBorder(widths, "bottom")

	if summary.Dataset != "" {
		fmt.Fprintf(f.w, "Dataset: %s (%d rows)\n", summary.Dataset, summary.DatasetRows)
	}
	if summary.Duration > 0 {
		fmt.Fprintf(f.w, "Completed in %v\n", summary.Duration.Round(time.Millisecond))
	}
	return nil
}

func (f *TableFormatter) values(conversation, folder string, s FolderSummary) []string {
	return []string{
		util.TruncateString(conversation, f.maxCell),
		util.TruncateString(folder, f.maxCell),
		strconv.Itoa(s.Files),
		strconv.Itoa(s.Messages),
		strconv.Itoa(s.Rows),
		strconv.Itoa(s.EmptySkipped + s.EncodingSkipped),
		strconv.Itoa(s.EncodingFailures),
	}
}

// calculateColumnWidths sizes each column to its widest cell in display cells
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

// printRow left-aligns the two text columns and right-aligns the counters
func (f *TableFormatter) printRow(values []string, widths []int, header bool) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		leftAlign := header || i < 2
		b.WriteString(" ")
		cell := util.PadString(value, widths[i], leftAlign)
		if header {
			cell = util.Colorize(cell, util.ColorBold, f.color)
		}
		b.WriteString(cell)
		b.WriteString(" │")
	}
	fmt.Fprintln(f.w, b.String())
}
