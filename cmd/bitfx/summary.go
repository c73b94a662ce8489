package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// summary describes a finished run.
type summary struct {
	input       string
	output      string
	width       int
	height      int
	cols        int
	rows        int
	glyphHeight float64
	frames      int
	rate        string
	elapsed     time.Duration
}

var countPrinter = message.NewPrinter(language.English)

func (s summary) render() string {
	rows := [][]string{
		{"Input", s.input + fileSize(s.input)},
		{"Output", s.output + fileSize(s.output)},
		{"Resolution", fmt.Sprintf("%dx%d", s.width, s.height)},
		{"Glyph grid", fmt.Sprintf("%dx%d @ %s px", s.cols, s.rows, strconv.FormatFloat(s.glyphHeight, 'f', -1, 64))},
		{"Frames", countPrinter.Sprintf("%d", s.frames)},
	}
	if s.rate != "" {
		rows = append(rows, []string{"Frame rate", s.rate})
	}
	rows = append(rows, []string{"Elapsed", s.elapsed.Round(time.Millisecond).String()})
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}

// fileSize formats the on-disk size of path, or returns "" when it cannot
// be read.
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return " (" + humanize.Bytes(uint64(info.Size())) + ")"
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
