package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column は表の1列の見出しと揃え方です。
type column struct {
	header string
	align  text.Align
}

// 各コマンドが出力する表の列構成
var (
	shotColumns = []column{
		{"#", text.AlignRight},
		{"Camera Angle", text.AlignLeft},
		{"Description", text.AlignLeft},
	}
	projectColumns = []column{
		{"Title", text.AlignLeft},
		{"Category", text.AlignLeft},
		{"Duration", text.AlignRight},
		{"Link", text.AlignLeft},
	}
	heroColumns = []column{
		{"Element", text.AlignLeft},
		{"Opacity", text.AlignRight},
		{"Transform", text.AlignLeft},
		{"Float", text.AlignLeft},
	}
)

// renderTable は角丸の罫線で表を描画するのだ。列より短い行は空欄で埋め、長い行は切り詰めるのだよ。
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
