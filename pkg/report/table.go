package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/c9s/mtcli/pkg/style"
)

// DefaultTableRows is the number of the latest rows printed to the console
const DefaultTableRows = 10

var header = table.Row{"time", "close", "macd", "signal", "histogram"}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// PrintTable renders the last n rows, the histogram is colored by its sign when the style has colors.
func PrintTable(w io.Writer, rows []Row, n int, tableStyle *table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	if tableStyle == nil {
		tableStyle = style.NewPlainTableStyle()
	}
	t.SetStyle(*tableStyle)

	configs := []table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	}
	if style.HasColor(tableStyle) {
		configs[3].Transformer = func(val interface{}) string {
			s, _ := val.(string)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return s
			}
			return style.SignColors(f).Sprint(s)
		}
	}
	t.SetColumnConfigs(configs)

	t.AppendHeader(header)
	for _, row := range Tail(rows, n) {
		t.AppendRow(table.Row{
			row.Time.Format(TimeFormat),
			formatFloat(row.Close, 2),
			formatFloat(row.MACD, 6),
			formatFloat(row.Signal, 6),
			formatFloat(row.Histogram, 6),
		})
	}

	t.Render()
}
