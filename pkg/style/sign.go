package style

import (
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	PositiveColors = text.Colors{text.FgHiGreen}
	NegativeColors = text.Colors{text.FgHiRed}
)

// SignColors returns the colors of a value by its sign, zero is not colored
func SignColors(v float64) text.Colors {
	switch {
	case v > 0:
		return PositiveColors
	case v < 0:
		return NegativeColors
	}
	return nil
}
