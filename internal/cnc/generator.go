// Package cnc serializes cut layouts into the text documents read by the
// panel saw and the drilling machine.
package cnc

import (
	"fmt"
	"math"
	"strings"
)

// Generator produces machine documents for one kerf width.
type Generator struct {
	KerfWidth float64
}

func New(kerf float64) *Generator {
	if math.IsNaN(kerf) || math.IsInf(kerf, 0) || kerf < 0 {
		kerf = 0
	}
	return &Generator{KerfWidth: kerf}
}

// format renders a number with exactly two decimals. Non-finite values and
// negative zero render as 0.00 so a bad input never aborts a document.
func format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// cleanText keeps free-form names on a single record line.
func cleanText(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}
