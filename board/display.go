package board

import (
	"strconv"
	"strings"
)

const displayCellWidth = 6

func centered(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// ToDisplayText draws the board with borders, showing face values rather
// than exponents. Empty cells are blank.
func ToDisplayText(s State) string {
	var sb strings.Builder
	border := "+" + strings.Repeat(strings.Repeat("-", displayCellWidth)+"+", Dim) + "\n"
	sb.WriteString(border)
	for row := range Dim {
		sb.WriteString("|")
		for col := range Dim {
			text := ""
			if e := s.Tile(row, col); e != 0 {
				text = strconv.Itoa(FaceValue(e))
			}
			sb.WriteString(centered(text, displayCellWidth))
			sb.WriteString("|")
		}
		sb.WriteString("\n")
		sb.WriteString(border)
	}
	return sb.String()
}

// ToHexText prints the raw exponents, one row per line.
func ToHexText(s State) string {
	var sb strings.Builder
	for row := range Dim {
		for col := range Dim {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strings.ToUpper(strconv.FormatUint(uint64(s.Tile(row, col)), 16)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
