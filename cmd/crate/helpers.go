package main

import (
	"fmt"
	"io"
	"strconv"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// headline prints a section heading, colorized when writing to a
// terminal.
func headline(out io.Writer, text string) {
	if isTerminal(out) {
		fmt.Fprintln(out, ansiBlue+text+ansiReset)
		return
	}
	fmt.Fprintln(out, text)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
