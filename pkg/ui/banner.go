package ui

import "strings"

const (
	reset       = "\033[0m"
	bold        = "\033[1m"
	outlineGray = "\033[38;5;244m"
	emberOrange = "\033[38;5;214m"
	coreAmber   = "\033[38;5;178m"
	mint        = "\033[38;5;121m"
	seafoam     = "\033[38;5;49m"
	cobalt      = "\033[38;5;33m"
	deepIndigo  = "\033[38;5;61m"
	fuchsia     = "\033[38;5;177m"
	pinFlame    = "\033[38;5;208m"
)

// Banner renders a colored corepin wordmark.
func Banner() string {
	var b strings.Builder

	corepinLetters := [][]string{
		{" ██████╗", "██╔════╝", "██║     ", "██║     ", "╚██████╗", " ╚═════╝"},
		{" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██║  ██║", "╚═╝  ╚═╝"},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔═══╝ ", "██║     ", "╚═╝     "},
		{"██╗", "██║", "██║", "██║", "██║", "╚═╝"},
		{"███╗   ██╗", "████╗  ██║", "██╔██╗ ██║", "██║╚██╗██║", "██║ ╚████║", "╚═╝  ╚═══╝"},
	}
	corepinGradient := []string{pinFlame, emberOrange, coreAmber, mint, cobalt, deepIndigo, fuchsia}
	corepinRows := make([]string, len(corepinLetters[0]))
	for i, letter := range corepinLetters {
		color := corepinGradient[i%len(corepinGradient)]
		for row := 0; row < len(letter); row++ {
			corepinRows[row] += color + letter[row] + "  "
		}
	}
	for _, line := range corepinRows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	b.WriteString(bold + pinFlame + "corepin" + reset + "  •  compiler core pinning daemon\n\n")

	return b.String()
}
