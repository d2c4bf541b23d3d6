// Package ui provides cyberpunk-styled console output for the Freetier Router.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASCII ART BANNER - Cyberpunk Theme
// ══════════════════════════════════════════════════════════════════════════════

// Version is printed in the banner.
const Version = "v1.0.0"

const bannerWidth = 72

// glyphs holds six-row block letters for the banner words.
var glyphs = map[rune][6]string{
	'F': {"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "██║     ", "╚═╝     "},
	'R': {"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██║  ██║", "╚═╝  ╚═╝"},
	'E': {"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
	'T': {"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "},
	'I': {"██╗", "██║", "██║", "██║", "██║", "╚═╝"},
}

// renderWord returns the six rows of word in block letters.
func renderWord(word string) [6]string {
	var rows [6]string
	for _, r := range word {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] += g[i]
		}
	}
	return rows
}

// pad right-pads s with spaces to width terminal columns.
func pad(s string, width int) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintBanner displays the ASCII art startup banner with cyberpunk styling.
func PrintBanner() {
	fmt.Println()

	cyan := color.New(color.FgCyan, color.Bold)
	hiCyan := color.New(color.FgHiCyan)
	magenta := color.New(color.FgMagenta, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	hiMagenta := color.New(color.FgHiMagenta)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	inner := bannerWidth - 2
	cyan.Println("╔" + strings.Repeat("═", inner) + "╗")

	free := renderWord("FREE")
	tier := renderWord("TIER")
	for i := range free {
		line := free[i] + " " + tier[i]
		cyan.Print("║  ")
		hiCyan.Print(free[i])
		dim.Print(" ")
		magenta.Print(tier[i])
		fmt.Print(pad("", inner-2-runewidth.StringWidth(line)))
		cyan.Println("║")
	}

	cyan.Println("╠" + strings.Repeat("═", inner) + "╣")

	info := "🔥 OPENROUTER FREE MODELS  │  ONE SHOT, NO RETRY  │  " + Version
	cyan.Print("║  ")
	yellow.Print("🔥 OPENROUTER FREE MODELS")
	dim.Print("  │  ")
	hiMagenta.Print("ONE SHOT, NO RETRY")
	dim.Print("  │  ")
	white.Print(Version)
	fmt.Print(pad("", inner-2-runewidth.StringWidth(info)))
	cyan.Println("║")

	cyan.Println("╚" + strings.Repeat("═", inner) + "╝")

	fmt.Println()
}
