// Package ui provides cyberpunk-styled console output for the Freetier Router.
// It creates a visually impressive terminal experience with colorized logs,
// status badges, and ASCII art.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR DEFINITIONS - Cyberpunk Theme
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)
	debugBadge   = color.New(color.FgMagenta)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)

	neonBlue = color.New(color.FgHiCyan, color.Bold)

	// Method colors
	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// ══════════════════════════════════════════════════════════════════════════════
// STATUS MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintRouterInfo logs general router information.
// Format: [ROUTER] message
func PrintRouterInfo(msg string) {
	infoBadge.Print("[ROUTER]")
	fmt.Print(" ")
	infoText.Println(msg)
}

// PrintFatal logs a startup failure.
// Format: [FATAL] message
func PrintFatal(msg string) {
	errorBadge.Print(" FATAL ")
	fmt.Print(" ")
	errorText.Println(msg)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST LOGGING
// ══════════════════════════════════════════════════════════════════════════════

// PrintRequest logs a request with styled output.
// Color-codes status, method, latency and outcome for quick visual parsing.
func PrintRequest(method, path string, status int, latency time.Duration, model, errorKind string) {
	// Timestamp
	mutedText.Printf("%s ", time.Now().Format("15:04:05"))

	printMethodBadge(method)
	fmt.Print(" ")

	fmt.Printf("%-20s ", truncate(path, 20))

	printStatusBadge(status)
	fmt.Print(" ")

	printLatency(latency)

	if model != "" {
		fmt.Print(" ")
		accentText.Print(truncate(model, 48))
	}

	if errorKind != "" {
		fmt.Print(" ")
		printErrorKind(errorKind)
	}

	fmt.Println()
}

// printMethodBadge prints the HTTP method with appropriate color.
func printMethodBadge(method string) {
	switch method {
	case "POST":
		methodPOST.Printf(" %s ", method)
	case "GET":
		methodGET.Printf(" %-4s ", method)
	default:
		debugBadge.Printf(" %s ", method)
	}
}

// printStatusBadge prints the status code with appropriate color.
func printStatusBadge(status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Printf(" %d ", status)
	case status >= 300 && status < 400:
		infoBadge.Printf(" %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Printf(" %d ", status)
	default:
		errorBadge.Printf(" %d ", status)
	}
}

// printLatency prints latency with color gradient.
// Free-tier models are slow, so the thresholds are in seconds:
// Green: < 2s, Yellow: < 10s, Red: >= 10s
func printLatency(latency time.Duration) {
	ms := latency.Milliseconds()
	latencyStr := fmt.Sprintf("%6dms", ms)

	switch {
	case latency < 2*time.Second:
		successText.Print(latencyStr)
	case latency < 10*time.Second:
		warningText.Print(latencyStr)
	default:
		errorText.Print(latencyStr)
	}
}

// printErrorKind prints the outcome classification of a failed generation.
func printErrorKind(kind string) {
	switch kind {
	case "rate_limit", "timeout":
		warningBadge.Printf("[%s]", kind)
	default:
		errorBadge.Printf(" %s ", kind)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// UTILITY FUNCTIONS
// ══════════════════════════════════════════════════════════════════════════════

// truncate shortens s to maxLen terminal columns.
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}

// ══════════════════════════════════════════════════════════════════════════════
// STARTUP MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(host string, port int, provider string, models int) {
	fmt.Println()
	infoBadge.Print("[ROUTER]")
	fmt.Print(" Server starting on ")
	neonBlue.Printf("http://%s:%d\n", host, port)

	infoBadge.Print("[ROUTER]")
	fmt.Print(" Provider: ")
	accentText.Print(provider)
	fmt.Print(" | Free models: ")
	if models > 0 {
		successText.Printf("%d\n", models)
	} else {
		errorText.Printf("%d\n", models)
	}

	fmt.Println()
	printEndpoints()
}

// printEndpoints prints the available API endpoints.
func printEndpoints() {
	mutedText.Println("  ┌─────────────────────────────────────────────────────────┐")
	printEndpoint(methodPOST, "POST", "/v1/generate    ", "Generate with a free model     ")
	printEndpoint(methodGET, "GET ", "/v1/models      ", "List model aliases            ")
	printEndpoint(methodPOST, "POST", "/v1/tokens/count", "Estimate token count          ")
	printEndpoint(methodGET, "GET ", "/health         ", "Health check                  ")
	mutedText.Println("  └─────────────────────────────────────────────────────────┘")
	fmt.Println()
}

func printEndpoint(badge *color.Color, method, path, desc string) {
	mutedText.Print("  │ ")
	badge.Printf(" %s ", method)
	fmt.Printf(" %s ", path)
	mutedText.Print("  " + desc)
	mutedText.Println(" │")
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	fmt.Println()
	warningBadge.Print("[SHUTDOWN]")
	warningText.Println(" Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	successBadge.Print(" OK ")
	fmt.Print(" ")
	successText.Println("Server stopped. Goodbye! 👋")
}
