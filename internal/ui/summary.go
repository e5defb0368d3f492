package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bssc/internal/driver"
)

// SummaryOpts configures the build summary.
type SummaryOpts struct {
	Title string
	Color bool
	// Width is the total line width; names are truncated to fit.
	Width  int
	Werror bool
}

// Build statuses shown in the summary.
const (
	StatusOK    = "ok"
	StatusWarn  = "warnings"
	StatusError = "error"
)

// Status classifies a build result. With werror, warnings count as errors.
func Status(r driver.BuildResult, werror bool) string {
	switch {
	case r.Err != nil:
		return StatusError
	case r.Warnings() > 0 && werror:
		return StatusError
	case r.Warnings() > 0:
		return StatusWarn
	}
	return StatusOK
}

// Summary renders one line per built file and a totals footer:
//
//	    ok  styles/site.bss -> dist/styles/site.css  1.2 KiB  0.4 ms
func Summary(results []driver.BuildResult, opts SummaryOpts) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	const statusWidth = 10
	nameWidth := max(width-statusWidth-26, 20)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(style(opts.Color, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))).Render(opts.Title))
		b.WriteString("\n")
	}

	var failed, warned, total int
	var elapsed time.Duration
	for _, r := range results {
		status := Status(r, opts.Werror)
		switch status {
		case StatusError:
			failed++
		case StatusWarn:
			warned++
		}
		total += r.Bytes
		elapsed += r.Duration

		name := r.Input
		if r.Err == nil && r.Output != "" {
			name += " -> " + r.Output
		}
		name = truncate(name, nameWidth)
		pad := strings.Repeat(" ", max(nameWidth-runewidth.StringWidth(name), 0))
		statusStyled := style(opts.Color, styleStatus(status)).Render(fmt.Sprintf("%*s", statusWidth, status))
		fmt.Fprintf(&b, "  %s  %s%s %10s %9s\n", statusStyled, name, pad, formatBytes(r.Bytes), formatDuration(r.Duration))
		if r.Err != nil {
			b.WriteString(style(opts.Color, styleStatus(StatusError)).Render("      " + firstLine(r.Err.Error())))
			b.WriteString("\n")
		}
	}

	footer := fmt.Sprintf("%d files, %d failed, %d with warnings, %s in %s",
		len(results), failed, warned, formatBytes(total), formatDuration(elapsed))
	b.WriteString(style(opts.Color, lipgloss.NewStyle().Faint(true)).Render(footer))
	b.WriteString("\n")
	return b.String()
}

// style drops every attribute when colour is off.
func style(enabled bool, s lipgloss.Style) lipgloss.Style {
	if !enabled {
		return lipgloss.NewStyle()
	}
	return s
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/1024)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f ms", float64(d)/float64(time.Millisecond))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
