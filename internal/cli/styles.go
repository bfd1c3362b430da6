package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent sprout-themed terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

// banner returns the startup banner line.
func banner(version string) string {
	return cliPrimary.Bold(true).Render("🌱 sprout") + " " + cliMuted.Render(version)
}

// kvPair is one key-value line in a summary card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines formats aligned key-value lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s", cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)), p.value)
	}
	return b.String()
}

// renderSuccessCard renders a bordered success panel with a checkmark
// title and optional detail lines.
func renderSuccessCard(title string, details ...string) string {
	var b strings.Builder
	b.WriteString(cliSuccess.Render("✓ ") + lipgloss.NewStyle().Bold(true).Render(title))
	for _, d := range details {
		if d != "" {
			b.WriteString("\n" + d)
		}
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
	return card.Render(b.String())
}

// renderMarkdown renders markdown for the terminal via glamour, falling
// back to the raw text when rendering fails.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
