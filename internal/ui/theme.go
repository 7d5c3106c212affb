package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ritualloop theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconRitual  = "🕯️"
	IconGlobe   = "🌍"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconFlame   = "🔥"
	IconTrophy  = "🏆"
	IconChart   = "📈"
	IconQuiet   = "🤫"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconPlus    = "➕"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeMilestone = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("MILESTONE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CompletedText renders the completed-today marker next to a due ritual.
func CompletedText(done bool) string {
	if done {
		return Good.Render(IconDone + " done today")
	}
	return Warn.Render("due")
}

// ScopeIcon picks the icon for a ritual's scope string.
func ScopeIcon(scope string) string {
	switch scope {
	case "global":
		return IconGlobe
	case "custom":
		return IconRitual
	default:
		return IconSparkle
	}
}

// TrendText renders an engagement trend with its arrow.
func TrendText(trend string) string {
	switch trend {
	case "increasing":
		return Good.Render("↑ increasing")
	case "decreasing":
		return Bad.Render("↓ decreasing")
	default:
		return Muted.Render("→ stable")
	}
}
