package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Role colors — blue for prompts, emerald for responses, slate for meta.
	colorPrompt   = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorResponse = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorWarn     = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}

	// Diff stat colors.
	colorAdded   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorRemoved = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	colorChanged = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
)

var (
	stylePromptBadge   = lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)
	styleResponseBadge = lipgloss.NewStyle().Foreground(colorResponse).Bold(true)

	styleTitle  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta   = lipgloss.NewStyle().Foreground(colorDim)
	styleNotice = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)

	styleAdded   = lipgloss.NewStyle().Foreground(colorAdded)
	styleRemoved = lipgloss.NewStyle().Foreground(colorRemoved)
	styleChanged = lipgloss.NewStyle().Foreground(colorChanged)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
