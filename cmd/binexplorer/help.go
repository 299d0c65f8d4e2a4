package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"github.com/joshuapare/binkit/internal/logger"
)

var helpSections = []string{"Navigation", "View", "Editing", "General"}

// helpMarkdown lists every binding of km as markdown tables.
func helpMarkdown(km KeyMap) string {
	var sb strings.Builder
	sb.WriteString("# Keyboard Shortcuts\n\n")
	for i, group := range km.FullHelp() {
		sb.WriteString("## ")
		sb.WriteString(helpSections[i])
		sb.WriteString("\n\n| Key | Action |\n|---|---|\n")
		for _, b := range group {
			writeBindingRow(&sb, b)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Differing bytes are shown in red; rows just edited or copied are highlighted in green.\n")
	sb.WriteString("Offsets past the end of the shorter file compare as `FF`.\n")
	return sb.String()
}

func writeBindingRow(sb *strings.Builder, b key.Binding) {
	h := b.Help()
	sb.WriteString("| `")
	sb.WriteString(h.Key)
	sb.WriteString("` | ")
	sb.WriteString(h.Desc)
	sb.WriteString(" |\n")
}

// renderHelp renders the help text for a terminal of the given width.
// Falls back to the raw markdown if glamour cannot render.
func renderHelp(km KeyMap, width int) string {
	md := helpMarkdown(km)
	wrap := min(max(width-12, 40), 80)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logger.Warn("help renderer", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Warn("help render", "error", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}
