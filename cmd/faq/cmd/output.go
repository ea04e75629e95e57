package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/faq/internal/adapters/socket"
	"github.com/corey/faq/internal/domain/chat"
	"github.com/corey/faq/internal/domain/matcher"
	"github.com/corey/faq/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// useColor is resolved once per invocation in the root command.
var useColor = true

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// formatAnswer formats an answer for terminal display.
//
//	Yes. Our command & control operations support 24/7 monitoring ...
//	  Matched FAQ: Do you offer 24/7 monitoring?  score 15 │ 41µs
func formatAnswer(r *socket.AskResult) string {
	var sb strings.Builder
	sb.WriteString(r.Text)
	sb.WriteString("\n")

	caption := paint(colorGray, r.Caption)
	if r.Matched() {
		caption = paint(colorCyan, r.Caption) + "  " + paint(colorGray, fmt.Sprintf("score %d │ %s", r.Score, r.Elapsed))
	}
	sb.WriteString("  " + caption + "\n")
	return sb.String()
}

// formatExplain lists every entry's score for text, best first, marking the
// threshold line.
func formatExplain(m *matcher.Matcher, text string) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ scores for %q (threshold %d)", text, matcher.Threshold)) + "\n")
	for _, r := range m.Ranked(text) {
		e, _ := m.KB().Get(r.EntryID)
		line := fmt.Sprintf("  %3d  %-20s %s", r.Score, r.EntryID, e.Question)
		switch {
		case r.Score >= matcher.Threshold:
			line = paint(colorGreen, line)
		case r.Score == 0:
			line = paint(colorGray, line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// formatMessage renders one transcript line for the chat REPL.
func formatMessage(msg chat.Message) string {
	if msg.Role == chat.RoleUser {
		return paint(colorBold, msg.Meta+": ") + msg.Text + "\n"
	}
	return fmt.Sprintf("%s %s\n  %s\n\n", paint(colorMagenta, "›"), msg.Text, paint(colorGray, msg.Meta))
}

// formatSuggestions renders the example prompts as a numbered list.
func formatSuggestions(prompts []string) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "Try asking:") + "\n")
	for i, p := range prompts {
		sb.WriteString(fmt.Sprintf("  %s %s\n", paint(colorYellow, fmt.Sprintf("%d.", i+1)), p))
	}
	return sb.String()
}

// formatEntries formats the active knowledge base.
func formatEntries(result *socket.EntriesResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s │ %s\n", paint(colorBold, fmt.Sprintf("⚡ %d entries", result.Count)), result.Source))
	for _, e := range result.Entries {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", paint(colorCyan, e.ID), e.Question))
		if len(e.Keywords) > 0 {
			sb.WriteString("    " + paint(colorGreen, "#"+strings.Join(e.Keywords, " #")) + "\n")
		}
	}
	return sb.String()
}

// formatSnapshots formats the stored knowledge base snapshots.
func formatSnapshots(snaps []ports.SnapshotInfo) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⚡ %d snapshots", len(snaps))) + "\n")
	for _, s := range snaps {
		sb.WriteString(fmt.Sprintf("  %s  %d entries  %s  %s\n",
			paint(colorCyan, s.Name), s.Entries,
			s.SavedAt.Local().Format("2006-01-02 15:04:05"),
			paint(colorGray, s.Source)))
	}
	return sb.String()
}

// formatHealth formats a HealthResult for terminal display.
func formatHealth(h *socket.HealthResult) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⚡ faq daemon") + "\n")
	sb.WriteString(fmt.Sprintf("  Status:    %s\n", paint(colorGreen, h.Status)))
	sb.WriteString(fmt.Sprintf("  Source:    %s\n", h.Source))
	sb.WriteString(fmt.Sprintf("  Entries:   %d\n", h.Entries))
	sb.WriteString(fmt.Sprintf("  Keywords:  %d\n", h.Keywords))
	sb.WriteString(fmt.Sprintf("  Reloads:   %d\n", h.Reloads))
	sb.WriteString(fmt.Sprintf("  Uptime:    %s\n", h.Uptime))
	return sb.String()
}
