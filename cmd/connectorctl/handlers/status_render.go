package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderStatus produces a lipgloss-styled connector status string.
func renderStatus(status *ConnectorStatus) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  connector: %s", status.ConnectorID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Endpoint"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("    URL:    %s\n", status.URL))
	if status.Region != "" {
		b.WriteString(fmt.Sprintf("    Region: %s\n", status.Region))
	}
	for _, ip := range status.EgressIPs {
		b.WriteString(fmt.Sprintf("    Egress: %s\n", ip))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Trust"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	if len(status.TrustedHostKeys) == 0 {
		b.WriteString("    ")
		b.WriteString(redStyle.Render("no trusted host keys"))
		b.WriteString(dimStyle.Render("  (run 'connectorctl bootstrap')"))
		b.WriteString("\n")
	} else {
		for _, key := range status.TrustedHostKeys {
			b.WriteString("    ")
			b.WriteString(greenStyle.Render(truncateKey(key)))
			b.WriteString("\n")
		}
	}
	if status.SecretID != "" {
		b.WriteString(fmt.Sprintf("    Secret: %s", status.SecretID))
		if status.SecretExists != nil {
			if *status.SecretExists {
				b.WriteString(greenStyle.Render("  ok"))
			} else {
				b.WriteString(redStyle.Render("  missing"))
			}
		}
		b.WriteString("\n")
	}

	if status.Transfers != nil {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Transfers"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    Pending:     %d\n", status.Transfers.Pending))
		b.WriteString(fmt.Sprintf("    In progress: %d\n", status.Transfers.InProgress))
		b.WriteString(fmt.Sprintf("    Completed:   %d\n", status.Transfers.Completed))
	}

	return b.String()
}

// renderProbe produces a lipgloss-styled probe result string.
func renderProbe(connectorID string, res *transfer.ProbeResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  probe: %s", connectorID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	if res.OK() {
		b.WriteString("    ")
		b.WriteString(greenStyle.Render("connection OK"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("    ")
	b.WriteString(redStyle.Render(fmt.Sprintf("connection %s", res.Status)))
	b.WriteString("\n")
	if res.Message != "" {
		b.WriteString(fmt.Sprintf("    Message:  %s\n", res.Message))
	}
	if res.HostKey != "" {
		b.WriteString(fmt.Sprintf("    Host key: %s\n", truncateKey(res.HostKey)))
		b.WriteString(dimStyle.Render("    The server surfaced its host key; 'connectorctl bootstrap' can apply it."))
		b.WriteString("\n")
	}

	return b.String()
}

// truncateKey shortens long host keys for display.
func truncateKey(key string) string {
	const max = 60
	if len(key) <= max {
		return key
	}
	return key[:max] + "..."
}
