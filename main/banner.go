package main

import (
	"fmt"
	"io"
	"strings"

	"finality-benchmark/core/configs"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 60

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// printBanner shows the parameters of the run about to start.
func printBanner(dest io.Writer, config *configs.BenchConfig) {
	line := strings.Repeat("=", bannerWidth)

	row := func(label, value string) {
		fmt.Fprintf(dest, "%s %s\n", labelStyle.Render(label+":"),
			valueStyle.Render(value))
	}

	fmt.Fprintf(dest, "\n%s\n", line)
	fmt.Fprintln(dest, titleStyle.Render(fmt.Sprintf(
		"%s Finality Benchmark", strings.ToUpper(config.Name))))
	fmt.Fprintln(dest, line)
	row("RPC URL", config.Endpoint)
	row("To Address", config.Recipient)
	row("Amount per tx", config.Amount)
	row("Transactions", fmt.Sprintf("%d", config.Transactions))
	row("Finality", config.Finality.String())
	if config.Path != "" {
		row("Config", config.Path)
	}
	fmt.Fprintf(dest, "%s\n\n", line)
}
