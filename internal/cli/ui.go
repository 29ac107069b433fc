package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mhollis/burrow/pkg/gopher"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for locators.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh  = lipgloss.NewStyle().Foreground(colorGray)

	styleItemDir    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleItemText   = lipgloss.NewStyle().Foreground(colorWhite)
	styleItemSearch = lipgloss.NewStyle().Foreground(colorYellow)
	styleItemBinary = lipgloss.NewStyle().Foreground(colorGray)
	styleItemError  = lipgloss.NewStyle().Foreground(colorRed)
	styleItemInfo   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Listing Output
// =============================================================================

// itemStyle picks the display style for a directory item.
func itemStyle(t gopher.ItemType) lipgloss.Style {
	switch {
	case t == gopher.TypeDirectory:
		return styleItemDir
	case t == gopher.TypeSearch:
		return styleItemSearch
	case t == gopher.TypeError:
		return styleItemError
	case t == gopher.TypeInfo:
		return styleItemInfo
	case t.IsText():
		return styleItemText
	default:
		return styleItemBinary
	}
}

// printItem prints a single directory item with its type label and
// target locator.
func printItem(item gopher.Item, secure bool) {
	if item.Type == gopher.TypeInfo {
		fmt.Println("   " + styleItemInfo.Render(item.Display))
		return
	}

	label := StyleDim.Render(fmt.Sprintf("%-12s", item.Type.Label()))
	line := "   " + label + " " + itemStyle(item.Type).Render(item.Display)
	if item.Selector != "" || item.Host != "" {
		line += " " + StyleDim.Render(iconArrow) + " " + StyleLink.Render(item.URL(secure).String())
	}
	fmt.Println(line)
}

// printMenu prints a directory listing.
func printMenu(items []gopher.Item, secure bool) {
	for _, item := range items {
		printItem(item, secure)
	}
}

// printStats prints retrieval statistics on a single line.
func printStats(itemCount int, cached bool) {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d items", itemCount))

	status := iconFresh
	statusStyle := styleFresh
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}
