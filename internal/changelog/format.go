package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps category identifiers to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	CategoryNewFeatures:     {Color: color.New(color.FgGreen), Icon: "✓"},
	CategoryBreakingChanges: {Color: color.New(color.FgRed), Icon: "⚠"},
	CategoryImprovements:    {Color: color.New(color.FgBlue), Icon: "~"},
	CategoryDocumentation:   {Color: color.New(color.FgCyan), Icon: "✎"},
	CategoryBugFixes:        {Color: color.New(color.FgYellow), Icon: "⚡"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes changelog entries to the writer with terminal styling.
// Entries are grouped by release with color-coded category headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)
	groups := groupEntriesByVersion(entries)

	for i, group := range groups {
		if err := formatVersionGroup(group, w, opts, width, i > 0); err != nil {
			return fmt.Errorf("formatting release %s: %w", group.version, err)
		}
	}

	return nil
}

// FormatRelease writes a single release's entries and contributors to the writer.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(r.Version, r.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, category := range ValidCategories() {
		texts := r.Sections.Category(category)
		if len(texts) == 0 {
			continue
		}
		entries := make([]Entry, len(texts))
		for i, text := range texts {
			entries[i] = Entry{Text: text, Category: category}
		}
		if err := writeCategorySection(category, entries, w, opts, width); err != nil {
			return err
		}
	}

	return writeContributors(r.Contributors, w, opts)
}

// versionGroup holds entries for a single release.
type versionGroup struct {
	version string
	entries []Entry
}

// groupEntriesByVersion groups entries by their release, preserving order.
func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	var current *versionGroup

	for _, e := range entries {
		if current == nil || current.version != e.Version {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &versionGroup{version: e.Version}
		}
		current.entries = append(current.entries, e)
	}

	if current != nil {
		groups = append(groups, *current)
	}

	return groups
}

// formatVersionGroup writes a group of entries for a single release.
func formatVersionGroup(group versionGroup, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		fmt.Fprintln(w)
	}

	if err := writeReleaseHeader(group.version, "", w, opts); err != nil {
		return err
	}

	categoryEntries := groupByCategory(group.entries)
	for _, cat := range ValidCategories() {
		if entries, ok := categoryEntries[cat]; ok {
			if err := writeCategorySection(cat, entries, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

// groupByCategory groups entries by their category.
func groupByCategory(entries []Entry) map[string][]Entry {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped
}

// writeReleaseHeader writes the release header line.
func writeReleaseHeader(version, date string, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case version == "development" || strings.HasSuffix(version, "-dev"):
		header = fmt.Sprintf("%s (in development)", version)
	case date != "":
		header = fmt.Sprintf("Release %s (%s)", version, date)
	default:
		header = fmt.Sprintf("Release %s", version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(category string, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[category]

	if err := writeCategoryHeader(category, style, w, opts); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(category string, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	title := CategoryTitle(category)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", title)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title))
	return err
}

// writeEntry writes a single changelog entry with optional wrapping.
func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := entry.Text

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// writeContributors writes the contributor line for a release.
func writeContributors(names []string, w io.Writer, opts FormatOptions) error {
	if len(names) == 0 {
		return nil
	}

	joined := strings.Join(names, ", ")
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### Contributors\n  %s\n", joined)
		return err
	}

	magenta := color.New(color.FgMagenta).SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n  %s\n", magenta("☺"), magenta("Contributors"), joined)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(entry Entry, opts FormatOptions) string {
	style := categoryStyles[entry.Category]
	text := truncateText(entry.Text, 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s", entry.Category, text)
	}

	colored := style.Color.SprintFunc()
	return fmt.Sprintf("%s %s", colored(style.Icon), text)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
