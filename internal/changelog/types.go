package changelog

// Changelog represents the root structure of a CHANGELOG.yaml file.
// It contains the project identifier, the repository URL used for
// reference links, and an ordered list of releases, newest first.
type Changelog struct {
	Project  string    `yaml:"project"`
	RepoURL  string    `yaml:"repo_url,omitempty"`
	Releases []Release `yaml:"releases"`
}

// Release represents a single release entry.
// The Version field should be a bare semantic version (e.g., "0.11.0"),
// optionally carrying a suffix for in-development entries ("0.12.0-dev").
// The special identifier "development" is also accepted. The CLI
// normalizes "v" prefixes on input. The Date field is required for
// released entries (format: YYYY-MM-DD) and empty for development ones.
type Release struct {
	Version      string   `yaml:"version"`
	Date         string   `yaml:"date,omitempty"`
	Sections     Sections `yaml:"sections"`
	Contributors []string `yaml:"contributors,omitempty"`
}

// Sections groups change entries by release-notes category.
// All fields are optional; empty categories are omitted when rendering.
// Entries are free text and may embed markdown reference links
// pointing at issues or pull requests, e.g. "[(#23)](https://...)".
type Sections struct {
	NewFeatures     []string `yaml:"new_features,omitempty"`
	BreakingChanges []string `yaml:"breaking_changes,omitempty"`
	Improvements    []string `yaml:"improvements,omitempty"`
	Documentation   []string `yaml:"documentation,omitempty"`
	BugFixes        []string `yaml:"bug_fixes,omitempty"`
}

// Entry represents a flattened view of a single changelog entry.
// This is used for querying and displaying individual entries,
// where the release and category context is needed alongside the text.
type Entry struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	Version  string `yaml:"version"`
}

// IsEmpty returns true if the Sections struct has no entries in any category.
func (s Sections) IsEmpty() bool {
	return len(s.NewFeatures) == 0 &&
		len(s.BreakingChanges) == 0 &&
		len(s.Improvements) == 0 &&
		len(s.Documentation) == 0 &&
		len(s.BugFixes) == 0
}

// Count returns the total number of entries across all categories.
func (s Sections) Count() int {
	return len(s.NewFeatures) +
		len(s.BreakingChanges) +
		len(s.Improvements) +
		len(s.Documentation) +
		len(s.BugFixes)
}

// Category returns the entry list for the named category.
// Returns nil for unknown category names.
func (s Sections) Category(name string) []string {
	switch name {
	case CategoryNewFeatures:
		return s.NewFeatures
	case CategoryBreakingChanges:
		return s.BreakingChanges
	case CategoryImprovements:
		return s.Improvements
	case CategoryDocumentation:
		return s.Documentation
	case CategoryBugFixes:
		return s.BugFixes
	}
	return nil
}

// Append adds an entry to the named category.
// Returns false for unknown category names.
func (s *Sections) Append(category, text string) bool {
	switch category {
	case CategoryNewFeatures:
		s.NewFeatures = append(s.NewFeatures, text)
	case CategoryBreakingChanges:
		s.BreakingChanges = append(s.BreakingChanges, text)
	case CategoryImprovements:
		s.Improvements = append(s.Improvements, text)
	case CategoryDocumentation:
		s.Documentation = append(s.Documentation, text)
	case CategoryBugFixes:
		s.BugFixes = append(s.BugFixes, text)
	default:
		return false
	}
	return true
}

// IsDevelopment returns true if this release represents in-development
// changes: either the literal "development" identifier or a semver
// carrying a "-dev" suffix (e.g. "0.12.0-dev").
func (r Release) IsDevelopment() bool {
	return r.Version == "development" || hasDevSuffix(r.Version)
}

// Entries returns a flattened list of all entries in this release.
// Each entry includes the text, category, and version identifier.
func (r Release) Entries() []Entry {
	entries := make([]Entry, 0, r.Sections.Count())

	for _, cat := range ValidCategories() {
		for _, text := range r.Sections.Category(cat) {
			entries = append(entries, Entry{Text: text, Category: cat, Version: r.Version})
		}
	}

	return entries
}

// Category identifiers in their standard rendering order.
const (
	CategoryNewFeatures     = "new_features"
	CategoryBreakingChanges = "breaking_changes"
	CategoryImprovements    = "improvements"
	CategoryDocumentation   = "documentation"
	CategoryBugFixes        = "bug_fixes"
)

// ValidCategories returns the list of valid release-notes categories
// in their standard rendering order.
func ValidCategories() []string {
	return []string{
		CategoryNewFeatures,
		CategoryBreakingChanges,
		CategoryImprovements,
		CategoryDocumentation,
		CategoryBugFixes,
	}
}

// categoryTitles maps category identifiers to their markdown section titles.
var categoryTitles = map[string]string{
	CategoryNewFeatures:     "New features since last release",
	CategoryBreakingChanges: "Breaking changes",
	CategoryImprovements:    "Improvements",
	CategoryDocumentation:   "Documentation",
	CategoryBugFixes:        "Bug fixes",
}

// CategoryTitle returns the markdown section title for a category
// identifier. Returns the identifier unchanged if it is unknown.
func CategoryTitle(category string) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	return category
}

// CategoryFromTitle returns the category identifier for a markdown
// section title. Returns empty string if the title is not recognized.
func CategoryFromTitle(title string) string {
	for cat, t := range categoryTitles {
		if t == title {
			return cat
		}
	}
	return ""
}
