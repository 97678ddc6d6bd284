package changelog

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// markdownLinkPattern matches inline markdown links embedded in entry
// text, capturing the link target.
var markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

// ValidateStructure checks the structural invariants of the release-notes
// document that hold across releases:
//
//   - versions are strictly decreasing from top to bottom (semver precedence)
//   - a development entry may only appear first
//   - contributor lists are alphabetically sorted within each release
//   - released entries name at least one contributor
//   - every reference link embedded in entry text is a well-formed
//     absolute http(s) URL
//
// These invariants apply to both the YAML source and parsed markdown
// documents; date requirements are schema-level and checked by Validate.
func ValidateStructure(c *Changelog) error {
	if err := validateOrdering(c.Releases); err != nil {
		return err
	}

	for i, r := range c.Releases {
		if err := validateContributors(&r, i); err != nil {
			return err
		}
		if err := validateLinks(&r, i); err != nil {
			return err
		}
	}

	return nil
}

// validateOrdering checks that release versions strictly decrease from
// top to bottom. The "development" identifier is only valid at the top
// and orders above everything else.
func validateOrdering(releases []Release) error {
	prev := ""
	for i, r := range releases {
		if r.IsDevelopment() && i != 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].version", i),
				Message: "development entry must be the first release",
			}
		}
		if r.Version == "development" {
			continue
		}

		current := "v" + NormalizeVersion(r.Version)
		if !semver.IsValid(current) {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].version", i),
				Message: fmt.Sprintf("not a valid semantic version: %q", r.Version),
			}
		}

		if prev != "" && semver.Compare(prev, current) <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].version", i),
				Message: fmt.Sprintf("version %q does not decrease (previous: %q)", r.Version, strings.TrimPrefix(prev, "v")),
			}
		}
		prev = current
	}

	return nil
}

// validateContributors checks per-release contributor list constraints.
func validateContributors(r *Release, index int) error {
	if !r.IsDevelopment() && len(r.Contributors) == 0 {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].contributors", index),
			Message: "released entries must name at least one contributor",
		}
	}

	for i, name := range r.Contributors {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].contributors[%d]", index, i),
				Message: "contributor name cannot be empty",
			}
		}
	}

	if !contributorsSorted(r.Contributors) {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].contributors", index),
			Message: "contributors must be listed in alphabetical order",
		}
	}

	return nil
}

// contributorsSorted reports whether names are in case-insensitive
// alphabetical order.
func contributorsSorted(names []string) bool {
	return sort.SliceIsSorted(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}

// SortContributors sorts names in place, case-insensitively.
func SortContributors(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}

// validateLinks checks that every markdown link embedded in entry text
// points at a well-formed absolute http(s) URL.
func validateLinks(r *Release, index int) error {
	for _, category := range ValidCategories() {
		for i, entry := range r.Sections.Category(category) {
			for _, link := range ExtractLinks(entry) {
				if err := validateURL(link); err != nil {
					return &ValidationError{
						Field:   fmt.Sprintf("releases[%d].sections.%s[%d]", index, category, i),
						Message: fmt.Sprintf("malformed reference link %q: %v", link, err),
					}
				}
			}
		}
	}

	return nil
}

// ExtractLinks returns the targets of all markdown links in the text.
func ExtractLinks(text string) []string {
	matches := markdownLinkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, m[1])
	}
	return links
}

// validateURL checks that the target is an absolute http(s) URL.
func validateURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
