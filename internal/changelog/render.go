package changelog

import (
	"fmt"
	"io"
	"strings"
)

// contributorsPreamble is the fixed line introducing the contributor list.
const contributorsPreamble = "This release contains contributions from (in alphabetical order):"

// RenderMarkdown generates a release-notes markdown document from the
// given Changelog struct. Releases are emitted newest first, each under
// a "# Release <version>" heading with its non-empty sections, followed
// by the contributor list, with horizontal rules between releases.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	for i, r := range c.Releases {
		if i > 0 {
			if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
				return err
			}
		}
		if err := renderRelease(&r, w); err != nil {
			return fmt.Errorf("rendering release %s: %w", r.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderRelease writes a single release block.
func renderRelease(r *Release, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Release %s\n", r.Version); err != nil {
		return err
	}

	if err := RenderSections(&r.Sections, w); err != nil {
		return err
	}

	return renderContributors(r, w)
}

// RenderSections writes all non-empty change categories in standard
// order. Exported for release-note extraction, where a single release's
// sections are rendered without the heading and contributor list.
func RenderSections(s *Sections, w io.Writer) error {
	for _, category := range ValidCategories() {
		entries := s.Category(category)
		if len(entries) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(w, "\n### %s\n\n", CategoryTitle(category)); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, "* %s\n", entry); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderContributors writes the contributor section. Development entries
// without contributors omit the section entirely.
func renderContributors(r *Release, w io.Writer) error {
	if len(r.Contributors) == 0 {
		return nil
	}

	_, err := fmt.Fprintf(w, "\n### %s\n\n%s\n\n%s\n",
		contributorsTitle, contributorsPreamble, strings.Join(r.Contributors, ", "))
	return err
}

// ExtractReleaseNotes renders a single release's sections as markdown
// suitable for a GitHub release body.
func ExtractReleaseNotes(r *Release) (string, error) {
	var b strings.Builder
	if err := RenderSections(&r.Sections, &b); err != nil {
		return "", err
	}
	return strings.TrimPrefix(b.String(), "\n"), nil
}
