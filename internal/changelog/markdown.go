package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// The release-notes markdown dialect is line oriented:
//
//	# Release 0.11.0
//
//	### New features since last release
//
//	* Entry text, possibly wrapped
//	  onto continuation lines. [(#23)](https://...)
//
//	### Contributors
//
//	This release contains contributions from (in alphabetical order):
//
//	Jane Doe, John Smith
//
//	---
//
// Releases are separated by horizontal rules and listed newest first.

var (
	releaseHeadingPattern = regexp.MustCompile(`^#\s+Release\s+(\S+)\s*$`)
	sectionHeadingPattern = regexp.MustCompile(`^###\s+(.+?)\s*$`)
	bulletPattern         = regexp.MustCompile(`^[*-]\s+(.*)$`)
)

// contributorsTitle is the section title that ends the change categories.
const contributorsTitle = "Contributors"

// ParseMarkdownFile parses a release-notes markdown document from disk.
func ParseMarkdownFile(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening markdown changelog: %w", err)
	}
	defer f.Close()

	return ParseMarkdown(f)
}

// ParseMarkdown parses a release-notes markdown document into the
// changelog model. The parse is structural only: section titles must be
// recognized and bullets must belong to a section, but cross-release
// invariants (ordering, contributor sorting, link URLs) are left to
// ValidateStructure so callers can report them with field context.
func ParseMarkdown(r io.Reader) (*Changelog, error) {
	p := &markdownParser{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.consume(scanner.Text(), lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading markdown changelog: %w", err)
	}

	p.flushEntry()
	p.flushRelease()

	if len(p.releases) == 0 {
		return nil, &ValidationError{Message: "no release headings found"}
	}

	return &Changelog{Releases: p.releases}, nil
}

// markdownParser accumulates parse state line by line.
type markdownParser struct {
	releases []Release

	current        *Release
	section        string // current category, or contributorsTitle
	openEntry      string // bullet text being accumulated
	inContributors bool
}

func (p *markdownParser) consume(line string, lineNo int) error {
	trimmed := strings.TrimSpace(line)

	switch {
	case releaseHeadingPattern.MatchString(trimmed):
		p.flushEntry()
		p.flushRelease()
		version := releaseHeadingPattern.FindStringSubmatch(trimmed)[1]
		p.current = &Release{Version: version}
		p.section = ""
		p.inContributors = false
		return nil

	case trimmed == "---":
		p.flushEntry()
		p.flushRelease()
		return nil

	case sectionHeadingPattern.MatchString(trimmed):
		return p.startSection(sectionHeadingPattern.FindStringSubmatch(trimmed)[1], lineNo)

	case trimmed == "":
		p.flushEntry()
		return nil
	}

	return p.consumeText(line, trimmed, lineNo)
}

// startSection switches the parser to a new subsection of the current release.
func (p *markdownParser) startSection(title string, lineNo int) error {
	if p.current == nil {
		return &ValidationError{
			Message: fmt.Sprintf("line %d: section %q appears before any release heading", lineNo, title),
		}
	}

	p.flushEntry()

	if title == contributorsTitle {
		p.inContributors = true
		p.section = ""
		return nil
	}

	category := CategoryFromTitle(title)
	if category == "" {
		return &ValidationError{
			Message: fmt.Sprintf("line %d: unknown section heading %q", lineNo, title),
		}
	}

	p.inContributors = false
	p.section = category
	return nil
}

// consumeText handles bullet lines, bullet continuations, and contributor
// name lines.
func (p *markdownParser) consumeText(line, trimmed string, lineNo int) error {
	if p.current == nil {
		return &ValidationError{
			Message: fmt.Sprintf("line %d: content appears before any release heading", lineNo),
		}
	}

	if p.inContributors {
		// Skip the fixed preamble line; everything else is names.
		if strings.Contains(trimmed, "contributions from") {
			return nil
		}
		for _, name := range strings.Split(trimmed, ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.current.Contributors = append(p.current.Contributors, name)
			}
		}
		return nil
	}

	if m := bulletPattern.FindStringSubmatch(trimmed); m != nil {
		if p.section == "" {
			return &ValidationError{
				Message: fmt.Sprintf("line %d: bullet appears outside any section", lineNo),
			}
		}
		p.flushEntry()
		p.openEntry = m[1]
		return nil
	}

	// Indented continuation of the open bullet.
	if p.openEntry != "" && strings.HasPrefix(line, " ") {
		p.openEntry += " " + trimmed
		return nil
	}

	return &ValidationError{
		Message: fmt.Sprintf("line %d: unexpected content %q", lineNo, trimmed),
	}
}

// flushEntry commits the accumulated bullet text to the current section.
func (p *markdownParser) flushEntry() {
	if p.openEntry == "" || p.current == nil || p.section == "" {
		p.openEntry = ""
		return
	}
	p.current.Sections.Append(p.section, p.openEntry)
	p.openEntry = ""
}

// flushRelease commits the current release to the result list.
func (p *markdownParser) flushRelease() {
	if p.current == nil {
		return
	}
	p.releases = append(p.releases, *p.current)
	p.current = nil
	p.section = ""
	p.inContributors = false
}
