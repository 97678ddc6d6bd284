package changelog

import (
	"fmt"
	"strings"
)

// ReleaseNotFoundError is returned when a requested version doesn't exist.
type ReleaseNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("release %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetRelease retrieves a specific release from the changelog.
// Accepts both "v0.11.0" and "0.11.0" formats (normalizes the input).
// Returns ReleaseNotFoundError if the release doesn't exist.
func (c *Changelog) GetRelease(version string) (*Release, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Releases {
		if NormalizeVersion(c.Releases[i].Version) == normalized {
			return &c.Releases[i], nil
		}
	}

	return nil, &ReleaseNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// GetDevelopment retrieves the in-development entry from the changelog.
// Returns nil if there are no development changes.
func (c *Changelog) GetDevelopment() *Release {
	for i := range c.Releases {
		if c.Releases[i].IsDevelopment() {
			return &c.Releases[i]
		}
	}
	return nil
}

// HasDevelopment returns true if the changelog has a development entry.
func (c *Changelog) HasDevelopment() bool {
	return c.GetDevelopment() != nil
}

// LatestRelease returns the most recent released entry (not development).
// Returns nil if there are no released entries.
func (c *Changelog) LatestRelease() *Release {
	for i := range c.Releases {
		if !c.Releases[i].IsDevelopment() {
			return &c.Releases[i]
		}
	}
	return nil
}

// ListVersions returns a list of all version identifiers in the changelog.
// Versions are returned in the order they appear (newest first).
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Releases))
	for i, r := range c.Releases {
		versions[i] = r.Version
	}
	return versions
}

// GetLastN retrieves the N most recent entries across all releases.
// Entries are returned in document order (newest release first).
// If N is greater than the total number of entries, all entries are returned.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// AllEntries returns all entries from all releases, newest first.
// Entries within each release follow the standard category order.
func (c *Changelog) AllEntries() []Entry {
	var entries []Entry
	for _, r := range c.Releases {
		entries = append(entries, r.Entries()...)
	}
	return entries
}

// ReleaseCount returns the number of releases in the changelog.
func (c *Changelog) ReleaseCount() int {
	return len(c.Releases)
}

// EntryCount returns the total number of entries across all releases.
func (c *Changelog) EntryCount() int {
	count := 0
	for _, r := range c.Releases {
		count += r.Sections.Count()
	}
	return count
}
