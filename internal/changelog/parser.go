package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// releaseVersionPattern matches a bare semantic version with an optional
// prerelease/build suffix, e.g. "0.11.0" or "0.12.0-dev".
var releaseVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a changelog validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Load reads and validates a CHANGELOG.yaml file from the given path.
// Returns the parsed Changelog struct or an error with context.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates a CHANGELOG.yaml from an io.Reader.
// This is useful for testing and for loading from embedded content.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	var changelog Changelog

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&changelog); err != nil {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&changelog); err != nil {
		return nil, err
	}

	return &changelog, nil
}

// Save writes the changelog back to the given path as YAML.
// The output is deterministic for a given input.
func Save(c *Changelog, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling changelog YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}

// Validate checks that a Changelog satisfies the schema constraints and
// the structural invariants of the release-notes document.
// Returns nil if valid, or a ValidationError with details if invalid.
func Validate(c *Changelog) error {
	if c.Project == "" {
		return &ValidationError{Field: "project", Message: "required field is empty"}
	}

	developmentCount := 0
	seenVersions := make(map[string]bool)

	for i, r := range c.Releases {
		if err := validateRelease(&r, i); err != nil {
			return err
		}

		normalized := NormalizeVersion(r.Version)
		if seenVersions[normalized] {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].version", i),
				Message: fmt.Sprintf("duplicate version %q", r.Version),
			}
		}
		seenVersions[normalized] = true

		if r.IsDevelopment() {
			developmentCount++
		}
	}

	if developmentCount > 1 {
		return &ValidationError{
			Field:   "releases",
			Message: "only one development entry is allowed",
		}
	}

	return ValidateStructure(c)
}

// validateRelease checks constraints for a single release entry.
func validateRelease(r *Release, index int) error {
	if r.Version == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].version", index),
			Message: "required field is empty",
		}
	}

	if r.Version != "development" && !releaseVersionPattern.MatchString(r.Version) {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].version", index),
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z with optional suffix)", r.Version),
		}
	}

	if !r.IsDevelopment() {
		if r.Date == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].date", index),
				Message: "date is required for released entries",
			}
		}
		if r.Sections.IsEmpty() {
			return &ValidationError{
				Field:   fmt.Sprintf("releases[%d].sections", index),
				Message: "at least one change entry is required",
			}
		}
	}

	if r.Date != "" && !datePattern.MatchString(r.Date) {
		return &ValidationError{
			Field:   fmt.Sprintf("releases[%d].date", index),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", r.Date),
		}
	}

	return validateEntries(&r.Sections, index)
}

// validateEntries checks that all change entries are non-empty strings.
func validateEntries(s *Sections, releaseIndex int) error {
	for _, category := range ValidCategories() {
		for i, entry := range s.Category(category) {
			if strings.TrimSpace(entry) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("releases[%d].sections.%s[%d]", releaseIndex, category, i),
					Message: "change entry cannot be empty",
				}
			}
		}
	}

	return nil
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.11.0" and "0.11.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(version), "v")
}

// hasDevSuffix reports whether the version carries a "-dev" prerelease
// suffix (e.g. "0.12.0-dev").
func hasDevSuffix(version string) bool {
	return strings.HasSuffix(NormalizeVersion(version), "-dev")
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
