// Package changelog provides YAML-first release-notes management for relnote.
//
// This package implements:
//   - CHANGELOG.yaml parsing and validation
//   - Parsing of existing release-notes markdown documents
//   - Markdown generation in the "Release X.Y.Z" release-notes format
//   - Structural validation (version ordering, contributor lists, links)
//   - Release and entry querying for CLI display
//   - Embedded changelog support via go:embed
//
// The CHANGELOG.yaml file serves as the single source of truth for all
// changelog content. CHANGELOG.md is generated from this file using the
// render functionality.
package changelog
