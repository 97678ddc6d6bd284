package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReleaseNotes = `# Release 0.11.0

### New features since last release

* Native gates now support parameter-shift differentiation.
  [(#42)](https://github.com/example/myplugin/pull/42)

### Breaking changes

* Renamed the device shortname from ` + "`plugin.sim`" + ` to ` + "`plugin.simulator`" + `.

### Contributors

This release contains contributions from (in alphabetical order):

Ada Lovelace, Grace Hopper

---

# Release 0.9.1

### New features since last release

* Added support for the ` + "`R`" + ` and ` + "`MS`" + ` gates. [(#23)](https://github.com/example/myplugin/pull/23)

### Improvements

* Lowered the retry timer so the plugin won't hammer the server for results.

### Contributors

This release contains contributions from (in alphabetical order):

Nathan Killoran
`

func TestParseMarkdown_SampleDocument(t *testing.T) {
	log, err := ParseMarkdown(strings.NewReader(sampleReleaseNotes))
	require.NoError(t, err)
	require.Len(t, log.Releases, 2)

	latest := log.Releases[0]
	assert.Equal(t, "0.11.0", latest.Version)
	require.Len(t, latest.Sections.NewFeatures, 1)
	assert.Contains(t, latest.Sections.NewFeatures[0], "parameter-shift")
	// Wrapped bullet lines are joined with a single space.
	assert.Contains(t, latest.Sections.NewFeatures[0], "differentiation. [(#42)]")
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, latest.Contributors)

	patch := log.Releases[1]
	assert.Equal(t, "0.9.1", patch.Version)
	require.Len(t, patch.Sections.NewFeatures, 1)
	assert.Contains(t, patch.Sections.NewFeatures[0], "`R`")
	assert.Contains(t, patch.Sections.NewFeatures[0], "`MS`")
	require.Len(t, patch.Sections.Improvements, 1)
	assert.Contains(t, patch.Sections.Improvements[0], "retry timer")
	assert.Equal(t, []string{"Nathan Killoran"}, patch.Contributors)
}

func TestParseMarkdown_StructureValidates(t *testing.T) {
	log, err := ParseMarkdown(strings.NewReader(sampleReleaseNotes))
	require.NoError(t, err)
	assert.NoError(t, ValidateStructure(log))
}

func TestParseMarkdown_Errors(t *testing.T) {
	tests := map[string]struct {
		doc         string
		errContains string
	}{
		"empty document": {
			doc:         "",
			errContains: "no release headings found",
		},
		"bullet before any release": {
			doc:         "* stray bullet\n",
			errContains: "before any release heading",
		},
		"section before any release": {
			doc:         "### Improvements\n",
			errContains: "before any release heading",
		},
		"unknown section heading": {
			doc: `# Release 0.1.0

### Shiny New Stuff

* something
`,
			errContains: `unknown section heading "Shiny New Stuff"`,
		},
		"bullet outside any section": {
			doc: `# Release 0.1.0

* stray bullet
`,
			errContains: "bullet appears outside any section",
		},
		"prose outside any structure": {
			doc: `# Release 0.1.0

### Improvements

some prose that is not a bullet
`,
			errContains: "unexpected content",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMarkdown(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestParseMarkdown_DevelopmentEntry(t *testing.T) {
	doc := `# Release 0.12.0-dev

### Improvements

* Work in progress.

---

# Release 0.11.0

### Bug fixes

* Fixed a thing.

### Contributors

This release contains contributions from (in alphabetical order):

Jane Doe
`

	log, err := ParseMarkdown(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, log.Releases, 2)

	dev := log.Releases[0]
	assert.True(t, dev.IsDevelopment())
	assert.Empty(t, dev.Contributors)
	assert.Equal(t, []string{"Work in progress."}, dev.Sections.Improvements)
}

func TestParseMarkdown_DashBullets(t *testing.T) {
	doc := `# Release 0.1.0

### Bug fixes

- Fixed polling.
- Fixed sampling.

### Contributors

This release contains contributions from (in alphabetical order):

Jane Doe
`

	log, err := ParseMarkdown(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fixed polling.", "Fixed sampling."}, log.Releases[0].Sections.BugFixes)
}

func TestParseMarkdown_RenderRoundTrip(t *testing.T) {
	// Parsing a canonical document and rendering it again is stable.
	log, err := ParseMarkdown(strings.NewReader(sampleReleaseNotes))
	require.NoError(t, err)

	rendered, err := RenderMarkdownString(log)
	require.NoError(t, err)

	reparsed, err := ParseMarkdown(strings.NewReader(rendered))
	require.NoError(t, err)
	assert.Equal(t, log, reparsed)

	again, err := RenderMarkdownString(reparsed)
	require.NoError(t, err)
	assert.Equal(t, rendered, again)
}
