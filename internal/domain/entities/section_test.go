//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autoreport/internal/domain/entities"
)

const testMarker = "## Automated Status"

func TestMergeSection(t *testing.T) {
	t.Parallel()

	t.Run("should insert section before anchor when marker is absent", func(t *testing.T) {
		// given
		document := "# My Project\n\nSome intro text.\n\n## License\n\nMIT\n"
		section := testMarker + "\n\nAnalyzed 3 merged change sets.\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "## License")

		// then
		assert.Contains(t, patched, testMarker)
		markerIdx := strings.Index(patched, testMarker)
		licenseIdx := strings.Index(patched, "## License")
		assert.Less(t, markerIdx, licenseIdx, "section must precede the anchor")
		assert.Contains(t, patched, "Some intro text.")
		assert.Contains(t, patched, "MIT")
	})

	t.Run("should append section at end when marker and anchor are absent", func(t *testing.T) {
		// given
		document := "# My Project\n\nSome intro text.\n"
		section := testMarker + "\n\nAnalyzed 3 merged change sets.\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "## License")

		// then
		markerIdx := strings.Index(patched, testMarker)
		introIdx := strings.Index(patched, "Some intro text.")
		assert.Less(t, introIdx, markerIdx, "section must be appended after existing content")
		assert.True(t, strings.HasSuffix(patched, "\n"))
	})

	t.Run("should replace existing section up to the next same-level heading", func(t *testing.T) {
		// given
		document := "# My Project\n\n" + testMarker + "\n\nOld content.\n\n## License\n\nMIT\n"
		section := testMarker + "\n\nNew content.\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "## License")

		// then
		assert.NotContains(t, patched, "Old content.")
		assert.Contains(t, patched, "New content.")
		assert.Contains(t, patched, "MIT")
		assert.Equal(t, 1, strings.Count(patched, testMarker))
	})

	t.Run("should be idempotent when applied twice with the same section", func(t *testing.T) {
		// given
		document := "# My Project\n\nIntro.\n\n## License\n\nMIT\n"
		section := testMarker + "\n\n### Recent activity\n\n- Fix parser (2 files)\n"

		// when
		once := entities.MergeSection(document, testMarker, section, "## License")
		twice := entities.MergeSection(once, testMarker, section, "## License")

		// then
		assert.Equal(t, once, twice)
	})

	t.Run("should not treat deeper headings inside the section as boundaries", func(t *testing.T) {
		// given
		document := "# My Project\n\n" + testMarker + "\n\n### Recent activity\n\n- old bullet\n\n## License\n\nMIT\n"
		section := testMarker + "\n\n### Recent activity\n\n- new bullet\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "## License")

		// then
		assert.NotContains(t, patched, "old bullet")
		assert.Contains(t, patched, "new bullet")
		assert.Contains(t, patched, "## License")
	})

	t.Run("should extend replacement to end of document when no later heading exists", func(t *testing.T) {
		// given
		document := "# My Project\n\n" + testMarker + "\n\nOld tail content.\n"
		section := testMarker + "\n\nNew tail content.\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "")

		// then
		assert.NotContains(t, patched, "Old tail content.")
		assert.True(t, strings.HasSuffix(patched, "New tail content.\n"))
	})

	t.Run("should treat only the first marker as canonical when duplicates exist", func(t *testing.T) {
		// given
		document := "# My Project\n\n" + testMarker + "\n\nFirst copy.\n\n## Middle\n\n" +
			testMarker + "\n\nSecond copy.\n"
		section := testMarker + "\n\nCanonical content.\n"

		// when
		patched := entities.MergeSection(document, testMarker, section, "")

		// then
		assert.NotContains(t, patched, "First copy.")
		assert.Contains(t, patched, "Canonical content.")
		assert.Contains(t, patched, "Second copy.")
	})

	t.Run("should patch an empty document", func(t *testing.T) {
		// given
		section := testMarker + "\n\nContent.\n"

		// when
		patched := entities.MergeSection("", testMarker, section, "## License")

		// then
		assert.Contains(t, patched, testMarker)
		assert.Contains(t, patched, "Content.")
	})
}

func TestExtractSection(t *testing.T) {
	t.Parallel()

	t.Run("should return false when marker is absent", func(t *testing.T) {
		// given
		document := "# My Project\n\nIntro.\n"

		// when
		_, found := entities.ExtractSection(document, testMarker)

		// then
		assert.False(t, found)
	})

	t.Run("should round-trip the merged section", func(t *testing.T) {
		// given
		document := "# My Project\n\nIntro.\n\n## License\n\nMIT\n"
		section := testMarker + "\n\n### Suggested tasks\n\n- **Do a thing** (maintenance, medium, 2h): details\n\nTotal estimated effort: 2h"

		// when
		patched := entities.MergeSection(document, testMarker, section, "## License")
		extracted, found := entities.ExtractSection(patched, testMarker)

		// then
		require.True(t, found)
		assert.Equal(t, strings.TrimRight(section, "\n"), extracted)
	})
}
