package entities

import "strings"

// MergeSection merges a generated section into a markdown document at the
// managed region identified by the marker heading, and returns the patched
// document. The section text must itself start with the marker heading and
// must not contain another heading of the marker's level, which keeps the
// operation idempotent: patching twice with the same section yields a
// byte-identical result.
//
// Behaviour:
//   - If the marker is absent, the section is inserted immediately before
//     the first occurrence of the anchor heading, separated by a blank
//     line; without an anchor it is appended at the end of the document.
//   - If the marker is present, the region from the marker up to (but not
//     including) the next heading of the same level is replaced. With no
//     such heading the region extends to the end of the document.
//   - If the document already contains duplicate markers, only the first
//     occurrence is treated as canonical; later duplicates are left alone.
func MergeSection(document, marker, section, anchor string) string {
	docLines := strings.Split(document, "\n")
	sectionLines := strings.Split(strings.TrimRight(section, "\n"), "\n")

	markerIdx := findLineIndex(docLines, marker)
	if markerIdx < 0 {
		return insertSection(docLines, sectionLines, anchor)
	}

	boundaryIdx := findNextHeadingIndex(docLines, markerIdx, headingPrefix(marker))

	merged := make([]string, 0, markerIdx+len(sectionLines)+len(docLines)-boundaryIdx+1)
	merged = append(merged, docLines[:markerIdx]...)
	merged = append(merged, sectionLines...)
	merged = append(merged, "")
	merged = append(merged, docLines[boundaryIdx:]...)
	return strings.Join(merged, "\n")
}

// ExtractSection returns the managed region of the document starting at
// the marker heading, up to the next heading of the same level, without
// the trailing separator line. The second return value is false when the
// marker is not present.
func ExtractSection(document, marker string) (string, bool) {
	docLines := strings.Split(document, "\n")

	markerIdx := findLineIndex(docLines, marker)
	if markerIdx < 0 {
		return "", false
	}

	boundaryIdx := findNextHeadingIndex(docLines, markerIdx, headingPrefix(marker))

	region := docLines[markerIdx:boundaryIdx]
	for len(region) > 0 && strings.TrimSpace(region[len(region)-1]) == "" {
		region = region[:len(region)-1]
	}
	return strings.Join(region, "\n"), true
}

// insertSection places the section before the anchor heading when one
// exists, otherwise appends it at the end of the document.
func insertSection(docLines, sectionLines []string, anchor string) string {
	anchorIdx := -1
	if anchor != "" {
		anchorIdx = findLineIndex(docLines, anchor)
	}

	if anchorIdx < 0 {
		trimmed := docLines
		for len(trimmed) > 0 && strings.TrimSpace(trimmed[len(trimmed)-1]) == "" {
			trimmed = trimmed[:len(trimmed)-1]
		}
		appended := make([]string, 0, len(trimmed)+len(sectionLines)+2)
		appended = append(appended, trimmed...)
		appended = append(appended, "")
		appended = append(appended, sectionLines...)
		appended = append(appended, "")
		return strings.Join(appended, "\n")
	}

	inserted := make([]string, 0, len(docLines)+len(sectionLines)+1)
	inserted = append(inserted, docLines[:anchorIdx]...)
	inserted = append(inserted, sectionLines...)
	inserted = append(inserted, "")
	inserted = append(inserted, docLines[anchorIdx:]...)
	return strings.Join(inserted, "\n")
}

// findLineIndex returns the index of the first line whose trimmed form
// equals the target, or -1 if not found.
func findLineIndex(lines []string, target string) int {
	target = strings.TrimSpace(target)
	for i, line := range lines {
		if strings.TrimSpace(line) == target {
			return i
		}
	}
	return -1
}

// headingPrefix returns the "## "-style prefix matching the marker's
// heading level, or an empty string when the marker is not a heading.
func headingPrefix(marker string) string {
	level := 0
	for level < len(marker) && marker[level] == '#' {
		level++
	}
	if level == 0 {
		return ""
	}
	return marker[:level] + " "
}

// findNextHeadingIndex returns the index of the next line after startIdx
// that begins a heading of the given prefix level, or len(lines) if there
// is none. An empty prefix never matches.
func findNextHeadingIndex(lines []string, startIdx int, prefix string) int {
	if prefix == "" {
		return len(lines)
	}
	for i := startIdx + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), prefix) {
			return i
		}
	}
	return len(lines)
}
