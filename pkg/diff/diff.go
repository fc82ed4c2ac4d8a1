// Package diff renders compact previews of text changes for plan output.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxLines = 200

// Preview returns a +/- line diff from before to after, empty when the
// contents are identical. Long previews are truncated; plan output is a
// summary, not an archive.
func Preview(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, true))

	var lines []string
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}

		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if prefix == " " && line == "" {
				continue
			}
			lines = append(lines, prefix+line)
			if len(lines) >= maxLines {
				lines = append(lines, "... (preview truncated)")
				return strings.Join(lines, "\n")
			}
		}
	}

	return strings.Join(lines, "\n")
}
