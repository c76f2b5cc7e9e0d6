package docxtree

import (
	"errors"
	"strings"

	"github.com/tsawler/docxtree/docx"
)

// ErrUnsupportedFormat is returned when the input is not a WordprocessingML
// package, e.g. a legacy .doc file or a spreadsheet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Warning is a non-fatal problem met during conversion. The affected
// element was skipped or degraded; the rest of the tree is complete.
type Warning = docx.Warning

// FormatWarnings renders warnings one per line, suitable for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
