package yolo

import (
	"fmt"
	"strings"
)

// Label is one object in a YOLO label file
type Label struct {
	Class int `json:"class"`
	Box   Box `json:"box"`
}

// Line formats the label as a row of a YOLO label file, including the trailing newline.
// eg "3 0.150000 0.500000 0.200000 0.600000\n"
func (l Label) Line() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f\n", l.Class, l.Box.CX, l.Box.CY, l.Box.W, l.Box.H)
}

// FormatLabels returns the contents of a label file, one line per label, in input order.
func FormatLabels(labels []Label) string {
	sb := strings.Builder{}
	for _, l := range labels {
		sb.WriteString(l.Line())
	}
	return sb.String()
}
