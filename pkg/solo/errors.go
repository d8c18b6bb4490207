package solo

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMissingLabelID is returned for a box record that has neither 'label_id' nor 'labelId'
var ErrMissingLabelID = errors.New("Box has no integer label_id or labelId")

// NoPairsFoundError means that no image in the dataset had a discoverable annotation file
type NoPairsFoundError struct {
	Root string
}

func (e *NoPairsFoundError) Error() string {
	return fmt.Sprintf("No image/annotation pairs found in '%v'. Unsupported folder layout?", e.Root)
}

// MissingClassDefinitionError means that the dataset root has no annotation definition file
type MissingClassDefinitionError struct {
	Path string
}

func (e *MissingClassDefinitionError) Error() string {
	return fmt.Sprintf("Class definition file '%v' is missing", e.Path)
}

// BoundingBoxDefinitionNotFoundError means that the annotation definition file
// does not define a bounding box annotation type.
type BoundingBoxDefinitionNotFoundError struct {
	Path string
}

func (e *BoundingBoxDefinitionNotFoundError) Error() string {
	return fmt.Sprintf("Bounding box definition not found in '%v'", e.Path)
}

// UnrecognizedBoxFormatError is returned for a box record that has neither
// x/y/width/height nor origin/dimension fields.
type UnrecognizedBoxFormatError struct {
	Box string // Raw JSON of the box record
}

func (e *UnrecognizedBoxFormatError) Error() string {
	box := e.Box
	if len(box) > 100 {
		n := 100
		for n > 0 && !utf8.RuneStart(box[n]) {
			n--
		}
		box = box[:n] + "..."
	}
	return fmt.Sprintf("Unrecognized bounding box fields in %v", box)
}
