package solo

import (
	"fmt"
	"os"

	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
	"github.com/tidwall/gjson"
)

// Places where a frame's annotation array may live, in order of preference.
// Older exports put 'annotations' at the top level, and newer exports nest it inside the first capture.
// When both are present, only the first one is used.
var annotationPaths = []string{
	"annotations",
	"captures.0.annotations",
}

// Fields of a bounding box annotation that may hold the list of boxes, in order of preference
var boxListPaths = []string{"values", "data"}

// Fields that may hold a box's label id, in order of preference
var labelIDFields = []string{"label_id", "labelId"}

// A boxShape reads the pixel-space rectangle out of a box record.
// Returns false if the record doesn't have the fields that the shape requires.
type boxShape func(box gjson.Result) (yolo.Rect, bool)

// Box representations that we understand, tried in order
var boxShapes = []boxShape{
	flatBoxShape,
	originDimensionBoxShape,
}

// {"x": 10, "y": 20, "width": 40, "height": 60}
func flatBoxShape(box gjson.Result) (yolo.Rect, bool) {
	v, ok := numbers(box, "x", "y", "width", "height")
	if !ok {
		return yolo.Rect{}, false
	}
	return yolo.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
}

// {"origin": [10, 20], "dimension": [40, 60]}
func originDimensionBoxShape(box gjson.Result) (yolo.Rect, bool) {
	x, y, ok1 := pair(box, "origin")
	w, h, ok2 := pair(box, "dimension")
	if !ok1 || !ok2 {
		return yolo.Rect{}, false
	}
	return yolo.Rect{X: x, Y: y, Width: w, Height: h}, true
}

// RawBox is a box record from an annotation file, still in pixel space
type RawBox struct {
	LabelID int
	Rect    yolo.Rect
}

// ParseBox reads the label id and rectangle of a single box record
func ParseBox(box gjson.Result) (RawBox, error) {
	id, ok := firstInt(box, labelIDFields...)
	if !ok {
		return RawBox{}, ErrMissingLabelID
	}
	for _, shape := range boxShapes {
		if r, ok := shape(box); ok {
			return RawBox{LabelID: id, Rect: r}, nil
		}
	}
	return RawBox{}, &UnrecognizedBoxFormatError{Box: box.Raw}
}

// boxRecords returns the raw box records of every bounding box annotation in the frame
func boxRecords(frame gjson.Result) []gjson.Result {
	entries, ok := firstNonEmptyArray(frame, annotationPaths...)
	if !ok {
		return nil
	}
	boxes := []gjson.Result{}
	for _, entry := range entries {
		if entry.Get("id").String() != BoundingBoxID && entry.Get("name").String() != BoundingBoxID {
			continue
		}
		list, _ := firstNonEmptyArray(entry, boxListPaths...)
		boxes = append(boxes, list...)
	}
	return boxes
}

// Normalizer turns SOLO frame annotations into YOLO labels
type Normalizer struct {
	Log     logs.Log
	Classes ClassMap
}

func NewNormalizer(log logs.Log, classes ClassMap) *Normalizer {
	return &Normalizer{
		Log:     log,
		Classes: classes,
	}
}

// Labels reads an annotation file and returns the YOLO labels of its bounding boxes, in file order.
// Malformed boxes, and boxes whose label id is not in the class map, are dropped.
// An error is only returned if the file cannot be read, or is not JSON.
func (n *Normalizer) Labels(annotationPath string, imageWidth, imageHeight int) ([]yolo.Label, error) {
	raw, err := os.ReadFile(annotationPath)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("Annotation file '%v' is not valid JSON", annotationPath)
	}
	return n.FrameLabels(annotationPath, gjson.ParseBytes(raw), imageWidth, imageHeight), nil
}

// FrameLabels is Labels for an already parsed frame. 'source' is only used for log messages.
func (n *Normalizer) FrameLabels(source string, frame gjson.Result, imageWidth, imageHeight int) []yolo.Label {
	labels := []yolo.Label{}
	for _, record := range boxRecords(frame) {
		box, err := ParseBox(record)
		if err != nil {
			n.Log.Warnf("Dropping box in '%v': %v", source, err)
			continue
		}
		if !n.Classes.Has(box.LabelID) {
			n.Log.Debugf("Dropping box in '%v' with unknown label id %v", source, box.LabelID)
			continue
		}
		labels = append(labels, yolo.Label{
			Class: box.LabelID,
			Box:   box.Rect.Normalize(imageWidth, imageHeight),
		})
	}
	return labels
}

// Lines is Labels, formatted as the lines of a YOLO label file
func (n *Normalizer) Lines(annotationPath string, imageWidth, imageHeight int) ([]string, error) {
	labels, err := n.Labels(annotationPath, imageWidth, imageHeight)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(labels))
	for i, l := range labels {
		lines[i] = l.Line()
	}
	return lines, nil
}
