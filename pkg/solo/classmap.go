package solo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// ClassDefinitionFilename is the file at the root of a SOLO dataset that defines the annotation types
const ClassDefinitionFilename = "annotation_definitions.json"

// BoundingBoxID is the id/name of the bounding box annotation type, in both
// the definition file and the per-frame annotation files.
const BoundingBoxID = "bounding box"

// BoundingBoxFormat is the alternate 'format' marker of a bounding box definition
const BoundingBoxFormat = "bbox"

// ClassMap maps label id to class name.
// Names are not necessarily unique.
type ClassMap map[int]string

// IDs returns the label ids in ascending order
func (c ClassMap) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Names returns the class names, ordered by ascending label id
func (c ClassMap) Names() []string {
	names := make([]string, 0, len(c))
	for _, id := range c.IDs() {
		names = append(names, c[id])
	}
	return names
}

func (c ClassMap) Has(id int) bool {
	_, ok := c[id]
	return ok
}

// isBoundingBoxDefinition recognizes the bounding box annotation type.
// Exporters differ in whether they set id, name, or format.
func isBoundingBoxDefinition(def gjson.Result) bool {
	return def.Get("id").String() == BoundingBoxID ||
		def.Get("name").String() == BoundingBoxID ||
		def.Get("format").String() == BoundingBoxFormat
}

// LoadClassMap reads the label id -> name mapping of the bounding box
// annotation type from the dataset's annotation_definitions.json
func LoadClassMap(root string) (ClassMap, error) {
	filename := filepath.Join(root, ClassDefinitionFilename)
	raw, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &MissingClassDefinitionError{Path: filename}
	} else if err != nil {
		return nil, err
	}
	return ParseClassMap(filename, raw)
}

// ParseClassMap parses the content of an annotation definition file.
// 'filename' is only used for error messages.
func ParseClassMap(filename string, raw []byte) (ClassMap, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("Class definition file '%v' is not valid JSON", filename)
	}
	doc := gjson.ParseBytes(raw)
	for _, def := range doc.Get("annotationDefinitions").Array() {
		if !isBoundingBoxDefinition(def) {
			continue
		}
		classes := ClassMap{}
		for i, label := range def.Get("spec").Array() {
			id, ok := firstInt(label, "label_id", "labelId")
			if !ok || id < 0 {
				return nil, fmt.Errorf("Label %v of the bounding box definition in '%v' has no valid label_id", i, filename)
			}
			classes[id] = label.Get("label_name").String()
		}
		return classes, nil
	}
	return nil, &BoundingBoxDefinitionNotFoundError{Path: filename}
}
