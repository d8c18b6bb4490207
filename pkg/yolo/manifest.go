package yolo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestFilename is the name of the manifest at the root of a YOLO dataset
const ManifestFilename = "dataset.yaml"

// Manifest is the dataset.yaml that ultralytics-style trainers read
type Manifest struct {
	Path  string   `yaml:"path"`       // Absolute path of the dataset root
	Train string   `yaml:"train"`      // eg "images/train"
	Val   string   `yaml:"val"`        // eg "images/val"
	Test  string   `yaml:"test"`       // eg "images/test"
	NC    int      `yaml:"nc"`         // Number of classes
	Names []string `yaml:"names,flow"` // Class names, ordered by class id
}

// NewManifest creates a manifest for a dataset rooted at 'path', with the standard split layout.
func NewManifest(path string, names []string) *Manifest {
	return &Manifest{
		Path:  path,
		Train: SplitTrain.ImageDir(),
		Val:   SplitVal.ImageDir(),
		Test:  SplitTest.ImageDir(),
		NC:    len(names),
		Names: names,
	}
}

func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Load a manifest from a YAML file
func LoadManifest(filename string) (*Manifest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("Failed to parse manifest '%v': %w", filename, err)
	}
	return m, nil
}
