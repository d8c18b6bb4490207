package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cyclopcam/solo2yolo/pkg/catalog"
	"github.com/cyclopcam/solo2yolo/pkg/iox"
	"github.com/cyclopcam/solo2yolo/pkg/preview"
	"github.com/cyclopcam/solo2yolo/pkg/solo"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
)

// materializer holds the state of a single Convert call
type materializer struct {
	*Converter
	root       string
	out        string
	normalizer *solo.Normalizer
	classes    solo.ClassMap
	run        *catalog.Run // nil if there is no catalog
}

// A pair that was written to the output dataset
type example struct {
	pair   solo.Pair
	stem   string
	image  string // Output image path
	labels []yolo.Label
	bytes  int64
}

// materialize writes the image and label file of one pair into split 's'.
// Returns nil if the pair has no usable labels, in which case nothing is written.
// The label file and the image copy are staged under temporary names, so that a
// failure never leaves one without the other.
func (m *materializer) materialize(s yolo.Split, pair solo.Pair) (*example, error) {
	width, height, err := m.Images.Dimensions(pair.Image)
	if err != nil {
		m.Log.Warnf("Skipping '%v': %v", pair.Image, err)
		return nil, nil
	}
	labels, err := m.normalizer.Labels(pair.Annotation, width, height)
	if err != nil {
		m.Log.Warnf("Treating '%v' as unlabeled: %v", pair.Annotation, err)
	}
	if len(labels) == 0 {
		m.Log.Debugf("Skipping '%v': no bounding boxes", pair.Image)
		return nil, nil
	}

	stem, err := Stem(m.root, pair.Image)
	if err != nil {
		return nil, err
	}
	dstImage := filepath.Join(m.out, filepath.FromSlash(s.ImageDir()), stem+filepath.Ext(pair.Image))
	dstLabel := filepath.Join(m.out, filepath.FromSlash(s.LabelDir()), stem+".txt")
	tmpImage := iox.TempName(dstImage)
	tmpLabel := iox.TempName(dstLabel)
	cleanup := func() {
		os.Remove(tmpImage)
		os.Remove(tmpLabel)
	}

	if err := os.WriteFile(tmpLabel, []byte(yolo.FormatLabels(labels)), 0644); err != nil {
		cleanup()
		return nil, fmt.Errorf("Failed to write labels of '%v': %w", pair.Image, err)
	}
	nBytes, err := iox.CopyFile(tmpImage, pair.Image)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("Failed to copy '%v': %w", pair.Image, err)
	}
	if err := m.removeStale(s, stem, filepath.Ext(pair.Image)); err != nil {
		cleanup()
		return nil, err
	}
	if err := os.Rename(tmpImage, dstImage); err != nil {
		cleanup()
		return nil, fmt.Errorf("Failed to copy '%v': %w", pair.Image, err)
	}
	if err := os.Rename(tmpLabel, dstLabel); err != nil {
		cleanup()
		os.Remove(dstImage)
		return nil, fmt.Errorf("Failed to write labels of '%v': %w", pair.Image, err)
	}

	if m.run != nil {
		err := m.Catalog.AddExample(m.run, &catalog.Example{
			Split:            s,
			Stem:             stem,
			SourceImage:      pair.Image,
			SourceAnnotation: pair.Annotation,
			NumBoxes:         len(labels),
		})
		if err != nil {
			return nil, fmt.Errorf("Failed to record '%v' in catalog: %w", pair.Image, err)
		}
	}

	return &example{
		pair:   pair,
		stem:   stem,
		image:  dstImage,
		labels: labels,
		bytes:  nBytes,
	}, nil
}

// removeStale deletes the files of 'stem' from every split other than 's'.
// They are left behind by an earlier run into the same output with a different seed or different fractions.
func (m *materializer) removeStale(s yolo.Split, stem, imageExt string) error {
	for _, other := range yolo.AllSplits {
		if other == s {
			continue
		}
		stale := []string{
			filepath.Join(m.out, filepath.FromSlash(other.ImageDir()), stem+imageExt),
			filepath.Join(m.out, filepath.FromSlash(other.LabelDir()), stem+".txt"),
			filepath.Join(m.out, PreviewDir, string(other), stem+".png"),
		}
		for _, fn := range stale {
			err := os.Remove(fn)
			if err == nil {
				m.Log.Debugf("Removed '%v', which now belongs to %v", fn, s)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("Failed to remove stale '%v': %w", fn, err)
			}
		}
	}
	return nil
}

// Preview failures are not fatal, because previews are not part of the dataset
func (m *materializer) renderPreview(s yolo.Split, ex *example) {
	dst := filepath.Join(m.out, PreviewDir, string(s), ex.stem+".png")
	if err := preview.Render(ex.image, ex.labels, m.classes, dst); err != nil {
		m.Log.Warnf("Failed to render preview of '%v': %v", ex.pair.Image, err)
	}
}
