package solo

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cyclopcam/logs"
)

// AnnotationSuffix is appended to a (possibly shortened) image stem to form the name of its annotation file
const AnnotationSuffix = ".frame_data.json"

// ImageExtensions are the image types that we pick up from a dataset (compared case-insensitively)
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// Pair is an image and the annotation file that describes it.
// Both paths are absolute.
type Pair struct {
	Image      string
	Annotation string
}

// IsImageFile returns true if filename has one of ImageExtensions, and a non-empty stem.
// A file called ".png" is not an image.
func IsImageFile(filename string) bool {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	if len(ext) == len(base) {
		return false
	}
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// AnnotationCandidates yields the possible annotation filenames for an image,
// shortest prefix first.
// For "dir/seq1.cam.png" this produces "dir/seq1.frame_data.json", then "dir/seq1.cam.frame_data.json".
func AnnotationCandidates(imagePath string) iter.Seq[string] {
	return func(yield func(string) bool) {
		dir := filepath.Dir(imagePath)
		base := filepath.Base(imagePath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		segments := strings.Split(stem, ".")
		for i := range segments {
			prefix := strings.Join(segments[:i+1], ".")
			if !yield(filepath.Join(dir, prefix+AnnotationSuffix)) {
				return
			}
		}
	}
}

// FindAnnotation returns the first candidate annotation file that exists
func FindAnnotation(imagePath string) (string, bool) {
	for candidate := range AnnotationCandidates(imagePath) {
		if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// FindPairs walks the dataset, and returns every image that has an annotation file, sorted by image path.
// Images without annotations are ignored, and so are subdirectories that we may not read.
// If nothing is found, returns NoPairsFoundError.
func FindPairs(log logs.Log, root string) ([]Pair, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	pairs := []Pair{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root && errors.Is(err, fs.ErrPermission) {
				log.Warnf("Skipping unreadable directory '%v': %v", path, err)
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !IsImageFile(path) {
			return nil
		}
		if annotation, ok := FindAnnotation(path); ok {
			pairs = append(pairs, Pair{Image: path, Annotation: annotation})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to scan dataset '%v': %w", root, err)
	}
	if len(pairs) == 0 {
		return nil, &NoPairsFoundError{Root: root}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Image < pairs[j].Image
	})
	return pairs, nil
}
