// Package convert turns a SOLO synthetic dataset into a YOLO detection dataset
package convert

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/catalog"
	"github.com/cyclopcam/solo2yolo/pkg/imgsize"
	"github.com/cyclopcam/solo2yolo/pkg/iox"
	"github.com/cyclopcam/solo2yolo/pkg/solo"
	"github.com/cyclopcam/solo2yolo/pkg/split"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
	"github.com/google/uuid"
)

// PreviewDir is the directory under the output root that receives preview images
const PreviewDir = "preview"

type Options struct {
	Input            string          // Root of the SOLO dataset
	Output           string          // Root of the YOLO dataset that we create
	Fractions        split.Fractions // Assumed valid (see Fractions.Validate)
	Seed             int64           // Seed of the train/val/test shuffle
	PreviewsPerSplit int             // Number of preview images to draw per split (0 = none)
}

// ProgressFunc is called after each pair has been processed. It has no influence on the conversion.
type ProgressFunc func(s yolo.Split, done, total int)

type Result struct {
	Output      string             // Absolute path of the output dataset
	Considered  int                // Number of image/annotation pairs found, including skipped ones
	Written     map[yolo.Split]int // Number of image/label pairs written to each split
	Skipped     int                // Pairs that produced no labels
	BytesCopied int64              // Total size of the copied images
}

// Converter materializes a YOLO dataset.
// Images, Progress and Catalog may be swapped out before calling Convert.
type Converter struct {
	Log      logs.Log
	Images   imgsize.Reader
	Progress ProgressFunc     // Optional
	Catalog  *catalog.Catalog // Optional
}

func NewConverter(log logs.Log) *Converter {
	return &Converter{
		Log:    log,
		Images: imgsize.HeaderReader{},
	}
}

// Stem returns the output filename (without extension) of an image.
// This is the UUIDv5 of the image path relative to the dataset root, so
// repeated conversions of the same dataset produce identical names.
func Stem(root, image string) (string, error) {
	rel, err := filepath.Rel(root, image)
	if err != nil {
		return "", err
	}
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.ToSlash(rel)))
	return hex.EncodeToString(u[:]), nil
}

// CreateLayout creates the images/<split> and labels/<split> directories.
// Existing directories are fine.
func CreateLayout(out string) error {
	for _, s := range yolo.AllSplits {
		for _, dir := range []string{s.ImageDir(), s.LabelDir()} {
			if err := os.MkdirAll(filepath.Join(out, filepath.FromSlash(dir)), 0755); err != nil {
				return fmt.Errorf("Failed to create output directory: %w", err)
			}
		}
	}
	return nil
}

// Convert runs the whole conversion.
// Missing pairs or class definitions abort the run before anything is written.
func (c *Converter) Convert(opt Options) (*Result, error) {
	root, err := filepath.Abs(opt.Input)
	if err != nil {
		return nil, err
	}
	out, err := filepath.Abs(opt.Output)
	if err != nil {
		return nil, err
	}

	pairs, err := solo.FindPairs(c.Log, root)
	if err != nil {
		return nil, err
	}
	classes, err := solo.LoadClassMap(root)
	if err != nil {
		return nil, err
	}
	c.Log.Infof("Found %v image/annotation pairs and %v classes in '%v'", len(pairs), len(classes), root)

	if err := CreateLayout(out); err != nil {
		return nil, err
	}

	splits := split.Assign(pairs, opt.Fractions, opt.Seed)

	var run *catalog.Run
	if c.Catalog != nil {
		run = &catalog.Run{
			InputRoot:     root,
			OutputRoot:    out,
			Seed:          opt.Seed,
			TrainFraction: opt.Fractions.Train,
			ValFraction:   opt.Fractions.Val,
			TestFraction:  opt.Fractions.Test,
		}
		if err := c.Catalog.BeginRun(run); err != nil {
			return nil, fmt.Errorf("Failed to record run in catalog: %w", err)
		}
	}

	m := &materializer{
		Converter:  c,
		root:       root,
		out:        out,
		normalizer: solo.NewNormalizer(c.Log, classes),
		classes:    classes,
		run:        run,
	}
	result := &Result{
		Output:     out,
		Considered: len(pairs),
		Written:    map[yolo.Split]int{},
	}

	for _, s := range yolo.AllSplits {
		items := splits[s]
		nPreviews := 0
		for i, pair := range items {
			ex, err := m.materialize(s, pair)
			if err != nil {
				return nil, err
			}
			if ex == nil {
				result.Skipped++
			} else {
				result.Written[s]++
				result.BytesCopied += ex.bytes
				if nPreviews < opt.PreviewsPerSplit {
					nPreviews++
					m.renderPreview(s, ex)
				}
			}
			if c.Progress != nil {
				c.Progress(s, i+1, len(items))
			}
		}
		c.Log.Infof("%v: wrote %v of %v pairs", s, result.Written[s], len(items))
	}

	manifest := yolo.NewManifest(out, classes.Names())
	raw, err := manifest.Marshal()
	if err != nil {
		return nil, err
	}
	if err := iox.WriteFileAtomic(filepath.Join(out, yolo.ManifestFilename), raw, 0644); err != nil {
		return nil, fmt.Errorf("Failed to write manifest: %w", err)
	}

	if run != nil {
		if err := c.Catalog.FinishRun(run, result.Considered); err != nil {
			return nil, fmt.Errorf("Failed to record run in catalog: %w", err)
		}
	}

	return result, nil
}
