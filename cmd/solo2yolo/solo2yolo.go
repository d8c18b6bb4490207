package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/catalog"
	"github.com/cyclopcam/solo2yolo/pkg/convert"
	"github.com/cyclopcam/solo2yolo/pkg/kibi"
	"github.com/cyclopcam/solo2yolo/pkg/split"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
)

func main() {
	parser := argparse.NewParser("solo2yolo", "Convert a Unity SOLO dataset into a YOLO detection dataset")
	input := parser.String("i", "input", &argparse.Options{Help: "Path to SOLO dataset root", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Destination folder for YOLO dataset", Required: true})
	train := parser.Float("", "train", &argparse.Options{Help: "Fraction of images for training", Default: split.DefaultFractions.Train})
	val := parser.Float("", "val", &argparse.Options{Help: "Fraction of images for validation", Default: split.DefaultFractions.Val})
	test := parser.Float("", "test", &argparse.Options{Help: "Fraction of images for testing", Default: split.DefaultFractions.Test})
	seed := parser.Int("", "seed", &argparse.Options{Help: "Seed of the train/val/test shuffle", Default: 42})
	catalogFile := parser.String("", "catalog", &argparse.Options{Help: "Record the provenance of every output image in this sqlite file", Default: ""})
	previews := parser.Int("", "preview", &argparse.Options{Help: "Number of images per split to draw with their boxes, into <output>/preview", Default: 0})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	fractions := split.Fractions{Train: *train, Val: *val, Test: *test}
	if err := fractions.Validate(); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}
	if *previews < 0 {
		fmt.Print(parser.Usage("--preview may not be negative"))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	opt := convert.Options{
		Input:            *input,
		Output:           *output,
		Fractions:        fractions,
		Seed:             int64(*seed),
		PreviewsPerSplit: *previews,
	}
	if err := run(logger, opt, *catalogFile); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// run does the conversion, so that deferred cleanup happens before main exits
func run(logger logs.Log, opt convert.Options, catalogFile string) error {
	converter := convert.NewConverter(logger)
	converter.Progress = newProgressLogger(logger)

	if catalogFile != "" {
		cat, err := catalog.Open(logger, catalogFile)
		if err != nil {
			return err
		}
		defer cat.Close()
		converter.Catalog = cat
	}

	result, err := converter.Convert(opt)
	if err != nil {
		return fmt.Errorf("Conversion failed: %w", err)
	}

	if result.Skipped != 0 {
		logger.Infof("%v images had no usable bounding boxes, and were left out", result.Skipped)
	}
	logger.Infof("Copied %v of images (train %v, val %v, test %v)", kibi.FormatBytes(result.BytesCopied),
		result.Written[yolo.SplitTrain], result.Written[yolo.SplitVal], result.Written[yolo.SplitTest])
	logger.Infof("Converted %v images -> %v", result.Considered, result.Output)
	return nil
}
