// Package preview draws YOLO labels on top of their image, for eyeballing a converted dataset
package preview

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/solo2yolo/pkg/yolo"
	"github.com/fogleman/gg"
)

// Box colors, indexed by class id
var palette = [][3]float64{
	{1, 0.2, 0.2},
	{0.2, 0.9, 0.2},
	{0.3, 0.5, 1},
	{1, 0.8, 0.1},
	{0.9, 0.3, 0.9},
	{0.1, 0.9, 0.9},
}

func classColor(class int) [3]float64 {
	if class < 0 {
		class = -class
	}
	return palette[class%len(palette)]
}

// Render draws 'labels' on the image at imagePath, and writes the result as a PNG to dst.
// 'names' maps class id to the name drawn above each box.
func Render(imagePath string, labels []yolo.Label, names map[int]string, dst string) error {
	img, err := gg.LoadImage(imagePath)
	if err != nil {
		return fmt.Errorf("Failed to load image '%v': %w", imagePath, err)
	}
	dc := gg.NewContextForImage(img)
	width := dc.Width()
	height := dc.Height()
	dc.SetLineWidth(2)
	for _, l := range labels {
		r := l.Box.Denormalize(width, height)
		c := classColor(l.Class)
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.Stroke()
		name, ok := names[l.Class]
		if !ok {
			name = fmt.Sprintf("%v", l.Class)
		}
		dc.DrawString(name, r.X+2, r.Y-3)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return dc.SavePNG(dst)
}
