package yolo

// Rect is an axis-aligned box in pixel space.
// X,Y is the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) X2() float64 {
	return r.X + r.Width
}

func (r Rect) Y2() float64 {
	return r.Y + r.Height
}

// Box is a rectangle in YOLO's normalized convention: center and size, each
// expressed as a fraction of the image width or height.
// Values are nominally in [0,1], but nothing is clamped. Boxes that hang
// outside the frame pass through unchanged.
type Box struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// Normalize converts a pixel-space box (top-left + size) to YOLO coordinates.
func Normalize(x, y, w, h float64, imageWidth, imageHeight int) Box {
	iw := float64(imageWidth)
	ih := float64(imageHeight)
	return Box{
		CX: (x + w/2) / iw,
		CY: (y + h/2) / ih,
		W:  w / iw,
		H:  h / ih,
	}
}

// Normalize converts the rectangle to YOLO coordinates for an image of the given size.
func (r Rect) Normalize(imageWidth, imageHeight int) Box {
	return Normalize(r.X, r.Y, r.Width, r.Height, imageWidth, imageHeight)
}

// Denormalize is the inverse of Normalize.
func (b Box) Denormalize(imageWidth, imageHeight int) Rect {
	iw := float64(imageWidth)
	ih := float64(imageHeight)
	w := b.W * iw
	h := b.H * ih
	return Rect{
		X:      b.CX*iw - w/2,
		Y:      b.CY*ih - h/2,
		Width:  w,
		Height: h,
	}
}
