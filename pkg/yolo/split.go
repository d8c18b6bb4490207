package yolo

// Split is one of the three disjoint partitions of a YOLO dataset
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// AllSplits is the order in which splits are created and materialized
var AllSplits = []Split{SplitTrain, SplitVal, SplitTest}

// ImageDir returns the split's image directory, relative to the dataset root (eg "images/train")
func (s Split) ImageDir() string {
	return "images/" + string(s)
}

// LabelDir returns the split's label directory, relative to the dataset root (eg "labels/train")
func (s Split) LabelDir() string {
	return "labels/" + string(s)
}
