package catalog

import (
	"github.com/cyclopcam/solo2yolo/pkg/dbh"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
)

// BaseModel is our base class for a GORM model.
// The default GORM Model uses int, but we prefer int64
type BaseModel struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

// Run is one invocation of the converter
type Run struct {
	BaseModel
	StartedAt       dbh.IntTime `json:"startedAt"`
	FinishedAt      dbh.IntTime `json:"finishedAt"` // Zero if the run failed, or is still going
	InputRoot       string      `json:"inputRoot"`
	OutputRoot      string      `json:"outputRoot"`
	Seed            int64       `json:"seed"`
	TrainFraction   float64     `json:"trainFraction"`
	ValFraction     float64     `json:"valFraction"`
	TestFraction    float64     `json:"testFraction"`
	PairsConsidered int         `json:"pairsConsidered"`
}

// Example is an image + label file that was written into the output dataset
type Example struct {
	BaseModel
	RunID            int64      `json:"runID"`
	Split            yolo.Split `json:"split"`
	Stem             string     `json:"stem"`
	SourceImage      string     `json:"sourceImage"`      // Absolute path in the SOLO dataset
	SourceAnnotation string     `json:"sourceAnnotation"` // Absolute path in the SOLO dataset
	NumBoxes         int        `json:"numBoxes"`
}
