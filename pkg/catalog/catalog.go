// Package catalog records the provenance of a conversion in an sqlite database:
// which source image became which output stem, in which split.
package catalog

import (
	"fmt"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/dbh"
	"gorm.io/gorm"
)

type Catalog struct {
	log logs.Log
	db  *gorm.DB
}

// Open or create a catalog
func Open(log logs.Log, filename string) (*Catalog, error) {
	db, err := dbh.OpenDB(log, dbh.MakeSqliteConfig(filename), Migrations(log), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open catalog database %v: %w", filename, err)
	}
	return &Catalog{
		log: log,
		db:  db,
	}, nil
}

func (c *Catalog) Close() {
	if sqlDB, err := c.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// BeginRun records the start of a conversion. 'run' is updated with its new ID.
func (c *Catalog) BeginRun(run *Run) error {
	run.ID = 0
	run.StartedAt = dbh.MakeIntTime(time.Now())
	return c.db.Create(run).Error
}

// AddExample records one materialized image/label pair
func (c *Catalog) AddExample(run *Run, ex *Example) error {
	ex.ID = 0
	ex.RunID = run.ID
	return c.db.Create(ex).Error
}

// FinishRun marks a run as successfully completed
func (c *Catalog) FinishRun(run *Run, pairsConsidered int) error {
	run.FinishedAt = dbh.MakeIntTime(time.Now())
	run.PairsConsidered = pairsConsidered
	return c.db.Model(run).Updates(map[string]any{
		"finished_at":      run.FinishedAt,
		"pairs_considered": run.PairsConsidered,
	}).Error
}

// Runs returns all runs, oldest first
func (c *Catalog) Runs() ([]Run, error) {
	runs := []Run{}
	err := c.db.Order("id").Find(&runs).Error
	return runs, err
}

// Examples returns the examples of a run, in the order that they were written
func (c *Catalog) Examples(runID int64) ([]Example, error) {
	examples := []Example{}
	err := c.db.Where("run_id = ?", runID).Order("id").Find(&examples).Error
	return examples, err
}
