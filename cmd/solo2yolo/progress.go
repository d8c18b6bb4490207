package main

import (
	"time"

	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/solo2yolo/pkg/convert"
	"github.com/cyclopcam/solo2yolo/pkg/yolo"
)

// newProgressLogger reports progress at most every few seconds, plus once at the end of each split
func newProgressLogger(log logs.Log) convert.ProgressFunc {
	const interval = 3 * time.Second
	last := time.Now()
	return func(s yolo.Split, done, total int) {
		if done != total && time.Since(last) < interval {
			return
		}
		last = time.Now()
		log.Infof("%5v: %v / %v", s, done, total)
	}
}
