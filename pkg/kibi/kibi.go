// Package kibi formats byte counts with binary (1024) units
package kibi

import "fmt"

var units = []string{"KB", "MB", "GB", "TB", "PB"}

// FormatBytes returns a whole number of the largest unit that fits, eg "35 MB"
func FormatBytes(b int64) string {
	if b < 1024 {
		return fmt.Sprintf("%v bytes", b)
	}
	unit := -1
	for b >= 1024 && unit < len(units)-1 {
		b /= 1024
		unit++
	}
	return fmt.Sprintf("%v %v", b, units[unit])
}
