package utils

import "sync/atomic"

var runID = uint64(0)

// GetRunID hands out process-unique ids for tracing workload runs.
func GetRunID() uint64 {
	return atomic.AddUint64(&runID, 1)
}
