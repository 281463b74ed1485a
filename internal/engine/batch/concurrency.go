// internal/engine/batch/concurrency.go
package batch

import (
	"runtime"
)

const (
	// browserFootprintMB is a rough resident size of one headless Chrome
	browserFootprintMB = 300
	maxBrowsers        = 4
)

// OptimalConcurrency returns how many browsers may run side by side. Each
// search owns a whole Chrome, so the bound is much lower than for plain HTTP.
func OptimalConcurrency() int {
	optimal := runtime.NumCPU() / 2
	if optimal < 1 {
		optimal = 1
	}
	if optimal > maxBrowsers {
		optimal = maxBrowsers
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	availMB := (m.Sys - m.Alloc) / 1024 / 1024
	maxByMemory := int(availMB / browserFootprintMB)

	if maxByMemory > 0 && maxByMemory < optimal {
		return maxByMemory
	}
	return optimal
}
