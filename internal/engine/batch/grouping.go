// internal/engine/batch/grouping.go
package batch

import (
	"strings"

	"github.com/law-makers/stageradar/pkg/models"
)

// UniqueRequests drops requests identical to an earlier one, ignoring case and
// surrounding spaces. Blank terms are dropped too.
func UniqueRequests(requests []models.SearchRequest) []models.SearchRequest {
	seen := make(map[string]bool, len(requests))
	out := make([]models.SearchRequest, 0, len(requests))

	for _, req := range requests {
		req.Term = strings.TrimSpace(req.Term)
		if req.Term == "" {
			continue
		}
		key := strings.ToLower(req.Term + "\x00" + strings.TrimSpace(req.LocationFilter) + "\x00" + string(req.Contract))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, req)
	}

	return out
}
