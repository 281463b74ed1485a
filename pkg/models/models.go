package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Sentinel values stored instead of leaving a listing field empty
const (
	LinkUnavailable     = "link unavailable"
	LocationUnspecified = "unspecified"
)

// RawListing is one listing container as read from a results page
type RawListing struct {
	Text     string `json:"text"`
	Link     string `json:"link"`
	Location string `json:"location"`
}

// Columns is the final table layout. link is always last.
var Columns = []string{"company", "title", "place", "description", "lastNonEmptyInfo", "link"}

// Record is one row of the normalized table
type Record struct {
	Index            int    `json:"index"`
	Company          string `json:"company"`
	Title            string `json:"title"`
	Place            string `json:"place"`
	Description      string `json:"description"`
	LastNonEmptyInfo string `json:"lastNonEmptyInfo"`
	Link             string `json:"link"`
}

// Values returns the cells of the record in Columns order
func (r Record) Values() []string {
	return []string{r.Company, r.Title, r.Place, r.Description, r.LastNonEmptyInfo, r.Link}
}

// Table is the normalized result of one search
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ContractType is the contract_type refinement sent to the job board
type ContractType string

const (
	ContractInternship     ContractType = "internship"
	ContractApprenticeship ContractType = "apprenticeship"
	ContractFullTime       ContractType = "full_time"
	ContractTemporary      ContractType = "temporary"
)

// ParseContractType accepts the board values as well as the French labels
// (Stage, Alternance, CDI, CDD). An empty string maps to internship.
func ParseContractType(s string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "internship", "stage":
		return ContractInternship, nil
	case "apprenticeship", "alternance":
		return ContractApprenticeship, nil
	case "full_time", "cdi":
		return ContractFullTime, nil
	case "temporary", "cdd":
		return ContractTemporary, nil
	}
	return "", fmt.Errorf("unknown contract type %q (want internship, apprenticeship, full_time or temporary)", s)
}

// SearchRequest holds the caller inputs for one crawl
type SearchRequest struct {
	Term           string       `json:"term"`
	LocationFilter string       `json:"location,omitempty"`
	Contract       ContractType `json:"contract"`
}

// StopReason records why the pagination loop ended
type StopReason string

const (
	StopNoListings       StopReason = "no_listings"
	StopStagnation       StopReason = "stagnation"
	StopPageTimeout      StopReason = "page_timeout"
	StopNavigationFailed StopReason = "navigation_failed"
	StopCancelled        StopReason = "cancelled"
)

// Outcome is what the caller is told about a search
type Outcome string

const (
	OutcomeResults   Outcome = "results"
	OutcomeNoResults Outcome = "no_results"
	OutcomeError     Outcome = "error"
)

// SearchResult is the end product of one search request
type SearchResult struct {
	Request  SearchRequest `json:"request"`
	Table    *Table        `json:"table"`
	Pages    int           `json:"pages"`
	Stop     StopReason    `json:"stop"`
	Outcome  Outcome       `json:"outcome"`
	Skipped  int           `json:"skipped"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// MarshalJSON adds the error message, if any, as "error"
func (r SearchResult) MarshalJSON() ([]byte, error) {
	type result SearchResult
	out := struct {
		result
		Error string `json:"error,omitempty"`
	}{result: result(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
