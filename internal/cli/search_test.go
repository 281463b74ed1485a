package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/law-makers/stageradar/pkg/models"
)

func TestOutputPath(t *testing.T) {
	if got := outputPath("out.xlsx", "data", false); got != "out.xlsx" {
		t.Errorf("single search should keep the path, got %q", got)
	}
	if got := outputPath("dir/out.csv", "Data Analyst / BI", true); got != "dir/out_data-analyst-bi.csv" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"data":         "data",
		"  Data  Eng ": "data-eng",
		"C++ / Go!":    "c-go",
		"développeur":  "d-veloppeur",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchFlagsRequests(t *testing.T) {
	f := searchFlags{location: "Paris", contract: "alternance"}
	reqs, err := f.requests([]string{"data", "DATA", "design"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].Contract != models.ContractApprenticeship || reqs[0].LocationFilter != "Paris" {
		t.Errorf("unexpected request %+v", reqs[0])
	}

	if _, err := (&searchFlags{contract: "freelance"}).requests([]string{"data"}); err == nil {
		t.Error("expected error for unknown contract")
	}
	if _, err := (&searchFlags{}).requests([]string{"  "}); err == nil {
		t.Error("expected error for blank terms")
	}
}

func TestStopNotice(t *testing.T) {
	req := models.SearchRequest{Term: "data"}

	if msg, warn := stopNotice(&models.SearchResult{Request: req, Stop: models.StopNoListings}); msg != "" || warn {
		t.Errorf("clean stop should be silent, got %q", msg)
	}

	endOfBoard := &models.SearchResult{Request: req, Stop: models.StopPageTimeout, Pages: 4, Err: errors.New("timeout")}
	if msg, warn := stopNotice(endOfBoard); warn || !strings.Contains(msg, "page 4") {
		t.Errorf("timeout after the first page should be informational, got %q (warn=%v)", msg, warn)
	}

	for _, res := range []*models.SearchResult{
		{Request: req, Stop: models.StopNavigationFailed, Pages: 3, Err: errors.New("net")},
		{Request: req, Stop: models.StopCancelled, Pages: 2, Err: context.Canceled},
	} {
		if msg, warn := stopNotice(res); !warn || !strings.Contains(msg, string(res.Stop)) {
			t.Errorf("%s should warn, got %q (warn=%v)", res.Stop, msg, warn)
		}
	}
}
