package domain

import "testing"

func TestResultsAddPreservesOrder(t *testing.T) {
	declared := []DeclaredExtension{
		{ID: "golang.go"},
		{ID: "acme.private"},
		{ID: "ms-python.python"},
	}
	resolutions := []Resolution{
		{Available: true, URL: "https://open-vsx.org/api/golang/go/file"},
		{Available: false},
		{Available: true, URL: "https://open-vsx.org/api/ms-python/python/file"},
	}

	results := NewResults()
	for i, ext := range declared {
		results.Add(ext, resolutions[i])
	}

	available, unavailable := results.Counts()
	if available != 2 || unavailable != 1 {
		t.Fatalf("Counts() = (%d, %d), want (2, 1)", available, unavailable)
	}

	if results.Available[0].ID != "golang.go" || results.Available[1].ID != "ms-python.python" {
		t.Errorf("available order = [%s, %s], want declaration order",
			results.Available[0].ID, results.Available[1].ID)
	}
	if results.Available[0].URL != resolutions[0].URL {
		t.Errorf("available URL = %q, want %q", results.Available[0].URL, resolutions[0].URL)
	}
	if results.Unavailable[0].ID != "acme.private" {
		t.Errorf("unavailable[0].ID = %q, want %q", results.Unavailable[0].ID, "acme.private")
	}
}

func TestNewResultsAllocatesBothPartitions(t *testing.T) {
	results := NewResults()

	if results.Available == nil || results.Unavailable == nil {
		t.Error("both partitions should be allocated, not nil")
	}
	if len(results.Available) != 0 || len(results.Unavailable) != 0 {
		t.Error("new snapshot should be empty")
	}
}
