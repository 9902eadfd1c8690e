package importer

import "context"

// Result summarizes one CSV import.
type Result struct {
	Total    int
	Imported int
	Skipped  int // rows colliding with an already imported day
	Failed   int
}

//go:generate go run go.uber.org/mock/mockgen -source=importer.go -destination=mocks/mock.go
type Client interface {
	// ImportCSV loads a content plan from a CSV file into the post store.
	// Expected header: day,caption,hook,cta,pillar,format,asset_id
	ImportCSV(ctx context.Context, path string) (*Result, error)
}
