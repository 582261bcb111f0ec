package fetcher

import (
	"context"

	"agriwatch/internal/dataset"
)

// TransDataFetcher retrieves raw transaction records from the agricultural
// open-data platform, either the full dataset or a single crop.
type TransDataFetcher interface {
	FetchAll(ctx context.Context) ([]dataset.RawRecord, error)
	FetchCrop(ctx context.Context, cropName string) ([]dataset.RawRecord, error)
}
