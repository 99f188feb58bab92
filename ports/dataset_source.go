package ports

import (
	"context"

	"homerange/domain/dataset"
)

// DatasetSource loads a home-range table from some backing store
type DatasetSource interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
	Name() string
}
