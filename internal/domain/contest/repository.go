package contest

import "context"

// Repository describes contest persistence needs from use cases.
// Contest configuration is read-mostly: the core never rewrites point
// values or the jury roster after creation.
type Repository interface {
	Create(ctx context.Context, c Contest) error
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	ListPublic(ctx context.Context) ([]Contest, error)
	ListIDs(ctx context.Context) ([]string, error)
}
