package records

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Query(ctx context.Context, stmt Statement) ([]Record, error)
	Count(ctx context.Context, stmt Statement) (int64, error)
	Lookup(ctx context.Context, stmt Statement) ([]LookupItem, error)
	NextID(ctx context.Context, entity Entity) (int64, error)
	// Insert stores the column values and returns the row's primary key.
	Insert(ctx context.Context, entity Entity, columns map[string]interface{}) (int64, error)
	Update(ctx context.Context, entity Entity, id int64, columns map[string]interface{}) (bool, error)
	Exists(ctx context.Context, entity Entity, id int64) (bool, error)
	Delete(ctx context.Context, entity Entity, id int64) (bool, error)
	AssignParcels(ctx context.Context, memberID int64, parcelIDs []int64) error
}
