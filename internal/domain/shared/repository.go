package shared

import "context"

// Repository persists one aggregate type. FindByID returns ErrNotFound for a
// missing row; Save inserts when the entity is new and otherwise updates
// guarded by Version.
type Repository[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

// EagerRepository also loads an aggregate's to-one and to-many relations.
type EagerRepository[T any] interface {
	Repository[T]
	FindByIDWithRelations(ctx context.Context, id int64) (*T, error)
	FindAllWithRelations(ctx context.Context, filter Filter) ([]T, error)
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter selects a page of rows. Filters holds per-repository column
// criteria; keys a repository does not know are ignored.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]any
}

// DefaultFilter is the first page of 20 ordered by id
func DefaultFilter() Filter {
	return Filter{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		OrderBy:  "id",
		OrderDir: "asc",
		Filters:  map[string]any{},
	}
}

// Offset is the number of rows before the filter's page
func (f Filter) Offset() int {
	return max(f.Page-1, 0) * f.PageSize
}

// TotalPages is the number of pages of pageSize needed for total rows
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
