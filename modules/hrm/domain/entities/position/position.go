package position

import (
	"context"
	"time"

	"github.com/skillbase-io/skillbase/pkg/serrors"
)

var ErrNotFound = serrors.NewError("POSITION_NOT_FOUND", "position not found", "HRM.Errors.PositionNotFound")

type Position struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FindParams struct {
	ID     uint
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]*Position, error)
	GetByID(ctx context.Context, id uint) (*Position, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*Position, error)
	Create(ctx context.Context, data *Position) error
	Update(ctx context.Context, data *Position) error
	Delete(ctx context.Context, id uint) error
}
