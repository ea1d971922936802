package scale

import "context"

type Repository interface {
	GetByDomain(ctx context.Context, domain string) (*Scale, error)
	Save(ctx context.Context, s *Scale) error
}
