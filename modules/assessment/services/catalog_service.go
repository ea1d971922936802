package services

import (
	"context"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

type CatalogService struct {
	repo catalog.Repository
}

func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) GetGroups(ctx context.Context, domain catalog.Domain) ([]*catalog.Group, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*catalog.Group, error) {
		return s.repo.GetGroups(txCtx, domain)
	})
}

func (s *CatalogService) GetItems(ctx context.Context, domain catalog.Domain) ([]*catalog.Item, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*catalog.Item, error) {
		return s.repo.GetItems(txCtx, domain)
	})
}

// GetItem looks an item up and verifies it belongs to the requested domain,
// so a valid id from another catalog does not leak across.
func (s *CatalogService) GetItem(ctx context.Context, domain catalog.Domain, id uint) (*catalog.Item, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*catalog.Item, error) {
		item, err := s.repo.GetItemByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		if item.Domain != domain {
			return nil, catalog.ErrItemNotFound
		}
		return item, nil
	})
}

// GroupItems lists the items of one group, rejecting groups from another
// domain's catalog.
func (s *CatalogService) GroupItems(ctx context.Context, domain catalog.Domain, groupID uint) ([]*catalog.Item, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*catalog.Item, error) {
		group, err := s.repo.GetGroupByID(txCtx, groupID)
		if err != nil {
			return nil, err
		}
		if group.Domain != domain {
			return nil, catalog.ErrGroupNotFound
		}
		return s.repo.GetItemsByGroup(txCtx, group.ID)
	})
}

// GroupPaths resolves every item of the domain to its grouping path, the
// shape the scoring engine aggregates by.
func (s *CatalogService) GroupPaths(ctx context.Context, domain catalog.Domain) (map[uint][]string, map[uint]string, error) {
	type result struct {
		paths map[uint][]string
		names map[uint]string
	}
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) (result, error) {
		groups, err := s.repo.GetGroups(txCtx, domain)
		if err != nil {
			return result{}, err
		}
		byID := make(map[uint]*catalog.Group, len(groups))
		for _, g := range groups {
			byID[g.ID] = g
		}
		items, err := s.repo.GetItems(txCtx, domain)
		if err != nil {
			return result{}, err
		}
		paths := make(map[uint][]string, len(items))
		names := make(map[uint]string, len(items))
		for _, item := range items {
			names[item.ID] = item.Name
			if g, ok := byID[item.GroupID]; ok {
				paths[item.ID] = g.GroupPath()
			}
		}
		return result{paths: paths, names: names}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out.paths, out.names, nil
}
