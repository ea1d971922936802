package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	catalogGroupFindQuery = `SELECT id, domain, name, main_group FROM catalog_groups`
	catalogItemFindQuery  = `SELECT id, domain, group_id, name FROM catalog_items`
)

type CatalogRepository struct{}

func NewCatalogRepository() catalog.Repository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) GetGroups(ctx context.Context, domain catalog.Domain) ([]*catalog.Group, error) {
	query := catalogGroupFindQuery + " WHERE domain = $1 ORDER BY main_group, name"
	return r.queryGroups(ctx, query, string(domain))
}

func (r *CatalogRepository) GetGroupByID(ctx context.Context, id uint) (*catalog.Group, error) {
	query := catalogGroupFindQuery + " WHERE id = $1"
	groups, err := r.queryGroups(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, catalog.ErrGroupNotFound
	}
	return groups[0], nil
}

func (r *CatalogRepository) GetItems(ctx context.Context, domain catalog.Domain) ([]*catalog.Item, error) {
	query := catalogItemFindQuery + " WHERE domain = $1 ORDER BY id"
	return r.queryItems(ctx, query, string(domain))
}

func (r *CatalogRepository) GetItemByID(ctx context.Context, id uint) (*catalog.Item, error) {
	query := catalogItemFindQuery + " WHERE id = $1"
	items, err := r.queryItems(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, catalog.ErrItemNotFound
	}
	return items[0], nil
}

func (r *CatalogRepository) GetItemsByGroup(ctx context.Context, groupID uint) ([]*catalog.Item, error) {
	query := catalogItemFindQuery + " WHERE group_id = $1 ORDER BY id"
	return r.queryItems(ctx, query, groupID)
}

func (r *CatalogRepository) queryGroups(ctx context.Context, query string, args ...interface{}) ([]*catalog.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var groups []*catalog.Group
	for rows.Next() {
		var g catalog.Group
		if err := rows.Scan(&g.ID, &g.Domain, &g.Name, &g.MainGroup); err != nil {
			return nil, errors.Wrap(err, "failed to scan catalog group")
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return groups, nil
}

func (r *CatalogRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*catalog.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var items []*catalog.Item
	for rows.Next() {
		var item catalog.Item
		if err := rows.Scan(&item.ID, &item.Domain, &item.GroupID, &item.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan catalog item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return items, nil
}
