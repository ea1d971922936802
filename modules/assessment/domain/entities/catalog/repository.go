package catalog

import "context"

type Repository interface {
	GetGroups(ctx context.Context, domain Domain) ([]*Group, error)
	GetGroupByID(ctx context.Context, id uint) (*Group, error)
	GetItems(ctx context.Context, domain Domain) ([]*Item, error)
	GetItemByID(ctx context.Context, id uint) (*Item, error)
	GetItemsByGroup(ctx context.Context, groupID uint) ([]*Item, error)
}
