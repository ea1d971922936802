package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/testutils"
)

func newCatalogFixture() *CatalogService {
	return NewCatalogService(&mockCatalogRepo{
		groups: []*catalog.Group{
			{ID: 1, Domain: catalog.DomainCore, Name: "Communication"},
			{ID: 2, Domain: catalog.DomainLeadership, Name: "Coaching", MainGroup: "People"},
		},
		items: []*catalog.Item{
			{ID: 1, Domain: catalog.DomainCore, GroupID: 1, Name: "Listening"},
			{ID: 2, Domain: catalog.DomainCore, GroupID: 1, Name: "Writing"},
			{ID: 3, Domain: catalog.DomainLeadership, GroupID: 2, Name: "Feedback"},
		},
	})
}

func TestCatalogService_GroupItems(t *testing.T) {
	svc := newCatalogFixture()

	items, err := svc.GroupItems(testutils.TxContext(), catalog.DomainCore, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestCatalogService_GroupItems_WrongDomain(t *testing.T) {
	svc := newCatalogFixture()

	// group 2 exists but belongs to the leadership catalog
	_, err := svc.GroupItems(testutils.TxContext(), catalog.DomainCore, 2)
	require.ErrorIs(t, err, catalog.ErrGroupNotFound)

	_, err = svc.GroupItems(testutils.TxContext(), catalog.DomainCore, 99)
	require.ErrorIs(t, err, catalog.ErrGroupNotFound)
}

func TestCatalogService_GetItem(t *testing.T) {
	svc := newCatalogFixture()

	item, err := svc.GetItem(testutils.TxContext(), catalog.DomainCore, 1)
	require.NoError(t, err)
	require.Equal(t, "Listening", item.Name)

	_, err = svc.GetItem(testutils.TxContext(), catalog.DomainCore, 3)
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestCatalogService_GroupPaths(t *testing.T) {
	svc := newCatalogFixture()

	paths, names, err := svc.GroupPaths(testutils.TxContext(), catalog.DomainLeadership)
	require.NoError(t, err)
	require.Equal(t, []string{"People", "Coaching"}, paths[3])
	require.Equal(t, "Feedback", names[3])
}
