package catalog

import "github.com/skillbase-io/skillbase/pkg/serrors"

var (
	ErrGroupNotFound = serrors.NewError("CATALOG_GROUP_NOT_FOUND", "catalog group not found", "Assessment.Errors.GroupNotFound")
	ErrItemNotFound  = serrors.NewError("CATALOG_ITEM_NOT_FOUND", "catalog item not found", "Assessment.Errors.ItemNotFound")
)

// Domain identifies one of the three parallel competency catalogs.
type Domain string

const (
	DomainBehavioral Domain = "behavioral"
	DomainCore       Domain = "core"
	DomainLeadership Domain = "leadership"
)

func (d Domain) Valid() bool {
	switch d {
	case DomainBehavioral, DomainCore, DomainLeadership:
		return true
	}
	return false
}

// HierarchyDepth is the number of grouping levels above individual items.
func (d Domain) HierarchyDepth() int {
	if d == DomainLeadership {
		return 2
	}
	return 1
}

// Group is a naming container one level above items. For leadership
// catalogs a group has a parent main group; for the flat domains MainGroup
// is empty.
type Group struct {
	ID        uint
	Domain    Domain
	Name      string
	MainGroup string
}

// Item is a single rateable competency.
type Item struct {
	ID      uint
	Domain  Domain
	GroupID uint
	Name    string
}

// GroupPath returns the grouping key path for an item within its group:
// ["group"] for flat domains, ["main group", "child group"] for leadership.
func (g *Group) GroupPath() []string {
	if g.MainGroup != "" {
		return []string{g.MainGroup, g.Name}
	}
	return []string{g.Name}
}
