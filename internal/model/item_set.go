package model

import (
	"sort"

	"github.com/google/uuid"
)

// ItemSetGroup: набор предметов, дающий бонусы при одновременном ношении
// (ancient sets, full armor sets, ...).
type ItemSetGroup struct {
	ID   uuid.UUID
	Name string

	// MinimumItemCount: минимум предметов для активации частичного бонуса.
	MinimumItemCount int

	// CountDistinct: считать только разные ItemDefinition (два одинаковых
	// кольца считаются как одно).
	CountDistinct bool

	// AlwaysApplies: бонус действует для любого предмета, объявившего группу
	// в PossibleItemSetGroups, без явной ссылки на предмете.
	AlwaysApplies bool

	// SetLevel > 0: предметы ниже этого уровня не считаются.
	SetLevel int

	// Options: бонусы набора; порядок выдачи задаётся Number.
	Options []*IncreasableItemOption
	Items   []*ItemOfItemSet
}

// TotalItems returns the number of member items of the group.
func (g *ItemSetGroup) TotalItems() int {
	return len(g.Items)
}

// OptionsByNumber returns the options ordered by ascending Number.
// Nil options sort last. The group itself is not modified.
func (g *ItemSetGroup) OptionsByNumber() []*IncreasableItemOption {
	sorted := make([]*IncreasableItemOption, len(g.Options))
	copy(sorted, g.Options)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i] == nil || sorted[j] == nil {
			return sorted[j] == nil && sorted[i] != nil
		}
		return sorted[i].Number < sorted[j].Number
	})
	return sorted
}

// ItemOfItemSet links an item definition to a set group. Items reference
// these links to declare membership.
type ItemOfItemSet struct {
	ID             uuid.UUID
	ItemSetGroup   *ItemSetGroup
	ItemDefinition *ItemDefinition

	// BonusOption: ancient bonus option (stat bonus) of the member item.
	BonusOption *IncreasableItemOption
}
