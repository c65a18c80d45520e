package powerup

import (
	"errors"
	"fmt"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
)

// SetPowerUps returns the set bonus and option combination bonus handles of
// the equipped items.
//
// A bonus definition that is not initialized is a hard error for that
// definition only: the handles of every other bonus are still returned
// together with the joined error.
func (f *Factory) SetPowerUps(equipped []*model.Item, holder *attribute.Holder, cfg *model.GameConfiguration) ([]*attribute.PowerUp, error) {
	active := ActiveItems(equipped)

	definitions, errs := resolveSetBonuses(active)

	var rules []*model.ItemOptionCombinationBonus
	if cfg != nil {
		rules = cfg.ItemOptionCombinationBonuses
	}
	definitions = append(definitions, ResolveCombinationBonuses(ActiveOptions(active), rules, f.logger)...)

	var result []*attribute.PowerUp
	for _, def := range definitions {
		handles, err := FromDefinition(def, holder)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, handles...)
	}
	return result, errors.Join(errs...)
}

// ActiveItems returns the items with durability > 0.
func ActiveItems(items []*model.Item) []*model.Item {
	active := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if item != nil && item.IsActive() {
			active = append(active, item)
		}
	}
	return active
}

// ResolveSetBonuses returns the bonus definitions granted by set groups for
// the active items.
//
// Errors are returned per group (joined); groups without errors still
// contribute their bonuses.
func ResolveSetBonuses(active []*model.Item) ([]*model.PowerUpDefinition, error) {
	defs, errs := resolveSetBonuses(active)
	return defs, errors.Join(errs...)
}

func resolveSetBonuses(active []*model.Item) ([]*model.PowerUpDefinition, []error) {
	var (
		result []*model.PowerUpDefinition
		errs   []error
	)
	for _, group := range candidateGroups(active) {
		options := groupBonusOptions(group, active)
		defs := make([]*model.PowerUpDefinition, 0, len(options))
		var groupErr error
		for _, o := range options {
			if o == nil || o.PowerUpDefinition == nil {
				groupErr = fmt.Errorf("%w: bonus option of set %s (%s)", ErrNotInitialized, group.Name, group.ID)
				break
			}
			defs = append(defs, o.PowerUpDefinition)
		}
		if groupErr != nil {
			errs = append(errs, groupErr)
			continue
		}
		result = append(result, defs...)
	}
	return result, errs
}

// candidateGroups: always-applying группы из определений активных предметов,
// затем группы по ссылкам на предметах; без повторов, в порядке появления.
func candidateGroups(active []*model.Item) []*model.ItemSetGroup {
	seen := make(map[*model.ItemSetGroup]struct{})
	var groups []*model.ItemSetGroup
	add := func(g *model.ItemSetGroup) {
		if g == nil {
			return
		}
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		groups = append(groups, g)
	}

	for _, item := range active {
		if item.Definition == nil {
			continue
		}
		for _, g := range item.Definition.PossibleItemSetGroups {
			if g != nil && g.AlwaysApplies {
				add(g)
			}
		}
	}
	for _, item := range active {
		for _, link := range item.ItemSetGroups {
			if link != nil {
				add(link.ItemSetGroup)
			}
		}
	}
	return groups
}

// groupBonusOptions applies the completion policy of one group.
func groupBonusOptions(group *model.ItemSetGroup, active []*model.Item) []*model.IncreasableItemOption {
	members := itemsOfGroup(group, active)

	setMustBeComplete := group.MinimumItemCount == group.TotalItems()
	if group.SetLevel > 0 && setMustBeComplete && allAboveLevel(members, group.SetLevel) {
		// Все предметы выше уровня сета: бонус даст группа более высокого уровня.
		return nil
	}

	itemCount := len(members)
	if group.CountDistinct {
		distinct := make(map[*model.ItemDefinition]struct{}, len(members))
		for _, item := range members {
			distinct[item.Definition] = struct{}{}
		}
		itemCount = len(distinct)
	}

	ordered := group.OptionsByNumber()
	if itemCount == group.TotalItems() {
		return ordered
	}
	if itemCount >= group.MinimumItemCount {
		take := itemCount - 1
		if take <= 0 {
			return nil
		}
		if take > len(ordered) {
			take = len(ordered)
		}
		return ordered[:take]
	}
	return nil
}

func itemsOfGroup(group *model.ItemSetGroup, active []*model.Item) []*model.Item {
	var members []*model.Item
	for _, item := range active {
		if !belongsTo(item, group) {
			continue
		}
		if group.SetLevel != 0 && item.Level < group.SetLevel {
			continue
		}
		members = append(members, item)
	}
	return members
}

func belongsTo(item *model.Item, group *model.ItemSetGroup) bool {
	if group.AlwaysApplies && item.Definition != nil {
		for _, g := range item.Definition.PossibleItemSetGroups {
			if g == group {
				return true
			}
		}
	}
	for _, link := range item.ItemSetGroups {
		if link != nil && link.ItemSetGroup == group {
			return true
		}
	}
	return false
}

func allAboveLevel(items []*model.Item, level int) bool {
	for _, item := range items {
		if item.Level <= level {
			return false
		}
	}
	return true
}
