package powerup

import (
	"log/slog"

	"github.com/udisondev/mugo/internal/model"
)

// ActiveOptions flattens the options of all active items. Links without an
// option are dropped (the item factory already reports them).
func ActiveOptions(active []*model.Item) []*model.IncreasableItemOption {
	var options []*model.IncreasableItemOption
	for _, item := range active {
		for _, link := range item.ItemOptions {
			if link != nil && link.ItemOption != nil {
				options = append(options, link.ItemOption)
			}
		}
	}
	return options
}

// ResolveCombinationBonuses matches the rules against a consumable pool of
// options. Every rule starts from the full pool of active options; each
// successful match consumes the matched options and yields the rule's bonus.
// Repeatable rules keep matching until an attempt fails.
func ResolveCombinationBonuses(options []*model.IncreasableItemOption, rules []*model.ItemOptionCombinationBonus, logger *slog.Logger) []*model.PowerUpDefinition {
	if logger == nil {
		logger = slog.Default()
	}

	var result []*model.PowerUpDefinition
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if rule.Bonus == nil {
			logger.Warn("combination bonus has no bonus definition",
				"combination", rule.ID, "description", rule.Description)
			continue
		}

		pool := make([]*model.IncreasableItemOption, len(options))
		copy(pool, options)

		for {
			remaining, consumed, ok := match(rule, pool)
			if !ok {
				break
			}
			result = append(result, rule.Bonus)
			pool = remaining

			// Правило без потребления опций сработало бы бесконечно.
			if !rule.AppliesMultipleTimes || consumed == 0 {
				break
			}
		}
	}
	return result
}

// match tries to satisfy every requirement of rule from pool. Each requirement
// looks at the whole pool, so one option may serve several requirements of the
// same attempt. On success it returns the pool without the matched options.
func match(rule *model.ItemOptionCombinationBonus, pool []*model.IncreasableItemOption) ([]*model.IncreasableItemOption, int, bool) {
	var matched []*model.IncreasableItemOption
	for _, req := range rule.Requirements {
		found := 0
		for _, option := range pool {
			if found >= req.MinimumCount {
				break
			}
			if req.Matches(option) {
				matched = append(matched, option)
				found++
			}
		}
		if found < req.MinimumCount {
			return pool, 0, false
		}
	}

	remaining := make([]*model.IncreasableItemOption, len(pool))
	copy(remaining, pool)
	consumed := 0
	for _, option := range matched {
		// Удаляется первое вхождение; повторно совпавшая опция уже удалена.
		for i, o := range remaining {
			if o == option {
				remaining = append(remaining[:i], remaining[i+1:]...)
				consumed++
				break
			}
		}
	}
	return remaining, consumed, true
}
