package powerup

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

func excellentOptions(n, subType int) []*model.IncreasableItemOption {
	options := make([]*model.IncreasableItemOption, 0, n)
	for i := 0; i < n; i++ {
		options = append(options, constantOption(excellentType, subType, i+1, stats.MaximumHealth, 4))
	}
	return options
}

func combinationRule(repeatable bool, reqs ...model.CombinationBonusRequirement) *model.ItemOptionCombinationBonus {
	return &model.ItemOptionCombinationBonus{
		ID:                   uuid.New(),
		Description:          "test combination",
		Requirements:         reqs,
		Bonus:                model.NewConstantPowerUp(stats.AttackRatePvm, 10, attribute.AddRaw),
		AppliesMultipleTimes: repeatable,
	}
}

func TestResolveCombinationBonuses(t *testing.T) {
	t.Parallel()

	twoExcellent := model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 2}

	tests := []struct {
		name    string
		options []*model.IncreasableItemOption
		rule    *model.ItemOptionCombinationBonus
		want    int
	}{
		{"repeatable rule consumes pairs", excellentOptions(4, 1), combinationRule(true, twoExcellent), 2},
		{"odd option is left over", excellentOptions(5, 1), combinationRule(true, twoExcellent), 2},
		{"non-repeatable rule fires once", excellentOptions(4, 1), combinationRule(false, twoExcellent), 1},
		{"not enough options", excellentOptions(1, 1), combinationRule(true, twoExcellent), 0},
		{"sub option type must match", excellentOptions(4, 2), combinationRule(true, twoExcellent), 0},
		{"rule without requirements fires once", excellentOptions(2, 1), combinationRule(true), 1},
		{
			name:    "one option satisfies two requirements",
			options: excellentOptions(1, 1),
			rule: combinationRule(false,
				model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1},
				model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1},
			),
			want: 1,
		},
		{
			name:    "shared option is consumed once",
			options: excellentOptions(3, 1),
			rule: combinationRule(true,
				model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1},
				model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1},
			),
			want: 3,
		},
		{
			name:    "mixed requirements",
			options: append(excellentOptions(2, 1), constantOption(ancientType, 0, 1, stats.BaseEnergy, 5)),
			rule: combinationRule(true,
				model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1},
				model.CombinationBonusRequirement{OptionType: ancientType, SubOptionType: 0, MinimumCount: 1},
			),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveCombinationBonuses(tt.options, []*model.ItemOptionCombinationBonus{tt.rule}, nil)
			assert.Len(t, got, tt.want)
			for _, def := range got {
				assert.Same(t, tt.rule.Bonus, def)
			}
		})
	}
}

func TestResolveCombinationBonuses_RulesShareThePool(t *testing.T) {
	t.Parallel()

	req := model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 2}
	first := combinationRule(false, req)
	second := combinationRule(false, req)

	got := ResolveCombinationBonuses(excellentOptions(2, 1), []*model.ItemOptionCombinationBonus{first, second}, nil)
	assert.Equal(t, []*model.PowerUpDefinition{first.Bonus, second.Bonus}, got,
		"every rule starts from the full pool")
}

func TestResolveCombinationBonuses_RuleWithoutBonus(t *testing.T) {
	t.Parallel()

	logs, logger := newLogBuffer()
	rule := combinationRule(true, model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 1})
	rule.Bonus = nil

	got := ResolveCombinationBonuses(excellentOptions(3, 1), []*model.ItemOptionCombinationBonus{nil, rule}, logger)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.warnings())
}

func TestResolveCombinationBonuses_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	options := excellentOptions(4, 1)
	snapshot := append([]*model.IncreasableItemOption(nil), options...)

	ResolveCombinationBonuses(options, []*model.ItemOptionCombinationBonus{
		combinationRule(true, model.CombinationBonusRequirement{OptionType: excellentType, SubOptionType: 1, MinimumCount: 3}),
	}, nil)
	assert.Equal(t, snapshot, options)
}

func TestActiveOptions(t *testing.T) {
	t.Parallel()

	item := newTestItem(t, armorDefinition(20, 5), model.ArmorSlot, 0)
	opt := constantOption(excellentType, 1, 1, stats.MaximumHealth, 4)
	item.AddOption(opt, 1)
	item.ItemOptions = append(item.ItemOptions, nil, &model.ItemOptionLink{ID: uuid.New()})

	assert.Equal(t, []*model.IncreasableItemOption{opt}, ActiveOptions([]*model.Item{item}))
}
