package powerup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

func TestPowerUps_SkipConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(item *model.Item)
		wantWarns int
	}{
		{"no definition", func(i *model.Item) { i.Definition = nil }, 1},
		{"broken", func(i *model.Item) { i.Durability = 0 }, 0},
		{"storage slot", func(i *model.Item) { i.ItemSlot = model.LastEquippableItemSlot + 1 }, 0},
		{"negative slot", func(i *model.Item) { i.ItemSlot = -1 }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logs, logger := newLogBuffer()
			item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 0)
			tt.mutate(item)

			handles, err := newTestFactory(logger).PowerUps(item, attribute.NewHolder())
			require.NoError(t, err)
			assert.Empty(t, handles)
			assert.Equal(t, tt.wantWarns, logs.warnings())
		})
	}
}

func TestPowerUps_BaseAttributes(t *testing.T) {
	t.Parallel()

	item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 0)
	handles, err := newTestFactory(nil).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, handles, 1)

	assert.Equal(t, stats.DefenseBase, handles[0].Target())
	assert.Equal(t, attribute.AddRaw, handles[0].AggregateType())
	assert.Equal(t, float32(10), handles[0].Value())
	assert.False(t, handles[0].Attached(), "factory must not attach")
}

func TestPowerUps_LevelBonusTable(t *testing.T) {
	t.Parallel()

	def := armorDefinition(28, 10)
	def.BasePowerUpAttributes[0].BonusPerLevelTable = &model.LevelBonusTable{
		Name: "armor defense",
		BonusPerLevel: []model.LevelBonus{
			{Level: 1, AdditionalValue: 3},
			{Level: 3, AdditionalValue: 9},
		},
	}

	tests := []struct {
		level int
		want  float32
	}{
		{0, 10}, // нет уровня в таблице: только база
		{1, 13},
		{3, 19},
	}
	for _, tt := range tests {
		item := newTestItem(t, def, model.ArmorSlot, tt.level)
		handles, err := newTestFactory(nil).PowerUps(item, attribute.NewHolder())
		require.NoError(t, err)
		require.Len(t, handles, 1)
		assert.Equal(t, tt.want, handles[0].Value(), "level %d", tt.level)
	}
}

func TestPowerUps_AggregateTypeOfBaseEntry(t *testing.T) {
	t.Parallel()

	def := armorDefinition(28, 10)
	def.BasePowerUpAttributes = append(def.BasePowerUpAttributes, &model.ItemBasePowerUpDefinition{
		TargetAttribute: stats.DefenseIncreaseWithEquippedShield,
		BaseValue:       1.2,
		AggregateType:   attribute.Multiplicate,
	})

	handles, err := newTestFactory(nil).PowerUps(newTestItem(t, def, model.ArmorSlot, 0), attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, attribute.Multiplicate, handles[1].AggregateType())
}

func TestPowerUps_RightWieldWeaponRemap(t *testing.T) {
	t.Parallel()

	def := swordDefinition(10, 15)
	def.BasePowerUpAttributes = append(def.BasePowerUpAttributes, base(stats.StaffRise, 5))

	right, err := newTestFactory(nil).PowerUps(newTestItem(t, def, model.RightHandSlot, 0), attribute.NewHolder())
	require.NoError(t, err)

	targets := make([]*attribute.Definition, 0, len(right))
	for _, h := range right {
		targets = append(targets, h.Target())
	}
	assert.Equal(t, []*attribute.Definition{
		stats.MinPhysBaseDmgByRightWeapon,
		stats.MaxPhysBaseDmgByRightWeapon,
		stats.DoubleWieldWeaponCount,
	}, targets, "staff rise dropped, damage remapped")

	left, err := newTestFactory(nil).PowerUps(newTestItem(t, def, model.LeftHandSlot, 0), attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, handlesOf(left, stats.MinimumPhysBaseDmgByWeapon), 1)
	assert.Len(t, handlesOf(left, stats.StaffRise), 1)
	assert.Empty(t, handlesOf(left, stats.MinPhysBaseDmgByRightWeapon))
}

func TestPowerUps_RightHandWithoutMarkerKeepsTargets(t *testing.T) {
	t.Parallel()

	def := swordDefinition(10, 15)
	def.BasePowerUpAttributes = def.BasePowerUpAttributes[:2] // без DoubleWieldWeaponCount

	handles, err := newTestFactory(nil).PowerUps(newTestItem(t, def, model.RightHandSlot, 0), attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, handlesOf(handles, stats.MinimumPhysBaseDmgByWeapon), 1)
	assert.Empty(t, handlesOf(handles, stats.MinPhysBaseDmgByRightWeapon))
}

func TestPowerUps_OptionWithoutLevelDefinition(t *testing.T) {
	t.Parallel()

	logs, logger := newLogBuffer()
	option := constantOption(optionType, 0, 1, stats.DefenseRatePvm, 4)
	option.LevelDependentOptions = []*model.ItemOptionOfLevel{
		{Level: 1, PowerUpDefinition: model.NewConstantPowerUp(stats.DefenseRatePvm, 4, attribute.AddRaw)},
	}

	item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 5)
	item.AddOption(option, 3)

	handles, err := newTestFactory(logger).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)
	assert.Empty(t, handlesOf(handles, stats.DefenseRatePvm))
	assert.Equal(t, 1, logs.warnings())
}

func TestPowerUps_ExceptionSkillKeepsOption(t *testing.T) {
	t.Parallel()

	logs, logger := newLogBuffer()
	def := armorDefinition(28, 0)
	def.SkillNumber = model.DinorantSkillNumber
	item := newTestItem(t, def, model.PetSlot, 0)
	item.AddOption(constantOption(optionType, 0, 1, stats.AttackSpeed, 5), 2)

	handles, err := newTestFactory(logger).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, handlesOf(handles, stats.AttackSpeed), 1)
	assert.Equal(t, float32(5), handlesOf(handles, stats.AttackSpeed)[0].Value())
	assert.Zero(t, logs.warnings())
}

func TestPowerUps_OptionLevelSources(t *testing.T) {
	t.Parallel()

	levels := []*model.ItemOptionOfLevel{
		{Level: 1, PowerUpDefinition: model.NewConstantPowerUp(stats.DefenseRatePvm, 4, attribute.AddRaw)},
		{Level: 2, PowerUpDefinition: model.NewConstantPowerUp(stats.DefenseRatePvm, 8, attribute.AddRaw)},
		{Level: 4, PowerUpDefinition: model.NewConstantPowerUp(stats.DefenseRatePvm, 16, attribute.AddRaw)},
	}

	byLink := constantOption(optionType, 0, 1, stats.DefenseRatePvm, 4)
	byLink.LevelDependentOptions = levels

	byItem := constantOption(optionType, 0, 1, stats.DefenseRatePvm, 4)
	byItem.LevelType = model.LevelTypeItemLevel
	byItem.LevelDependentOptions = levels

	item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 4)
	item.AddOption(byLink, 2)
	item.AddOption(byItem, 1) // уровень ссылки игнорируется

	handles, err := newTestFactory(nil).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)

	var values []float32
	for _, h := range handlesOf(handles, stats.DefenseRatePvm) {
		values = append(values, h.Value())
	}
	assert.Equal(t, []float32{8, 16}, values)
}

func TestPowerUps_InactiveHarmonyTier(t *testing.T) {
	t.Parallel()

	harmony := constantOption(harmonyType, 1, 1, stats.MinimumPhysBaseDmgByWeapon, 2)
	harmony.LevelDependentOptions = []*model.ItemOptionOfLevel{
		{Level: 1, RequiredItemLevel: 0, PowerUpDefinition: model.NewConstantPowerUp(stats.AttackSpeed, 2, attribute.AddRaw)},
		{Level: 5, RequiredItemLevel: 9, PowerUpDefinition: model.NewConstantPowerUp(stats.AttackSpeed, 7, attribute.AddRaw)},
	}

	low := newTestItem(t, swordDefinition(5, 8), model.LeftHandSlot, 6)
	low.AddOption(harmony, 5)
	handles, err := newTestFactory(nil).PowerUps(low, attribute.NewHolder())
	require.NoError(t, err)
	assert.Empty(t, handlesOf(handles, stats.AttackSpeed), "required item level 9 > 6")

	high := newTestItem(t, swordDefinition(5, 8), model.LeftHandSlot, 9)
	high.AddOption(harmony, 5)
	handles, err = newTestFactory(nil).PowerUps(high, attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, handlesOf(handles, stats.AttackSpeed), 1)
	assert.Equal(t, float32(7), handlesOf(handles, stats.AttackSpeed)[0].Value())
}

func TestPowerUps_RightHandWizardryOptionIsInert(t *testing.T) {
	t.Parallel()

	wizardry := constantOption(excellentType, 3, 1, stats.WizardryBaseDmg, 2)
	life := constantOption(optionType, 0, 1, stats.MaximumHealth, 4)

	staff := &model.ItemDefinition{
		ID:        uuid.New(),
		Group:     model.StaffWeaponGroup,
		Name:      "One-handed Staff",
		DropLevel: 20,
		ItemSlots: []int{model.LeftHandSlot, model.RightHandSlot},
		BasePowerUpAttributes: []*model.ItemBasePowerUpDefinition{
			base(stats.IsOneHandedStaffEquipped, 1),
		},
	}

	right := newTestItem(t, staff, model.RightHandSlot, 0)
	right.AddOption(wizardry, 1)
	right.AddOption(life, 1)
	handles, err := newTestFactory(nil).PowerUps(right, attribute.NewHolder())
	require.NoError(t, err)
	assert.Empty(t, handlesOf(handles, stats.WizardryBaseDmg))
	assert.Len(t, handlesOf(handles, stats.MaximumHealth), 1)

	left := newTestItem(t, staff, model.LeftHandSlot, 0)
	left.AddOption(wizardry, 1)
	handles, err = newTestFactory(nil).PowerUps(left, attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, handlesOf(handles, stats.WizardryBaseDmg), 1)
}

func TestPowerUps_DanglingAndPlaceholderOptions(t *testing.T) {
	t.Parallel()

	logs, logger := newLogBuffer()
	placeholder := &model.IncreasableItemOption{
		ID:                uuid.New(),
		Name:              "level 0 placeholder",
		OptionType:        optionType,
		PowerUpDefinition: &model.PowerUpDefinition{ID: uuid.New(), TargetAttribute: stats.MaximumMana},
	}

	item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 0)
	item.ItemOptions = append(item.ItemOptions, &model.ItemOptionLink{ID: uuid.New()})
	item.AddOption(placeholder, 0)
	item.AddOption(constantOption(optionType, 0, 1, stats.MaximumHealth, 4), 1)

	handles, err := newTestFactory(logger).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, handlesOf(handles, stats.DefenseBase), 1, "base still derived")
	assert.Len(t, handlesOf(handles, stats.MaximumHealth), 1, "other options still derived")
	assert.Empty(t, handlesOf(handles, stats.MaximumMana))
	assert.Equal(t, 1, logs.warnings(), "only the dangling link is reported")
}

func TestPowerUps_HardErrorRejectsItem(t *testing.T) {
	t.Parallel()

	def := armorDefinition(28, 10)
	def.BasePowerUpAttributes = append(def.BasePowerUpAttributes, &model.ItemBasePowerUpDefinition{BaseValue: 1})

	handles, err := newTestFactory(nil).PowerUps(newTestItem(t, def, model.ArmorSlot, 0), attribute.NewHolder())
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Nil(t, handles)
}

func TestPowerUps_ZeroDropLevel(t *testing.T) {
	t.Parallel()

	item := newTestItem(t, armorDefinition(0, 10), model.ArmorSlot, 0)
	item.AddOption(constantOption(excellentType, 1, 1, stats.MaximumHealth, 4), 1)

	handles, err := newTestFactory(nil).PowerUps(item, attribute.NewHolder())
	assert.ErrorIs(t, err, ErrZeroDropLevel)
	assert.Nil(t, handles)

	// Без excellent/ancient формулы не вычисляются: ошибки нет.
	plain := newTestItem(t, armorDefinition(0, 10), model.ArmorSlot, 0)
	handles, err = newTestFactory(nil).PowerUps(plain, attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, handles, 1)
}

func TestPowerUps_ExcellentArmorDefense(t *testing.T) {
	t.Parallel()

	item := newTestItem(t, armorDefinition(28, 10), model.ArmorSlot, 0)
	item.AddOption(constantOption(excellentType, 1, 1, stats.MaximumHealth, 4), 1)

	handles, err := newTestFactory(nil).PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)

	defense := handlesOf(handles, stats.DefenseBase)
	require.Len(t, defense, 2, "base + excellent bonus, no ancient bonus")
	assert.Equal(t, float32(10), defense[0].Value())
	assert.Equal(t, float32(13), defense[1].Value())
	assert.Equal(t, attribute.AddRaw, defense[1].AggregateType())
}

func TestPowerUps_PetLevel(t *testing.T) {
	t.Parallel()

	pet := func(number int) *model.ItemDefinition {
		return &model.ItemDefinition{ID: uuid.New(), Group: model.PetGroup, Number: number, Name: "pet", ItemSlots: []int{model.PetSlot}}
	}

	horse, err := newTestFactory(nil).PowerUps(newTestItem(t, pet(model.DarkHorseNumber), model.PetSlot, 7), attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, horse, 1)
	assert.Equal(t, stats.HorseLevel, horse[0].Target())
	assert.Equal(t, float32(7), horse[0].Value())

	raven, err := newTestFactory(nil).PowerUps(newTestItem(t, pet(model.DarkRavenNumber), model.LeftHandSlot, 3), attribute.NewHolder())
	require.NoError(t, err)
	require.Len(t, raven, 1)
	assert.Equal(t, stats.RavenLevel, raven[0].Target())

	other, err := newTestFactory(nil).PowerUps(newTestItem(t, pet(2), model.PetSlot, 3), attribute.NewHolder())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPowerUps_Idempotent(t *testing.T) {
	t.Parallel()

	def := swordDefinition(20, 30)
	def.DropLevel = 40
	def.BasePowerUpAttributes[0].BonusPerLevelTable = &model.LevelBonusTable{
		BonusPerLevel: []model.LevelBonus{{Level: 7, AdditionalValue: 21}},
	}
	item := newTestItem(t, def, model.RightHandSlot, 7)
	item.AddOption(constantOption(excellentType, 2, 1, stats.ExcellentDamageChance, 0.1), 1)
	item.AddOption(constantOption(ancientType, 0, 1, stats.BaseStrength, 10), 1)

	factory := newTestFactory(nil)
	first, err := factory.PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)
	second, err := factory.PowerUps(item, attribute.NewHolder())
	require.NoError(t, err)

	if diff := cmp.Diff(triples(first), triples(second), cmpopts.SortSlices(lessTriple)); diff != "" {
		t.Errorf("derivation not idempotent (-first +second):\n%s", diff)
	}
}

type recordingRectifier struct {
	calls []bool
	err   error
}

func (r *recordingRectifier) RectifyWield(_ *model.Item, holder *attribute.Holder, isRightWieldWeapon bool) ([]*attribute.PowerUp, error) {
	r.calls = append(r.calls, isRightWieldWeapon)
	if r.err != nil {
		return nil, r.err
	}
	p, err := attribute.NewPowerUp(attribute.Constant(0), stats.MinimumPhysBaseDmgByWeapon, attribute.Multiplicate, holder)
	return []*attribute.PowerUp{p}, err
}

func TestPowerUps_WieldRectifierExtensionPoint(t *testing.T) {
	t.Parallel()

	rect := &recordingRectifier{}
	opts := DefaultOptions()
	opts.WieldRectifier = rect
	factory := NewFactory(opts)

	handles, err := factory.PowerUps(newTestItem(t, swordDefinition(5, 9), model.RightHandSlot, 0), attribute.NewHolder())
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, rect.calls)
	assert.Len(t, handlesOf(handles, stats.MinimumPhysBaseDmgByWeapon), 1)

	_, err = factory.PowerUps(newTestItem(t, armorDefinition(28, 5), model.ArmorSlot, 0), attribute.NewHolder())
	require.NoError(t, err)
	assert.Len(t, rect.calls, 1, "not consulted for armor")

	rect.err = errors.New("boom")
	_, err = factory.PowerUps(newTestItem(t, swordDefinition(5, 9), model.LeftHandSlot, 0), attribute.NewHolder())
	assert.Error(t, err)
}
