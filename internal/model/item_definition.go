package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/mugo/internal/attribute"
)

// Well-known item groups and numbers.
const (
	StaffWeaponGroup = 5  // staffs & sticks: base damage is stored halved
	ShieldGroup      = 6  // shields
	PetGroup         = 13 // helpers, pets, jewelry

	DarkHorseNumber = 4 // PetGroup
	DarkRavenNumber = 5 // PetGroup

	// DinorantSkillNumber: items with this skill keep level options without
	// level dependent definitions.
	DinorantSkillNumber = 49
)

// Drop level increments of item variants.
const (
	AncientDropLevelBonus     = 30
	ExcellentDropLevelBonus   = 25
	ExtraOptionDropLevelBonus = 5
)

// ItemDefinition: шаблон предмета (из items.yaml).
// Содержит базовые power-ups, drop level и возможные сеты.
type ItemDefinition struct {
	ID     uuid.UUID
	Group  int // weapon category for weapons (0..5), 6 shields, 7..11 armor, ...
	Number int
	Name   string

	DropLevel int

	// ItemSlots: допустимые слоты paperdoll.
	ItemSlots []int

	BasePowerUpAttributes []*ItemBasePowerUpDefinition
	PossibleItemSetGroups []*ItemSetGroup

	// Skill number granted by the item (0 = none).
	SkillNumber int
}

// ItemBasePowerUpDefinition is a base attribute of an item definition,
// e.g. "DefenseBase 10 (+3 per level)".
type ItemBasePowerUpDefinition struct {
	TargetAttribute    *attribute.Definition
	BaseValue          float32
	AggregateType      attribute.AggregateType
	BonusPerLevelTable *LevelBonusTable
}

// BaseValueElement returns the constant element of the base value.
func (b *ItemBasePowerUpDefinition) BaseValueElement() attribute.Element {
	return attribute.Constant(b.BaseValue)
}

// LevelBonusTable maps item levels to additional values.
type LevelBonusTable struct {
	ID            uuid.UUID
	Name          string
	BonusPerLevel []LevelBonus
}

// LevelBonus is the additional value at a given item level.
type LevelBonus struct {
	Level           int
	AdditionalValue float32
}

// Bonus возвращает элемент бонуса для уровня; false если уровня нет в таблице.
func (t *LevelBonusTable) Bonus(level int) (attribute.Element, bool) {
	if t == nil {
		return nil, false
	}
	for _, b := range t.BonusPerLevel {
		if b.Level == level {
			return attribute.Constant(b.AdditionalValue), true
		}
	}
	return nil, false
}

// CalculateDropLevel returns the drop level of an item variant.
func (d *ItemDefinition) CalculateDropLevel(ancient, excellent bool, extraOptions int) int {
	level := d.DropLevel
	if ancient {
		level += AncientDropLevelBonus
	}
	if excellent {
		level += ExcellentDropLevelBonus
	}
	return level + extraOptions*ExtraOptionDropLevelBonus
}

// BaseValueOf returns the base value of the first base power-up targeting attr.
func (d *ItemDefinition) BaseValueOf(attr *attribute.Definition) (float32, bool) {
	for _, b := range d.BasePowerUpAttributes {
		if b != nil && b.TargetAttribute == attr {
			return b.BaseValue, true
		}
	}
	return 0, false
}

// HasBaseAttribute returns true if any base power-up targets one of attrs.
func (d *ItemDefinition) HasBaseAttribute(attrs ...*attribute.Definition) bool {
	for _, b := range d.BasePowerUpAttributes {
		if b == nil {
			continue
		}
		for _, a := range attrs {
			if b.TargetAttribute == a {
				return true
			}
		}
	}
	return false
}

// CanBeEquippedIn returns true if slot is one of ItemSlots.
func (d *ItemDefinition) CanBeEquippedIn(slot int) bool {
	for _, s := range d.ItemSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// String returns "Name (group/number)".
func (d *ItemDefinition) String() string {
	return fmt.Sprintf("%s (%d/%d)", d.Name, d.Group, d.Number)
}
