package model

import (
	"github.com/google/uuid"
)

// ItemOptionType: категория опции (excellent, luck, harmony, ...).
type ItemOptionType struct {
	ID   uuid.UUID
	Name string
}

// Well-known option type names.
const (
	OptionTypeExcellent    = "Excellent"
	OptionTypeAncient      = "AncientOption"
	OptionTypeAncientBonus = "AncientBonus"
	OptionTypeLuck         = "Luck"
	OptionTypeOption       = "Option"
	OptionTypeHarmony      = "HarmonyOption"
	OptionTypeWing         = "Wing"
	OptionTypeSocket       = "SocketOption"
)

// LevelType defines where the level of an increasable option comes from.
type LevelType int8

const (
	// LevelTypeOptionLevel: уровень хранится в ItemOptionLink.
	LevelTypeOptionLevel LevelType = iota
	// LevelTypeItemLevel: уровень опции равен уровню предмета.
	LevelTypeItemLevel
)

// String returns human-readable level type.
func (t LevelType) String() string {
	switch t {
	case LevelTypeOptionLevel:
		return "OptionLevel"
	case LevelTypeItemLevel:
		return "ItemLevel"
	default:
		return "Unknown"
	}
}

// IncreasableItemOption is an item option whose power-up may depend on a level.
type IncreasableItemOption struct {
	ID            uuid.UUID
	Number        int
	Name          string
	OptionType    *ItemOptionType
	SubOptionType int
	LevelType     LevelType

	PowerUpDefinition     *PowerUpDefinition
	LevelDependentOptions []*ItemOptionOfLevel
}

// ItemOptionOfLevel overrides the power-up of an option at a given level.
type ItemOptionOfLevel struct {
	Level             int
	RequiredItemLevel int
	PowerUpDefinition *PowerUpDefinition
}

// OptionOfLevel returns the level dependent override for level, or nil.
func (o *IncreasableItemOption) OptionOfLevel(level int) *ItemOptionOfLevel {
	for _, l := range o.LevelDependentOptions {
		if l != nil && l.Level == level {
			return l
		}
	}
	return nil
}

// IsOfType returns true if the option type has the given name.
func (o *IncreasableItemOption) IsOfType(name string) bool {
	return o != nil && o.OptionType != nil && o.OptionType.Name == name
}

// ItemOptionLink: опция на конкретном предмете.
type ItemOptionLink struct {
	ID         uuid.UUID
	ItemOption *IncreasableItemOption
	Level      int
}
