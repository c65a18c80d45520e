package model

import "github.com/google/uuid"

// ItemOptionCombinationBonus grants Bonus when all Requirements are met by
// the options of all equipped items. Matched options are consumed; with
// AppliesMultipleTimes the bonus stacks while enough options remain.
type ItemOptionCombinationBonus struct {
	ID                   uuid.UUID
	Description          string
	Requirements         []CombinationBonusRequirement
	Bonus                *PowerUpDefinition
	AppliesMultipleTimes bool
}

// CombinationBonusRequirement requires MinimumCount options of
// (OptionType, SubOptionType).
type CombinationBonusRequirement struct {
	OptionType    *ItemOptionType
	SubOptionType int
	MinimumCount  int
}

// Matches returns true if option satisfies the requirement's type.
func (r CombinationBonusRequirement) Matches(option *IncreasableItemOption) bool {
	return option != nil &&
		option.OptionType != nil &&
		option.OptionType == r.OptionType &&
		option.SubOptionType == r.SubOptionType
}
