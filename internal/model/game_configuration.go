package model

// GameConfiguration: неизменяемый снимок игровых данных.
// Создаётся загрузчиком один раз и разделяется по ссылке; derivation только читает его.
type GameConfiguration struct {
	ItemOptionTypes              []*ItemOptionType
	LevelBonusTables             []*LevelBonusTable
	ItemOptions                  []*IncreasableItemOption
	ItemDefinitions              []*ItemDefinition
	ItemSetGroups                []*ItemSetGroup
	ItemOptionCombinationBonuses []*ItemOptionCombinationBonus

	// Fingerprint: хэш исходных документов (blake2b-256).
	Fingerprint [32]byte
}

// FindItem returns the definition with the given group and number, or nil.
func (c *GameConfiguration) FindItem(group, number int) *ItemDefinition {
	if c == nil {
		return nil
	}
	for _, d := range c.ItemDefinitions {
		if d.Group == group && d.Number == number {
			return d
		}
	}
	return nil
}

// FindItemByName returns the definition with the given name, or nil.
func (c *GameConfiguration) FindItemByName(name string) *ItemDefinition {
	if c == nil {
		return nil
	}
	for _, d := range c.ItemDefinitions {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// FindOption returns the option with the given name, or nil.
func (c *GameConfiguration) FindOption(name string) *IncreasableItemOption {
	if c == nil {
		return nil
	}
	for _, o := range c.ItemOptions {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// FindSetGroup returns the set group with the given name, or nil.
func (c *GameConfiguration) FindSetGroup(name string) *ItemSetGroup {
	if c == nil {
		return nil
	}
	for _, g := range c.ItemSetGroups {
		if g.Name == name {
			return g
		}
	}
	return nil
}
