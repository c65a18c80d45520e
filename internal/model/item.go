package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/stats"
)

// MaxItemLevel: максимальный уровень заточки предмета (+15).
const MaxItemLevel = 15

// Item: конкретный экземпляр предмета у персонажа.
// Принадлежит одной сущности; derivation читает его как снимок.
type Item struct {
	ID         uuid.UUID
	Definition *ItemDefinition
	Durability float64
	Level      int
	ItemSlot   int

	ItemOptions   []*ItemOptionLink
	ItemSetGroups []*ItemOfItemSet
}

// NewItem создаёт предмет с валидацией.
//
// Parameters:
//   - definition: шаблон предмета (не nil)
//   - slot: inventory slot
//   - level: уровень 0..MaxItemLevel
//   - durability: прочность (>= 0)
func NewItem(definition *ItemDefinition, slot, level int, durability float64) (*Item, error) {
	if definition == nil {
		return nil, fmt.Errorf("definition cannot be nil")
	}
	if level < 0 || level > MaxItemLevel {
		return nil, fmt.Errorf("level must be 0..%d, got %d", MaxItemLevel, level)
	}
	if durability < 0 {
		return nil, fmt.Errorf("durability cannot be negative, got %g", durability)
	}
	return &Item{
		ID:         uuid.New(),
		Definition: definition,
		Durability: durability,
		Level:      level,
		ItemSlot:   slot,
	}, nil
}

// AddOption links option to the item at the given option level.
func (i *Item) AddOption(option *IncreasableItemOption, level int) *ItemOptionLink {
	link := &ItemOptionLink{ID: uuid.New(), ItemOption: option, Level: level}
	i.ItemOptions = append(i.ItemOptions, link)
	return link
}

// AddSetGroup declares membership of the item in a set group.
func (i *Item) AddSetGroup(link *ItemOfItemSet) {
	i.ItemSetGroups = append(i.ItemSetGroups, link)
}

// IsActive returns true if the item still contributes (durability > 0).
func (i *Item) IsActive() bool {
	return i.Durability > 0
}

// IsExcellent returns true if the item carries an excellent option.
func (i *Item) IsExcellent() bool {
	return i.hasOptionOfType(OptionTypeExcellent)
}

// IsAncient returns true if the item carries an ancient option.
func (i *Item) IsAncient() bool {
	return i.hasOptionOfType(OptionTypeAncient)
}

func (i *Item) hasOptionOfType(name string) bool {
	for _, link := range i.ItemOptions {
		if link != nil && link.ItemOption.IsOfType(name) {
			return true
		}
	}
	return false
}

// IsShield returns true if the item is a shield.
func (i *Item) IsShield() bool {
	return i.Definition != nil && i.Definition.Group == ShieldGroup
}

// IsPhysicalWeapon returns true and the minimum physical damage if the item
// deals physical weapon damage.
func (i *Item) IsPhysicalWeapon() (float32, bool) {
	return i.baseValueOf(stats.MinimumPhysBaseDmgByWeapon)
}

// IsWizardryWeapon returns true and the staff rise if the item is a staff.
func (i *Item) IsWizardryWeapon() (float32, bool) {
	return i.baseValueOf(stats.StaffRise)
}

// IsScepter returns true and the scepter rise if the item is a scepter.
func (i *Item) IsScepter() (float32, bool) {
	return i.baseValueOf(stats.ScepterRise)
}

// IsBook returns true and the book rise if the item is a book.
func (i *Item) IsBook() (float32, bool) {
	return i.baseValueOf(stats.BookRise)
}

func (i *Item) baseValueOf(attr *attribute.Definition) (float32, bool) {
	if i.Definition == nil {
		return 0, false
	}
	return i.Definition.BaseValueOf(attr)
}

// IsTrainablePet returns true for the dark horse and the dark raven.
func (i *Item) IsTrainablePet() bool {
	return i.Definition != nil &&
		i.Definition.Group == PetGroup &&
		(i.Definition.Number == DarkHorseNumber || i.Definition.Number == DarkRavenNumber)
}

// IsJewelry returns true if the item is worn in pendant or ring slots.
func (i *Item) IsJewelry() bool {
	if i.Definition == nil {
		return false
	}
	for _, slot := range i.Definition.ItemSlots {
		if IsJewelrySlot(slot) {
			return true
		}
	}
	return false
}

// String returns "Name+level (id)".
func (i *Item) String() string {
	name := "<no definition>"
	if i.Definition != nil {
		name = i.Definition.Name
	}
	return fmt.Sprintf("%s+%d (%s)", name, i.Level, i.ID)
}
