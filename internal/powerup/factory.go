// Package powerup derives attribute contributions from equipped items.
//
// Factory.PowerUps turns one item into handles (base attributes, options,
// excellent/ancient bonuses, pet level); Factory.SetPowerUps turns the whole
// loadout into set and option-combination bonus handles. Derivation is pure:
// it only reads the item and the immutable game configuration, so one Factory
// may be shared between goroutines. Returned handles are NOT attached.
package powerup

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

// WieldRectifier is the extension point for mixed-wield (staff + sword)
// physical damage reconciliation. It is consulted for hand-slot weapons after
// their base power-ups were derived. No rectifier is installed by default.
type WieldRectifier interface {
	RectifyWield(item *model.Item, holder *attribute.Holder, isRightWieldWeapon bool) ([]*attribute.PowerUp, error)
}

// Options configures a Factory.
type Options struct {
	// ExceptionSkillNumber: предметы с этим скиллом могут иметь опции уровня > 1
	// без level dependent definitions (Dinorant).
	ExceptionSkillNumber int
	// StaffWeaponGroup: группа оружия, чей базовый урон хранится делённым на 2.
	StaffWeaponGroup int
	// DarkHorseNumber: номер предмета тёмного коня в PetGroup.
	DarkHorseNumber int

	WieldRectifier WieldRectifier
	Logger         *slog.Logger
}

// DefaultOptions returns the standard rule numbers.
func DefaultOptions() Options {
	return Options{
		ExceptionSkillNumber: model.DinorantSkillNumber,
		StaffWeaponGroup:     model.StaffWeaponGroup,
		DarkHorseNumber:      model.DarkHorseNumber,
	}
}

// Factory derives power-ups of items.
type Factory struct {
	opts   Options
	logger *slog.Logger
}

// NewFactory создаёт Factory. Nil Logger → slog.Default().
func NewFactory(opts Options) *Factory {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{opts: opts, logger: logger}
}

// PowerUps returns the power-ups of a single item.
//
// Soft inconsistencies (dangling option, missing level definition, unset
// boost) skip only the affected contribution and are logged. Hard errors
// (ErrNotInitialized, ErrZeroDropLevel) reject the whole item: nil handles
// and the error are returned.
func (f *Factory) PowerUps(item *model.Item, holder *attribute.Holder) ([]*attribute.PowerUp, error) {
	if item == nil {
		return nil, nil
	}
	if item.Definition == nil {
		f.logger.Warn("item has no definition", "item", item.ID, "slot", item.ItemSlot)
		return nil, nil
	}
	if item.Durability <= 0 {
		return nil, nil
	}
	if !model.IsEquippableSlot(item.ItemSlot) {
		return nil, nil
	}

	isRightWieldWeapon := IsRightWieldWeapon(item)

	result, err := f.basePowerUps(item, holder, isRightWieldWeapon)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	}

	if f.opts.WieldRectifier != nil && (item.ItemSlot == model.LeftHandSlot || item.ItemSlot == model.RightHandSlot) {
		rectified, err := f.opts.WieldRectifier.RectifyWield(item, holder, isRightWieldWeapon)
		if err != nil {
			return nil, fmt.Errorf("item %s: rectifying wield: %w", item.ID, err)
		}
		result = append(result, rectified...)
	}

	options, err := f.optionPowerUps(item, holder)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	}
	result = append(result, options...)

	bonuses, err := ExcellentAncientBonuses(Classify(item, isRightWieldWeapon, f.opts.StaffWeaponGroup))
	if err != nil {
		return nil, fmt.Errorf("item %s (%s): %w", item.ID, item.Definition, err)
	}
	for _, b := range bonuses {
		p, err := attribute.NewPowerUp(attribute.Constant(float32(b.Value)), b.Target, attribute.AddRaw, holder)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
		result = append(result, p)
	}

	if pet, err := f.petLevel(item, holder); err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	} else if pet != nil {
		result = append(result, pet)
	}

	return result, nil
}

// IsRightWieldWeapon returns true if item sits in the right hand and is a
// second one-handed weapon (or a one-handed staff).
func IsRightWieldWeapon(item *model.Item) bool {
	return item.ItemSlot == model.RightHandSlot &&
		item.Definition != nil &&
		item.Definition.HasBaseAttribute(stats.DoubleWieldWeaponCount, stats.IsOneHandedStaffEquipped)
}

func (f *Factory) basePowerUps(item *model.Item, holder *attribute.Holder, isRightWieldWeapon bool) ([]*attribute.PowerUp, error) {
	result := make([]*attribute.PowerUp, 0, len(item.Definition.BasePowerUpAttributes))
	for _, base := range item.Definition.BasePowerUpAttributes {
		if base == nil || base.TargetAttribute == nil {
			return nil, fmt.Errorf("%w: base power-up target of %s", ErrNotInitialized, item.Definition)
		}

		target := base.TargetAttribute
		if isRightWieldWeapon {
			switch target {
			case stats.StaffRise:
				continue
			case stats.MinimumPhysBaseDmgByWeapon:
				target = stats.MinPhysBaseDmgByRightWeapon
			case stats.MaximumPhysBaseDmgByWeapon:
				target = stats.MaxPhysBaseDmgByRightWeapon
			}
		}

		var element attribute.Element = base.BaseValueElement()
		if bonus, ok := base.BonusPerLevelTable.Bonus(item.Level); ok {
			element = attribute.Combine(element, bonus)
		}

		p, err := attribute.NewPowerUp(element, target, base.AggregateType, holder)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *Factory) optionPowerUps(item *model.Item, holder *attribute.Holder) ([]*attribute.PowerUp, error) {
	var result []*attribute.PowerUp
	for _, link := range item.ItemOptions {
		if link == nil {
			continue
		}
		option := link.ItemOption
		if option == nil {
			f.logger.Warn("item option link without option",
				"item", item.ID, "definition", item.Definition.Name, "link", link.ID)
			continue
		}

		// Wizardry-опция посоха в правой руке не действует (остальные: да).
		if item.ItemSlot == model.RightHandSlot &&
			option.PowerUpDefinition != nil &&
			option.PowerUpDefinition.TargetAttribute == stats.WizardryBaseDmg {
			continue
		}

		level := link.Level
		if option.LevelType == model.LevelTypeItemLevel {
			level = item.Level
		}

		optionOfLevel := option.OptionOfLevel(level)
		if optionOfLevel == nil && level > 1 && item.Definition.SkillNumber != f.opts.ExceptionSkillNumber {
			f.logger.Warn("increasable item option has no definition for level",
				"item", item.ID, "definition", item.Definition.Name,
				"option", option.ID, "option_name", option.Name, "level", level)
			continue
		}

		if optionOfLevel != nil && optionOfLevel.RequiredItemLevel > item.Level {
			// Опция есть на предмете, но ещё не активна (harmony).
			continue
		}

		definition := option.PowerUpDefinition
		if optionOfLevel != nil && optionOfLevel.PowerUpDefinition != nil {
			definition = optionOfLevel.PowerUpDefinition
		}
		if definition == nil || definition.Boost == nil {
			// Опции уровня 0 могут не иметь boost.
			continue
		}

		handles, err := FromDefinition(definition, holder)
		if err != nil {
			return nil, fmt.Errorf("option %s (%s): %w", option.ID, option.Name, err)
		}
		result = append(result, handles...)
	}
	return result, nil
}

func (f *Factory) petLevel(item *model.Item, holder *attribute.Holder) (*attribute.PowerUp, error) {
	if !item.IsTrainablePet() {
		return nil, nil
	}
	target := stats.RavenLevel
	if item.Definition.Number == f.opts.DarkHorseNumber {
		target = stats.HorseLevel
	}
	return attribute.NewPowerUp(attribute.Constant(float32(item.Level)), target, attribute.AddRaw, holder)
}
