package powerup

import (
	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

// Kind is a bit set of item kinds relevant to excellent/ancient formulas.
// An item may have several kinds (a staff is a physical weapon with a rise).
type Kind uint8

const (
	KindArmor Kind = 1 << iota // defense slot, not jewelry
	KindShield
	KindPhysicalWeapon
	KindRise // staff in the left hand, scepter or book
)

// Has returns true if all bits of k2 are set.
func (k Kind) Has(k2 Kind) bool { return k&k2 == k2 }

// Rise is the base rise stat of a magic weapon.
type Rise struct {
	Attribute *attribute.Definition
	Base      int
}

// Classification: предмет, классифицированный один раз на входе в формулы.
// Формулы excellent/ancient: чистые функции над этой структурой.
type Classification struct {
	Kind      Kind
	Excellent bool
	Ancient   bool
	Level     int

	BaseDropLevel    int
	AncientDropLevel int

	BaseDefense     int
	BaseDefenseRate int

	// Physical weapon payload.
	MinPhysDamage float32
	DamageDivisor int
	MinDamageAttr *attribute.Definition
	MaxDamageAttr *attribute.Definition

	Rises []Rise
}

// Classify builds the classification of item. isRightWieldWeapon selects the
// right-hand damage attributes; staffGroup is the weapon group whose base
// damage is stored halved.
func Classify(item *model.Item, isRightWieldWeapon bool, staffGroup int) Classification {
	def := item.Definition
	c := Classification{
		Excellent:        item.IsExcellent(),
		Ancient:          item.IsAncient(),
		Level:            item.Level,
		BaseDropLevel:    def.DropLevel,
		AncientDropLevel: def.CalculateDropLevel(true, false, 0),
	}

	baseDefense, _ := def.BaseValueOf(stats.DefenseBase)
	c.BaseDefense = int(baseDefense)
	baseRate, _ := def.BaseValueOf(stats.DefenseRatePvm)
	c.BaseDefenseRate = int(baseRate)

	if model.IsDefenseItemSlot(item.ItemSlot) && !item.IsJewelry() {
		c.Kind |= KindArmor
	}
	if item.IsShield() {
		c.Kind |= KindShield
	}

	if minDmg, ok := item.IsPhysicalWeapon(); ok {
		c.Kind |= KindPhysicalWeapon
		c.MinPhysDamage = minDmg
		c.DamageDivisor = 1
		if def.Group == staffGroup {
			c.DamageDivisor = 2
		}
		c.MinDamageAttr = stats.MinimumPhysBaseDmgByWeapon
		c.MaxDamageAttr = stats.MaximumPhysBaseDmgByWeapon
		if isRightWieldWeapon {
			c.MinDamageAttr = stats.MinPhysBaseDmgByRightWeapon
			c.MaxDamageAttr = stats.MaxPhysBaseDmgByRightWeapon
		}
	}

	// Rise посоха учитывается только в левой руке.
	if rise, ok := item.IsWizardryWeapon(); ok && item.ItemSlot == model.LeftHandSlot {
		c.Rises = append(c.Rises, Rise{Attribute: stats.StaffRise, Base: int(rise)})
	}
	if rise, ok := item.IsScepter(); ok {
		c.Rises = append(c.Rises, Rise{Attribute: stats.ScepterRise, Base: int(rise)})
	}
	if rise, ok := item.IsBook(); ok {
		c.Rises = append(c.Rises, Rise{Attribute: stats.BookRise, Base: int(rise)})
	}
	if len(c.Rises) > 0 {
		c.Kind |= KindRise
	}

	return c
}
