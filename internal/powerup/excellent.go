package powerup

import (
	"fmt"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/stats"
)

// Bonus is a constant AddRaw contribution produced by a formula.
type Bonus struct {
	Target *attribute.Definition
	Value  int
}

// ExcellentAncientBonuses returns the additional base bonuses of excellent and
// ancient items. All arithmetic is integer division in the exact order below;
// reordering changes results.
//
// Returns ErrZeroDropLevel if a formula would divide by a zero drop level.
func ExcellentAncientBonuses(c Classification) ([]Bonus, error) {
	if !c.Excellent && !c.Ancient {
		return nil, nil
	}
	if c.Kind == 0 {
		return nil, nil
	}
	if c.BaseDropLevel == 0 {
		return nil, fmt.Errorf("%w: base drop level", ErrZeroDropLevel)
	}
	if c.Ancient && c.AncientDropLevel == 0 {
		return nil, fmt.Errorf("%w: ancient drop level", ErrZeroDropLevel)
	}

	var bonuses []Bonus
	if c.Kind.Has(KindArmor) {
		bonuses = append(bonuses, armorBonuses(c)...)
	}
	if c.Kind.Has(KindShield) {
		bonuses = append(bonuses, shieldBonuses(c)...)
	}
	if c.Kind.Has(KindPhysicalWeapon) {
		bonuses = append(bonuses, weaponBonuses(c)...)
	}
	for _, rise := range c.Rises {
		bonuses = append(bonuses, riseBonuses(c, rise)...)
	}
	return bonuses, nil
}

func armorBonuses(c Classification) []Bonus {
	drop := c.BaseDropLevel
	additional := c.BaseDefense*12/drop + drop/5 + 4
	result := []Bonus{{Target: stats.DefenseBase, Value: additional}}
	if c.Ancient {
		ancient := c.AncientDropLevel
		result = append(result, Bonus{
			Target: stats.DefenseBase,
			Value:  2 + (c.BaseDefense+additional)*3/ancient + ancient/30,
		})
	}
	return result
}

func shieldBonuses(c Classification) []Bonus {
	additionalRate := c.BaseDefenseRate*25/c.BaseDropLevel + 5
	result := []Bonus{{Target: stats.DefenseRatePvm, Value: additionalRate}}
	if c.Ancient {
		result = append(result, Bonus{
			Target: stats.DefenseBase,
			Value:  2 + (c.BaseDefense+c.Level)*20/c.AncientDropLevel,
		})
	}
	return result
}

func weaponBonuses(c Classification) []Bonus {
	divisor := c.DamageDivisor
	if divisor <= 0 {
		divisor = 1
	}
	// Урон посохов хранится делённым пополам: сначала восстанавливаем.
	minDmg := int(c.MinPhysDamage * float32(divisor))
	additional := (minDmg*25/c.BaseDropLevel + 5) / divisor

	result := []Bonus{
		{Target: c.MinDamageAttr, Value: additional},
		{Target: c.MaxDamageAttr, Value: additional},
	}
	if c.Ancient {
		ancient := (5 + c.AncientDropLevel/40) / divisor
		result = append(result,
			Bonus{Target: c.MinDamageAttr, Value: ancient},
			Bonus{Target: c.MaxDamageAttr, Value: ancient},
		)
	}
	return result
}

func riseBonuses(c Classification, rise Rise) []Bonus {
	additional := (rise.Base*2*25/c.BaseDropLevel + 5) / 2
	result := []Bonus{{Target: rise.Attribute, Value: additional}}
	if c.Ancient {
		result = append(result, Bonus{
			Target: rise.Attribute,
			Value:  (2 + c.AncientDropLevel/60) / 2,
		})
	}
	return result
}
