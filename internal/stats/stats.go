// Package stats is the catalog of attribute definitions known to the server.
//
// Definitions are package-level singletons; attribute identity is pointer
// identity, game data files reference them by Name.
package stats

import (
	"sort"

	"github.com/udisondev/mugo/internal/attribute"
)

// Defense & rates.
var (
	DefenseBase                       = def("DefenseBase", "The base defense of equipped items")
	DefenseRatePvm                    = def("DefenseRatePvm", "Defense rate against monsters")
	DefenseRatePvp                    = def("DefenseRatePvp", "Defense rate against players")
	DefenseIncreaseWithEquippedShield = def("DefenseIncreaseWithEquippedShield", "Defense multiplier with equipped shield")
	DamageReceiveDecrement            = def("DamageReceiveDecrement", "Multiplier of received damage")
	AttackRatePvm                     = def("AttackRatePvm", "Attack rate against monsters")
	AttackSpeed                       = def("AttackSpeed", "Attack speed")
)

// Weapon damage.
var (
	MinimumPhysBaseDmgByWeapon  = def("MinimumPhysBaseDmgByWeapon", "Minimum physical damage of weapons")
	MaximumPhysBaseDmgByWeapon  = def("MaximumPhysBaseDmgByWeapon", "Maximum physical damage of weapons")
	MinPhysBaseDmgByRightWeapon = def("MinPhysBaseDmgByRightWeapon", "Minimum physical damage of the right hand weapon")
	MaxPhysBaseDmgByRightWeapon = def("MaxPhysBaseDmgByRightWeapon", "Maximum physical damage of the right hand weapon")
	WizardryBaseDmg             = def("WizardryBaseDmg", "Wizardry base damage bonus")
	ExcellentDamageChance       = def("ExcellentDamageChance", "Chance of excellent damage")
	CriticalDamageChance        = def("CriticalDamageChance", "Chance of critical damage")
	DoubleDamageChance          = def("DoubleDamageChance", "Chance of double damage")
)

// Weapon markers. An item carrying one of them in the right hand is a second
// one-handed weapon.
var (
	DoubleWieldWeaponCount   = def("DoubleWieldWeaponCount", "Number of one-handed weapons equipped")
	IsOneHandedStaffEquipped = def("IsOneHandedStaffEquipped", "One-handed staff equipped marker")
)

// Rise stats of magic weapons.
var (
	StaffRise   = def("StaffRise", "Wizardry damage rise of staffs")
	ScepterRise = def("ScepterRise", "Pet damage rise of scepters")
	BookRise    = def("BookRise", "Curse damage rise of books")
)

// Pets.
var (
	HorseLevel = def("HorseLevel", "Level of the dark horse")
	RavenLevel = def("RavenLevel", "Level of the dark raven")
)

// Character.
var (
	BaseStrength             = def("BaseStrength", "Base strength")
	BaseAgility              = def("BaseAgility", "Base agility")
	BaseVitality             = def("BaseVitality", "Base vitality")
	BaseEnergy               = def("BaseEnergy", "Base energy")
	TotalStrength            = def("TotalStrength", "Total strength")
	TotalAgility             = def("TotalAgility", "Total agility")
	TotalVitality            = def("TotalVitality", "Total vitality")
	TotalEnergy              = def("TotalEnergy", "Total energy")
	Level                    = def("Level", "Character level")
	MaximumHealth            = def("MaximumHealth", "Maximum health")
	MaximumMana              = def("MaximumMana", "Maximum mana")
	HealthRecoveryMultiplier = def("HealthRecoveryMultiplier", "Health recovery multiplier")
	ManaRecoveryMultiplier   = def("ManaRecoveryMultiplier", "Mana recovery multiplier")
	MoneyAmountRate          = def("MoneyAmountRate", "Zen drop multiplier")
)

var registry map[string]*attribute.Definition

func def(name, description string) *attribute.Definition {
	d := attribute.NewDefinition(name, description)
	if registry == nil {
		registry = make(map[string]*attribute.Definition)
	}
	registry[name] = d
	return d
}

// ByName возвращает определение атрибута по имени.
func ByName(name string) (*attribute.Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// All returns every known attribute sorted by name.
func All() []*attribute.Definition {
	all := make([]*attribute.Definition, 0, len(registry))
	for _, d := range registry {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// IsRightHandDamage reports whether attr is a right-hand specific damage attribute.
func IsRightHandDamage(attr *attribute.Definition) bool {
	return attr == MinPhysBaseDmgByRightWeapon || attr == MaxPhysBaseDmgByRightWeapon
}
