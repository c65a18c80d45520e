package model

// Inventory slots of equipped items (paperdoll).
// Slots outside [FirstEquippableItemSlot, LastEquippableItemSlot] are storage
// slots and never contribute power-ups.
const (
	LeftHandSlot  = 0
	RightHandSlot = 1
	HelmSlot      = 2
	ArmorSlot     = 3
	PantsSlot     = 4
	GlovesSlot    = 5
	BootsSlot     = 6
	WingsSlot     = 7
	PetSlot       = 8
	PendantSlot   = 9
	Ring1Slot     = 10
	Ring2Slot     = 11

	FirstEquippableItemSlot = LeftHandSlot
	LastEquippableItemSlot  = Ring2Slot
	EquippableSlotCount     = LastEquippableItemSlot + 1
)

// IsEquippableSlot returns true if slot is a paperdoll slot.
func IsEquippableSlot(slot int) bool {
	return slot >= FirstEquippableItemSlot && slot <= LastEquippableItemSlot
}

// IsDefenseItemSlot returns true for armor pieces and jewelry slots.
// Jewelry is filtered by callers where it must not count as armor.
func IsDefenseItemSlot(slot int) bool {
	return (slot >= HelmSlot && slot <= BootsSlot) || IsJewelrySlot(slot)
}

// IsJewelrySlot returns true for pendant and ring slots.
func IsJewelrySlot(slot int) bool {
	return slot == PendantSlot || slot == Ring1Slot || slot == Ring2Slot
}

// SlotName returns human-readable slot name.
func SlotName(slot int) string {
	switch slot {
	case LeftHandSlot:
		return "LeftHand"
	case RightHandSlot:
		return "RightHand"
	case HelmSlot:
		return "Helm"
	case ArmorSlot:
		return "Armor"
	case PantsSlot:
		return "Pants"
	case GlovesSlot:
		return "Gloves"
	case BootsSlot:
		return "Boots"
	case WingsSlot:
		return "Wings"
	case PetSlot:
		return "Pet"
	case PendantSlot:
		return "Pendant"
	case Ring1Slot:
		return "Ring1"
	case Ring2Slot:
		return "Ring2"
	default:
		return "Storage"
	}
}

// ParseSlot maps a slot name (case-sensitive, as returned by SlotName) to its index.
func ParseSlot(name string) (int, bool) {
	for slot := FirstEquippableItemSlot; slot <= LastEquippableItemSlot; slot++ {
		if SlotName(slot) == name {
			return slot, true
		}
	}
	return -1, false
}
