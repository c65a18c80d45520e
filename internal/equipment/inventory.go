// Package equipment tracks the items a character carries and keeps the
// character's attribute holder in sync with the equipped ones.
package equipment

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/powerup"
)

// StorageSlot: слот предмета, лежащего в сумке (не надетого).
const StorageSlot = -1

var (
	ErrNilItem         = errors.New("item cannot be nil")
	ErrItemExists      = errors.New("item already exists in inventory")
	ErrInvalidSlot     = errors.New("invalid paperdoll slot")
	ErrSlotNotAllowed  = errors.New("item cannot be equipped in slot")
	ErrSlotOccupied    = errors.New("paperdoll slot is occupied")
	ErrAlreadyEquipped = errors.New("item is already equipped")
)

// Inventory: предметы персонажа (сумка + paperdoll) и их вклад в атрибуты.
//
// Каждый надетый предмет владеет своими power-up handles; set и combination
// бонусы пересчитываются целиком при любом изменении paperdoll.
// Inventory methods are safe for concurrent use; the Holder it feeds is not
// (see Holder).
type Inventory struct {
	holder  *attribute.Holder
	factory *powerup.Factory
	config  *model.GameConfiguration
	logger  *slog.Logger

	items     map[uuid.UUID]*model.Item
	paperdoll [model.EquippableSlotCount]*model.Item

	itemPowerUps map[uuid.UUID][]*attribute.PowerUp
	setPowerUps  []*attribute.PowerUp

	mu sync.RWMutex
}

// NewInventory создаёт пустой инвентарь.
//
// Parameters:
//   - holder: атрибуты персонажа (nil → новый Holder)
//   - factory: derivation power-ups (nil → фабрика с DefaultOptions)
//   - config: игровая конфигурация для combination бонусов (может быть nil)
//   - logger: nil → slog.Default()
func NewInventory(holder *attribute.Holder, factory *powerup.Factory, config *model.GameConfiguration, logger *slog.Logger) *Inventory {
	if holder == nil {
		holder = attribute.NewHolder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		opts := powerup.DefaultOptions()
		opts.Logger = logger
		factory = powerup.NewFactory(opts)
	}
	return &Inventory{
		holder:       holder,
		factory:      factory,
		config:       config,
		logger:       logger,
		items:        make(map[uuid.UUID]*model.Item),
		itemPowerUps: make(map[uuid.UUID][]*attribute.PowerUp),
	}
}

// Holder returns the attribute holder fed by the equipped items. The holder is
// not synchronized: callers must not read it concurrently with inventory
// changes.
func (inv *Inventory) Holder() *attribute.Holder {
	return inv.holder
}

// AddItem кладёт предмет в сумку.
func (inv *Inventory) AddItem(item *model.Item) error {
	if item == nil {
		return ErrNilItem
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.items[item.ID]; exists {
		return fmt.Errorf("%w: %s", ErrItemExists, item.ID)
	}
	inv.items[item.ID] = item
	item.ItemSlot = StorageSlot
	return nil
}

// RemoveItem удаляет предмет из инвентаря; надетый предмет сначала снимается.
//
// Returns:
//   - *model.Item: удалённый предмет или nil если не найден
//   - error: ошибка пересчёта set бонусов (предмет всё равно удалён)
func (inv *Inventory) RemoveItem(id uuid.UUID) (*model.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, exists := inv.items[id]
	if !exists {
		return nil, nil
	}

	var err error
	if model.IsEquippableSlot(item.ItemSlot) && inv.paperdoll[item.ItemSlot] == item {
		err = inv.unequipLocked(item.ItemSlot)
	}
	delete(inv.items, id)
	return item, err
}

// GetItem returns the item with the given id or nil.
func (inv *Inventory) GetItem(id uuid.UUID) *model.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items[id]
}

// GetPaperdollItem возвращает надетый предмет слота (может быть nil).
func (inv *Inventory) GetPaperdollItem(slot int) *model.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if !model.IsEquippableSlot(slot) {
		return nil
	}
	return inv.paperdoll[slot]
}

// EquippedItems returns the equipped items ordered by slot.
func (inv *Inventory) EquippedItems() []*model.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.equippedLocked()
}

func (inv *Inventory) equippedLocked() []*model.Item {
	equipped := make([]*model.Item, 0, model.EquippableSlotCount)
	for _, item := range inv.paperdoll {
		if item != nil {
			equipped = append(equipped, item)
		}
	}
	return equipped
}

// EquipItem надевает предмет из сумки в slot.
//
// Предмет, не лежащий в инвентаре, добавляется автоматически. Если derivation
// предмета завершилась hard error, предмет остаётся надетым без собственного
// вклада и ошибка возвращается; вклад остальных предметов не затрагивается.
//
// Returns:
//   - error: ErrInvalidSlot, ErrSlotNotAllowed, ErrSlotOccupied,
//     ErrAlreadyEquipped или ошибка derivation
func (inv *Inventory) EquipItem(item *model.Item, slot int) error {
	if item == nil {
		return ErrNilItem
	}
	if !model.IsEquippableSlot(slot) {
		return fmt.Errorf("%w: %d (must be %d..%d)", ErrInvalidSlot, slot, model.FirstEquippableItemSlot, model.LastEquippableItemSlot)
	}
	if item.Definition != nil && len(item.Definition.ItemSlots) > 0 && !item.Definition.CanBeEquippedIn(slot) {
		return fmt.Errorf("%w: %s in %s", ErrSlotNotAllowed, item.Definition, model.SlotName(slot))
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if current := inv.paperdoll[slot]; current != nil {
		if current == item {
			return fmt.Errorf("%w: %s", ErrAlreadyEquipped, item)
		}
		return fmt.Errorf("%w: %s holds %s", ErrSlotOccupied, model.SlotName(slot), current)
	}
	if model.IsEquippableSlot(item.ItemSlot) && inv.paperdoll[item.ItemSlot] == item {
		return fmt.Errorf("%w: %s in %s", ErrAlreadyEquipped, item, model.SlotName(item.ItemSlot))
	}

	inv.items[item.ID] = item
	inv.paperdoll[slot] = item
	item.ItemSlot = slot

	itemErr := inv.attachItemLocked(item)
	setErr := inv.recomputeSetsLocked()
	return errors.Join(itemErr, setErr)
}

// UnequipItem снимает предмет из slot обратно в сумку.
//
// Returns:
//   - *model.Item: снятый предмет или nil если слот пустой
//   - error: ошибка пересчёта set бонусов
func (inv *Inventory) UnequipItem(slot int) (*model.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if !model.IsEquippableSlot(slot) {
		return nil, nil
	}
	item := inv.paperdoll[slot]
	if item == nil {
		return nil, nil
	}
	return item, inv.unequipLocked(slot)
}

func (inv *Inventory) unequipLocked(slot int) error {
	item := inv.paperdoll[slot]
	inv.detachItemLocked(item)
	inv.paperdoll[slot] = nil
	item.ItemSlot = StorageSlot
	return inv.recomputeSetsLocked()
}

// Refresh re-derives the contributions of all equipped items, e.g. after a
// durability or level change. Errors of single items are joined.
func (inv *Inventory) Refresh() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var errs []error
	for _, item := range inv.paperdoll {
		if item == nil {
			continue
		}
		inv.detachItemLocked(item)
		if err := inv.attachItemLocked(item); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, inv.recomputeSetsLocked())
	return errors.Join(errs...)
}

func (inv *Inventory) attachItemLocked(item *model.Item) error {
	handles, err := inv.factory.PowerUps(item, inv.holder)
	if err != nil {
		inv.logger.Error("item power-ups rejected", "item", item.ID, "slot", model.SlotName(item.ItemSlot), "error", err)
		return err
	}
	for _, h := range handles {
		h.Attach()
	}
	inv.itemPowerUps[item.ID] = handles
	return nil
}

func (inv *Inventory) detachItemLocked(item *model.Item) {
	for _, h := range inv.itemPowerUps[item.ID] {
		h.Detach()
	}
	delete(inv.itemPowerUps, item.ID)
}

// recomputeSetsLocked detaches all set and combination handles and attaches
// the freshly derived ones. Handles of healthy bonus groups are attached even
// when another group fails.
func (inv *Inventory) recomputeSetsLocked() error {
	for _, h := range inv.setPowerUps {
		h.Detach()
	}

	handles, err := inv.factory.SetPowerUps(inv.equippedLocked(), inv.holder, inv.config)
	for _, h := range handles {
		h.Attach()
	}
	inv.setPowerUps = handles

	if err != nil {
		inv.logger.Error("set bonuses partially rejected", "error", err)
		return fmt.Errorf("recomputing set bonuses: %w", err)
	}
	return nil
}

// PowerUpCount returns the number of attached handles owned by the item.
func (inv *Inventory) PowerUpCount(id uuid.UUID) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.itemPowerUps[id])
}

// SetPowerUpCount returns the number of attached set and combination handles.
func (inv *Inventory) SetPowerUpCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.setPowerUps)
}

// Snapshot returns the current values of all attributes the holder knows,
// ordered by attribute name.
func (inv *Inventory) Snapshot() []AttributeValue {
	// Holder.Value обновляет кэш: нужна эксклюзивная блокировка.
	inv.mu.Lock()
	defer inv.mu.Unlock()

	attrs := inv.holder.Attributes()
	values := make([]AttributeValue, 0, len(attrs))
	for _, attr := range attrs {
		values = append(values, AttributeValue{Attribute: attr, Value: inv.holder.Value(attr)})
	}
	return values
}

// AttributeValue is a single evaluated attribute.
type AttributeValue struct {
	Attribute *attribute.Definition
	Value     float32
}
