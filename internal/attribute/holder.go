package attribute

import (
	"fmt"
	"sort"
)

// Holder: хранилище атрибутов одной сущности (персонаж, питомец).
// Создаётся вместе с сущностью и живёт столько же.
//
// Holder is not safe for concurrent use: it is mutated only by the owning
// entity's processing.
type Holder struct {
	aggregators map[*Definition]*aggregator

	// version растёт при любом структурном изменении; кэши агрегаторов
	// валидны только для своей версии (Related-элементы читают чужие атрибуты).
	version uint64
	// cycleHits считает повторные чтения атрибута во время его же вычисления.
	// Значение, при вычислении которого случилось такое чтение, не кэшируется.
	cycleHits uint64
}

// aggregator держит вклады одного атрибута по трём стадиям.
type aggregator struct {
	base   float32
	stages [stageCount][]*PowerUp

	cached     float32
	cachedAt   uint64 // holder.version + 1 at cache time; 0 = empty
	evaluating bool
}

// NewHolder создаёт пустой Holder.
func NewHolder() *Holder {
	return &Holder{aggregators: make(map[*Definition]*aggregator)}
}

func (h *Holder) aggregatorOf(attr *Definition) *aggregator {
	agg, ok := h.aggregators[attr]
	if !ok {
		agg = &aggregator{}
		h.aggregators[attr] = agg
	}
	return agg
}

func (h *Holder) touch() {
	h.version++
}

// SetBase sets the base value of an attribute (0 by default).
func (h *Holder) SetBase(attr *Definition, value float32) {
	if attr == nil {
		return
	}
	h.aggregatorOf(attr).base = value
	h.touch()
}

// Base returns the base value of an attribute.
func (h *Holder) Base(attr *Definition) float32 {
	if agg, ok := h.aggregators[attr]; ok {
		return agg.base
	}
	return 0
}

// Attach creates a PowerUp for element and attaches it.
//
// Returns:
//   - *PowerUp: attached handle (detach it to remove the contribution)
//   - error: nil element/attribute or unknown stage
func (h *Holder) Attach(element Element, attr *Definition, stage AggregateType) (*PowerUp, error) {
	p, err := NewPowerUp(element, attr, stage, h)
	if err != nil {
		return nil, err
	}
	p.Attach()
	return p, nil
}

// Detach removes the contribution of p. Detaching a handle twice, or a handle
// of another holder, is a no-op.
func (h *Holder) Detach(p *PowerUp) {
	if p == nil || p.holder != h {
		return
	}
	p.Detach()
}

func (h *Holder) attach(p *PowerUp) {
	agg := h.aggregatorOf(p.target)
	list := agg.stages[p.stage]
	p.index = len(list)
	agg.stages[p.stage] = append(list, p)
	h.touch()
}

// detach: swap-remove за O(1); порядок внутри стадии не важен.
func (h *Holder) detach(p *PowerUp) {
	agg, ok := h.aggregators[p.target]
	if !ok {
		return
	}
	list := agg.stages[p.stage]
	if p.index < 0 || p.index >= len(list) || list[p.index] != p {
		return
	}

	last := len(list) - 1
	if p.index != last {
		list[p.index] = list[last]
		list[p.index].index = p.index
	}
	list[last] = nil
	agg.stages[p.stage] = list[:last]
	p.index = -1
	h.touch()
}

// Value returns the effective value of an attribute.
func (h *Holder) Value(attr *Definition) float32 {
	agg, ok := h.aggregators[attr]
	if !ok {
		return 0
	}
	if agg.cachedAt == h.version+1 {
		return agg.cached
	}
	if agg.evaluating {
		// Related-цикл: повторное чтение видит только базу.
		h.cycleHits++
		return agg.base
	}

	agg.evaluating = true
	version, hits := h.version, h.cycleHits
	value := agg.compute()
	agg.evaluating = false

	if version == h.version && hits == h.cycleHits {
		agg.cached = value
		agg.cachedAt = version + 1
	}
	return value
}

func (a *aggregator) compute() float32 {
	raw := a.base
	for _, p := range a.stages[AddRaw] {
		raw += p.element.Value()
	}

	multiplier := float32(1)
	for _, p := range a.stages[Multiplicate] {
		multiplier *= p.element.Value()
	}

	final := float32(0)
	for _, p := range a.stages[AddFinal] {
		final += p.element.Value()
	}

	return raw*multiplier + final
}

// Count returns the number of attached contributions of attr at stage.
func (h *Holder) Count(attr *Definition, stage AggregateType) int {
	agg, ok := h.aggregators[attr]
	if !ok || !stage.valid() {
		return 0
	}
	return len(agg.stages[stage])
}

// Attributes returns every attribute that has a base value or contributions,
// sorted by name.
func (h *Holder) Attributes() []*Definition {
	attrs := make([]*Definition, 0, len(h.aggregators))
	for attr, agg := range h.aggregators {
		if agg.base == 0 && len(agg.stages[AddRaw])+len(agg.stages[Multiplicate])+len(agg.stages[AddFinal]) == 0 {
			continue
		}
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
	return attrs
}

// String is a debugging aid.
func (h *Holder) String() string {
	return fmt.Sprintf("Holder{attributes=%d, version=%d}", len(h.aggregators), h.version)
}
