package attribute

import (
	"errors"
	"fmt"
)

var (
	ErrNilElement   = errors.New("element cannot be nil")
	ErrNilAttribute = errors.New("target attribute cannot be nil")
	ErrNilHolder    = errors.New("holder cannot be nil")
	ErrInvalidStage = errors.New("invalid aggregate type")
)

// PowerUp binds one element to one attribute and stage of one holder.
// It is owned by whatever created it (an equipped item, a set bonus) and is
// attached/detached explicitly.
type PowerUp struct {
	element Element
	target  *Definition
	stage   AggregateType
	holder  *Holder

	index int // позиция в списке стадии; -1 если не прикреплён
}

// NewPowerUp создаёт неприкреплённый PowerUp.
func NewPowerUp(element Element, target *Definition, stage AggregateType, holder *Holder) (*PowerUp, error) {
	if element == nil {
		return nil, ErrNilElement
	}
	if target == nil {
		return nil, ErrNilAttribute
	}
	if holder == nil {
		return nil, ErrNilHolder
	}
	if !stage.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStage, stage)
	}
	return &PowerUp{
		element: element,
		target:  target,
		stage:   stage,
		holder:  holder,
		index:   -1,
	}, nil
}

// Attach adds the contribution to the holder. No-op if already attached.
func (p *PowerUp) Attach() {
	if p.index >= 0 {
		return
	}
	p.holder.attach(p)
}

// Detach removes the contribution from the holder. No-op if not attached.
func (p *PowerUp) Detach() {
	if p.index < 0 {
		return
	}
	p.holder.detach(p)
}

// Attached reports whether the contribution is currently counted.
func (p *PowerUp) Attached() bool { return p.index >= 0 }

func (p *PowerUp) Element() Element { return p.element }
func (p *PowerUp) Target() *Definition { return p.target }
func (p *PowerUp) AggregateType() AggregateType { return p.stage }
func (p *PowerUp) Holder() *Holder { return p.holder }

// Value evaluates the bound element.
func (p *PowerUp) Value() float32 { return p.element.Value() }

// String returns "Target Stage=value".
func (p *PowerUp) String() string {
	return fmt.Sprintf("%s %s=%g", p.target, p.stage, p.element.Value())
}
