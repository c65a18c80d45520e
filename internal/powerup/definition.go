package powerup

import (
	"fmt"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
)

// FromDefinition expands a bonus definition into unattached handles bound to
// the definition's target attribute: one for the constant part and one per
// attribute relationship.
//
// Returns ErrNotInitialized if the definition, its boost, its target or a
// relationship input is missing.
func FromDefinition(def *model.PowerUpDefinition, holder *attribute.Holder) ([]*attribute.PowerUp, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrNotInitialized)
	}
	if def.Boost == nil {
		return nil, fmt.Errorf("%w: boost of definition %s", ErrNotInitialized, def.ID)
	}
	if def.TargetAttribute == nil {
		return nil, fmt.Errorf("%w: target attribute of definition %s", ErrNotInitialized, def.ID)
	}

	boost := def.Boost
	result := make([]*attribute.PowerUp, 0, 1+len(boost.RelatedValues))

	// Нулевая аддитивная константа рядом с related-частями ничего не добавляет.
	constant := boost.ConstantValue
	skipConstant := len(boost.RelatedValues) > 0 && constant.Value == 0 && constant.AggregateType != attribute.Multiplicate
	if !skipConstant {
		p, err := attribute.NewPowerUp(attribute.Constant(constant.Value), def.TargetAttribute, constant.AggregateType, holder)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.ID, err)
		}
		result = append(result, p)
	}

	for _, rel := range boost.RelatedValues {
		if rel.InputAttribute == nil {
			return nil, fmt.Errorf("%w: relationship input of definition %s", ErrNotInitialized, def.ID)
		}
		element := attribute.NewRelated(holder, rel.InputAttribute, rel.InputOperand)
		p, err := attribute.NewPowerUp(element, def.TargetAttribute, rel.AggregateType, holder)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.ID, err)
		}
		result = append(result, p)
	}

	return result, nil
}
