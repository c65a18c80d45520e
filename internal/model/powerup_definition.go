package model

import (
	"github.com/google/uuid"

	"github.com/udisondev/mugo/internal/attribute"
)

// PowerUpDefinition describes a bonus on one target attribute, e.g. the
// boost of an item option or of a set bonus.
type PowerUpDefinition struct {
	ID              uuid.UUID
	TargetAttribute *attribute.Definition

	// Boost == nil означает, что definition не инициализирован (ошибка данных).
	Boost *PowerUpValue
}

// PowerUpValue is the boost of a PowerUpDefinition: a constant part and
// optional parts depending on other attributes of the same holder.
type PowerUpValue struct {
	ConstantValue SimpleValue
	RelatedValues []AttributeRelationship
}

// SimpleValue is a constant contribution at a given stage.
type SimpleValue struct {
	Value         float32
	AggregateType attribute.AggregateType
}

// AttributeRelationship contributes InputAttribute × InputOperand.
type AttributeRelationship struct {
	InputAttribute *attribute.Definition
	InputOperand   float32
	AggregateType  attribute.AggregateType
}

// NewConstantPowerUp is a shortcut for a definition with a constant boost.
func NewConstantPowerUp(target *attribute.Definition, value float32, aggregateType attribute.AggregateType) *PowerUpDefinition {
	return &PowerUpDefinition{
		ID:              uuid.New(),
		TargetAttribute: target,
		Boost: &PowerUpValue{
			ConstantValue: SimpleValue{Value: value, AggregateType: aggregateType},
		},
	}
}
