// Package attribute implements the per-entity attribute aggregation engine.
//
// Every attribute of an entity is backed by an aggregator holding three
// stage lists of contributing elements:
//
//	value = (base + Σ AddRaw) × Π Multiplicate + Σ AddFinal
//
// Contributions are attached and detached through PowerUp handles. Order inside
// a stage never changes the result.
package attribute

import (
	"fmt"
	"strings"
)

// Definition: идентичность атрибута (DefenseBase, MaximumHealth, ...).
// Сравнивается по указателю: один экземпляр на всё время жизни конфигурации.
type Definition struct {
	Name        string
	Description string
}

// NewDefinition создаёт определение атрибута.
func NewDefinition(name, description string) *Definition {
	return &Definition{Name: name, Description: description}
}

// String returns the attribute name.
func (d *Definition) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.Name
}

// AggregateType is the aggregation stage of a contribution.
type AggregateType int8

const (
	AddRaw       AggregateType = iota // added to the base value
	Multiplicate                      // multiplies (base + raw)
	AddFinal                          // added after multiplication

	stageCount = 3
)

// String returns human-readable stage name.
func (t AggregateType) String() string {
	switch t {
	case AddRaw:
		return "AddRaw"
	case Multiplicate:
		return "Multiplicate"
	case AddFinal:
		return "AddFinal"
	default:
		return "Unknown"
	}
}

// ParseAggregateType parses a stage name as used in game data files.
// Empty string maps to AddRaw.
func ParseAggregateType(s string) (AggregateType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "addraw", "add_raw", "raw":
		return AddRaw, nil
	case "multiplicate", "multiply", "mul":
		return Multiplicate, nil
	case "addfinal", "add_final", "final":
		return AddFinal, nil
	default:
		return AddRaw, fmt.Errorf("unknown aggregate type %q", s)
	}
}

// UnmarshalText allows AggregateType in YAML documents.
func (t *AggregateType) UnmarshalText(text []byte) error {
	parsed, err := ParseAggregateType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (t AggregateType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t AggregateType) valid() bool {
	return t >= AddRaw && t < stageCount
}
