package data

import "github.com/udisondev/mugo/internal/attribute"

// YAML-схема документов. Ссылки между документами: по именам.

type levelBonusDoc struct {
	Tables []levelBonusTableYAML `yaml:"tables"`
}

type levelBonusTableYAML struct {
	Name  string          `yaml:"name"`
	Bonus map[int]float32 `yaml:"bonus"`
}

type optionsDoc struct {
	Options []optionYAML `yaml:"options"`
}

type optionYAML struct {
	Name      string            `yaml:"name"`
	Number    int               `yaml:"number"`
	Type      string            `yaml:"type"`
	SubType   int               `yaml:"sub_type"`
	LevelType string            `yaml:"level_type"` // option (default) | item
	PowerUp   *powerUpYAML      `yaml:"power_up"`
	Levels    []optionLevelYAML `yaml:"levels"`
}

type optionLevelYAML struct {
	Level             int          `yaml:"level"`
	RequiredItemLevel int          `yaml:"required_item_level"`
	PowerUp           *powerUpYAML `yaml:"power_up"`
}

type powerUpYAML struct {
	Target    string                  `yaml:"target"`
	Value     float32                 `yaml:"value"`
	Aggregate attribute.AggregateType `yaml:"aggregate"`
	Related   []relationshipYAML      `yaml:"related"`
}

type relationshipYAML struct {
	Input     string                  `yaml:"input"`
	Operand   float32                 `yaml:"operand"`
	Aggregate attribute.AggregateType `yaml:"aggregate"`
}

type itemsDoc struct {
	Items []itemYAML `yaml:"items"`
}

type itemYAML struct {
	Name      string            `yaml:"name"`
	Group     int               `yaml:"group"`
	Number    int               `yaml:"number"`
	DropLevel int               `yaml:"drop_level"`
	Slots     []string          `yaml:"slots"`
	Skill     int               `yaml:"skill"`
	Base      []basePowerUpYAML `yaml:"base"`
	Sets      []string          `yaml:"sets"`
}

type basePowerUpYAML struct {
	Target     string                  `yaml:"target"`
	Value      float32                 `yaml:"value"`
	Aggregate  attribute.AggregateType `yaml:"aggregate"`
	LevelBonus string                  `yaml:"level_bonus"`
}

type setsDoc struct {
	Sets []setYAML `yaml:"sets"`
}

type setYAML struct {
	Name          string        `yaml:"name"`
	MinimumItems  int           `yaml:"minimum_items"`
	CountDistinct bool          `yaml:"count_distinct"`
	AlwaysApplies bool          `yaml:"always_applies"`
	SetLevel      int           `yaml:"set_level"`
	Options       []optionYAML  `yaml:"options"`
	Items         []setItemYAML `yaml:"items"`
}

type setItemYAML struct {
	Item        string `yaml:"item"`
	BonusOption string `yaml:"bonus_option"`
}

type combinationsDoc struct {
	Combinations []combinationYAML `yaml:"combinations"`
}

type combinationYAML struct {
	Description  string            `yaml:"description"`
	Multiple     bool              `yaml:"multiple"`
	Requirements []requirementYAML `yaml:"requirements"`
	Bonus        *powerUpYAML      `yaml:"bonus"`
}

type requirementYAML struct {
	Type    string `yaml:"type"`
	SubType int    `yaml:"sub_type"`
	Count   int    `yaml:"count"`
}
