package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
)

// Loadout: персонаж с базовыми атрибутами и надетыми предметами.
type Loadout struct {
	Name  string
	Bases map[*attribute.Definition]float32
	Items []*model.Item
}

type loadoutDoc struct {
	Characters []characterYAML `yaml:"characters"`
}

type characterYAML struct {
	Name  string             `yaml:"name"`
	Base  map[string]float32 `yaml:"base"`
	Items []loadoutItemYAML  `yaml:"items"`
}

type loadoutItemYAML struct {
	Item       string              `yaml:"item"`
	Slot       string              `yaml:"slot"`
	Level      int                 `yaml:"level"`
	Durability *float64            `yaml:"durability"`
	Options    []loadoutOptionYAML `yaml:"options"`
	Sets       []string            `yaml:"sets"`
}

type loadoutOptionYAML struct {
	Option string `yaml:"option"`
	Level  int    `yaml:"level"`
}

// defaultDurability: прочность предмета, если в loadout она не указана.
const defaultDurability = 255

// LoadLoadout reads and parses a loadout file.
func LoadLoadout(path string, cfg *model.GameConfiguration) ([]Loadout, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loadout %s: %w", path, err)
	}
	loadouts, err := ParseLoadout(content, cfg)
	if err != nil {
		return nil, fmt.Errorf("loadout %s: %w", path, err)
	}
	return loadouts, nil
}

// ParseLoadout builds the characters of a loadout document against cfg.
// Item ids are random: every parse yields fresh item instances.
func ParseLoadout(content []byte, cfg *model.GameConfiguration) ([]Loadout, error) {
	var doc loadoutDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decoding loadout: %w", err)
	}

	result := make([]Loadout, 0, len(doc.Characters))
	for _, c := range doc.Characters {
		loadout := Loadout{Name: c.Name, Bases: make(map[*attribute.Definition]float32, len(c.Base))}
		for name, value := range c.Base {
			attr, err := lookupAttribute(name)
			if err != nil {
				return nil, fmt.Errorf("character %q: %w", c.Name, err)
			}
			loadout.Bases[attr] = value
		}

		for _, y := range c.Items {
			item, err := buildItem(y, cfg)
			if err != nil {
				return nil, fmt.Errorf("character %q: %w", c.Name, err)
			}
			loadout.Items = append(loadout.Items, item)
		}
		result = append(result, loadout)
	}
	return result, nil
}

func buildItem(y loadoutItemYAML, cfg *model.GameConfiguration) (*model.Item, error) {
	def := cfg.FindItemByName(y.Item)
	if def == nil {
		return nil, fmt.Errorf("%w: item %q", ErrUnknownReference, y.Item)
	}
	slot, ok := model.ParseSlot(y.Slot)
	if !ok {
		return nil, fmt.Errorf("%w: item %q slot %q", ErrInvalidValue, y.Item, y.Slot)
	}

	durability := float64(defaultDurability)
	if y.Durability != nil {
		durability = *y.Durability
	}
	item, err := model.NewItem(def, slot, y.Level, durability)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", y.Item, err)
	}

	for _, o := range y.Options {
		option := cfg.FindOption(o.Option)
		if option == nil {
			return nil, fmt.Errorf("%w: item %q option %q", ErrUnknownReference, y.Item, o.Option)
		}
		item.AddOption(option, o.Level)
	}

	for _, name := range y.Sets {
		group := cfg.FindSetGroup(name)
		if group == nil {
			return nil, fmt.Errorf("%w: item %q set %q", ErrUnknownReference, y.Item, name)
		}
		member := memberOf(group, def)
		if member == nil {
			return nil, fmt.Errorf("%w: item %q is not a member of set %q", ErrInvalidValue, y.Item, name)
		}
		item.AddSetGroup(member)
		if member.BonusOption != nil {
			item.AddOption(member.BonusOption, 1)
		}
	}
	return item, nil
}

func memberOf(group *model.ItemSetGroup, def *model.ItemDefinition) *model.ItemOfItemSet {
	for _, m := range group.Items {
		if m.ItemDefinition == def {
			return m
		}
	}
	return nil
}
