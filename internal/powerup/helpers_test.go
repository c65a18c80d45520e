package powerup

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

var (
	excellentType = &model.ItemOptionType{ID: uuid.New(), Name: model.OptionTypeExcellent}
	ancientType   = &model.ItemOptionType{ID: uuid.New(), Name: model.OptionTypeAncient}
	optionType    = &model.ItemOptionType{ID: uuid.New(), Name: model.OptionTypeOption}
	harmonyType   = &model.ItemOptionType{ID: uuid.New(), Name: model.OptionTypeHarmony}
)

// logBuffer: slog logger, пишущий в буфер, для проверки диагностик.
type logBuffer struct {
	buf bytes.Buffer
}

func newLogBuffer() (*logBuffer, *slog.Logger) {
	lb := &logBuffer{}
	return lb, slog.New(slog.NewTextHandler(&lb.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (lb *logBuffer) warnings() int {
	return strings.Count(lb.buf.String(), "level=WARN")
}

func attributeHolder() *attribute.Holder {
	return attribute.NewHolder()
}

func newTestFactory(logger *slog.Logger) *Factory {
	opts := DefaultOptions()
	opts.Logger = logger
	return NewFactory(opts)
}

func base(target *attribute.Definition, value float32) *model.ItemBasePowerUpDefinition {
	return &model.ItemBasePowerUpDefinition{TargetAttribute: target, BaseValue: value}
}

func armorDefinition(dropLevel int, defense float32) *model.ItemDefinition {
	return &model.ItemDefinition{
		ID:                    uuid.New(),
		Group:                 8,
		Number:                1,
		Name:                  "Test Armor",
		DropLevel:             dropLevel,
		ItemSlots:             []int{model.ArmorSlot},
		BasePowerUpAttributes: []*model.ItemBasePowerUpDefinition{base(stats.DefenseBase, defense)},
	}
}

func swordDefinition(minDmg, maxDmg float32) *model.ItemDefinition {
	return &model.ItemDefinition{
		ID:        uuid.New(),
		Group:     0,
		Number:    1,
		Name:      "Test Sword",
		DropLevel: 20,
		ItemSlots: []int{model.LeftHandSlot, model.RightHandSlot},
		BasePowerUpAttributes: []*model.ItemBasePowerUpDefinition{
			base(stats.MinimumPhysBaseDmgByWeapon, minDmg),
			base(stats.MaximumPhysBaseDmgByWeapon, maxDmg),
			base(stats.DoubleWieldWeaponCount, 1),
		},
	}
}

func newTestItem(t *testing.T, def *model.ItemDefinition, slot, level int) *model.Item {
	t.Helper()
	item, err := model.NewItem(def, slot, level, 50)
	require.NoError(t, err)
	return item
}

func constantOption(typ *model.ItemOptionType, subType, number int, target *attribute.Definition, value float32) *model.IncreasableItemOption {
	return &model.IncreasableItemOption{
		ID:                uuid.New(),
		Number:            number,
		Name:              target.Name,
		OptionType:        typ,
		SubOptionType:     subType,
		PowerUpDefinition: model.NewConstantPowerUp(target, value, attribute.AddRaw),
	}
}

// triple: (attribute, stage, value) для сравнения мультимножеств.
type triple struct {
	Attr  string
	Stage string
	Value float32
}

func triples(handles []*attribute.PowerUp) []triple {
	result := make([]triple, 0, len(handles))
	for _, h := range handles {
		result = append(result, triple{Attr: h.Target().Name, Stage: h.AggregateType().String(), Value: h.Value()})
	}
	return result
}

func lessTriple(a, b triple) bool {
	if a.Attr != b.Attr {
		return a.Attr < b.Attr
	}
	if a.Stage != b.Stage {
		return a.Stage < b.Stage
	}
	return a.Value < b.Value
}

func handlesOf(handles []*attribute.PowerUp, attr *attribute.Definition) []*attribute.PowerUp {
	var result []*attribute.PowerUp
	for _, h := range handles {
		if h.Target() == attr {
			result = append(result, h)
		}
	}
	return result
}
