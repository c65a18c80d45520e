package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/mugo/internal/attribute"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/stats"
)

// Namespace of the deterministic ids assigned to loaded entities: the same
// document always yields the same ids.
var Namespace = uuid.MustParse("6f1c2d0e-5b7a-4c1e-9a53-2f0d8e4b7c91")

// setBonusOptionType: тип опций сета, если в документе он не указан.
const setBonusOptionType = "SetBonus"

func entityID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(kind+"\x00"+key))
}

// LoadDir loads the configuration from the documents of a directory.
func LoadDir(ctx context.Context, dir string) (*model.GameConfiguration, error) {
	return Load(ctx, DirSource{Dir: dir})
}

// Load loads the configuration from a document source.
func Load(ctx context.Context, src DocumentSource) (*model.GameConfiguration, error) {
	docs, err := src.LoadDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	return Parse(ctx, docs)
}

// decoded: результат декодирования всех документов.
type decoded struct {
	levelBonus   levelBonusDoc
	options      optionsDoc
	items        itemsDoc
	sets         setsDoc
	combinations combinationsDoc
}

// Parse decodes the documents and resolves the references between them.
// Documents are decoded concurrently; resolution is sequential.
func Parse(ctx context.Context, docs []Document) (*model.GameConfiguration, error) {
	var d decoded
	targets := map[string]any{
		DocLevelBonus:   &d.levelBonus,
		DocOptions:      &d.options,
		DocItems:        &d.items,
		DocSets:         &d.sets,
		DocCombinations: &d.combinations,
	}

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if !isKnownDocument(doc.Name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, doc.Name)
		}
		if _, dup := seen[doc.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDocument, doc.Name)
		}
		seen[doc.Name] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, doc := range docs {
		target := targets[doc.Name]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := yaml.Unmarshal(doc.Content, target); err != nil {
				return fmt.Errorf("decoding %s: %w", doc.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := newResolver()
	if err := r.resolve(&d); err != nil {
		return nil, err
	}
	r.cfg.Fingerprint = Fingerprint(docs)

	slog.Debug("loaded game configuration",
		"items", len(r.cfg.ItemDefinitions),
		"options", len(r.cfg.ItemOptions),
		"sets", len(r.cfg.ItemSetGroups),
		"combinations", len(r.cfg.ItemOptionCombinationBonuses))

	return r.cfg, nil
}

// resolver строит GameConfiguration, разрешая ссылки по именам.
type resolver struct {
	cfg *model.GameConfiguration

	optionTypes map[string]*model.ItemOptionType
	tables      map[string]*model.LevelBonusTable
	options     map[string]*model.IncreasableItemOption
	items       map[string]*model.ItemDefinition
	sets        map[string]*model.ItemSetGroup
}

func newResolver() *resolver {
	r := &resolver{
		cfg:         &model.GameConfiguration{},
		optionTypes: make(map[string]*model.ItemOptionType),
		tables:      make(map[string]*model.LevelBonusTable),
		options:     make(map[string]*model.IncreasableItemOption),
		items:       make(map[string]*model.ItemDefinition),
		sets:        make(map[string]*model.ItemSetGroup),
	}
	for _, name := range []string{
		model.OptionTypeExcellent,
		model.OptionTypeAncient,
		model.OptionTypeAncientBonus,
		model.OptionTypeLuck,
		model.OptionTypeOption,
		model.OptionTypeHarmony,
		model.OptionTypeWing,
		model.OptionTypeSocket,
	} {
		r.optionType(name)
	}
	return r
}

func (r *resolver) resolve(d *decoded) error {
	if err := r.resolveLevelBonus(d.levelBonus); err != nil {
		return fmt.Errorf("%s: %w", DocLevelBonus, err)
	}
	if err := r.resolveOptions(d.options); err != nil {
		return fmt.Errorf("%s: %w", DocOptions, err)
	}
	// Группы сетов создаются до предметов: предметы ссылаются на них.
	if err := r.declareSets(d.sets); err != nil {
		return fmt.Errorf("%s: %w", DocSets, err)
	}
	if err := r.resolveItems(d.items); err != nil {
		return fmt.Errorf("%s: %w", DocItems, err)
	}
	if err := r.resolveSets(d.sets); err != nil {
		return fmt.Errorf("%s: %w", DocSets, err)
	}
	if err := r.resolveCombinations(d.combinations); err != nil {
		return fmt.Errorf("%s: %w", DocCombinations, err)
	}
	return nil
}

// optionType returns the option type with the given name, creating it on
// first use.
func (r *resolver) optionType(name string) *model.ItemOptionType {
	if t, ok := r.optionTypes[name]; ok {
		return t
	}
	t := &model.ItemOptionType{ID: entityID("option_type", name), Name: name}
	r.optionTypes[name] = t
	r.cfg.ItemOptionTypes = append(r.cfg.ItemOptionTypes, t)
	return t
}

func (r *resolver) resolveLevelBonus(doc levelBonusDoc) error {
	for _, y := range doc.Tables {
		if y.Name == "" {
			return fmt.Errorf("%w: level bonus table without name", ErrInvalidValue)
		}
		if _, dup := r.tables[y.Name]; dup {
			return fmt.Errorf("%w: level bonus table %q", ErrDuplicateName, y.Name)
		}

		table := &model.LevelBonusTable{ID: entityID("level_bonus", y.Name), Name: y.Name}
		for level := 0; level <= model.MaxItemLevel; level++ {
			if value, ok := y.Bonus[level]; ok {
				table.BonusPerLevel = append(table.BonusPerLevel, model.LevelBonus{Level: level, AdditionalValue: value})
			}
		}
		if len(table.BonusPerLevel) != len(y.Bonus) {
			return fmt.Errorf("%w: table %q has levels outside 0..%d", ErrInvalidValue, y.Name, model.MaxItemLevel)
		}

		r.tables[y.Name] = table
		r.cfg.LevelBonusTables = append(r.cfg.LevelBonusTables, table)
	}
	return nil
}

func (r *resolver) resolveOptions(doc optionsDoc) error {
	for _, y := range doc.Options {
		if _, dup := r.options[y.Name]; dup {
			return fmt.Errorf("%w: option %q", ErrDuplicateName, y.Name)
		}
		option, err := r.buildOption("option", y.Name, y)
		if err != nil {
			return err
		}
		r.options[y.Name] = option
		r.cfg.ItemOptions = append(r.cfg.ItemOptions, option)
	}
	return nil
}

func (r *resolver) buildOption(kind, key string, y optionYAML) (*model.IncreasableItemOption, error) {
	if y.Name == "" {
		return nil, fmt.Errorf("%w: %s without name", ErrInvalidValue, kind)
	}
	if y.Type == "" {
		return nil, fmt.Errorf("%w: option %q without type", ErrInvalidValue, y.Name)
	}

	option := &model.IncreasableItemOption{
		ID:            entityID(kind, key),
		Number:        y.Number,
		Name:          y.Name,
		OptionType:    r.optionType(y.Type),
		SubOptionType: y.SubType,
	}

	switch y.LevelType {
	case "", "option":
		option.LevelType = model.LevelTypeOptionLevel
	case "item":
		option.LevelType = model.LevelTypeItemLevel
	default:
		return nil, fmt.Errorf("%w: option %q level_type %q", ErrInvalidValue, y.Name, y.LevelType)
	}

	if y.PowerUp != nil {
		def, err := r.buildPowerUp(kind+"/"+key, y.PowerUp)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", y.Name, err)
		}
		option.PowerUpDefinition = def
	}

	for _, l := range y.Levels {
		level := &model.ItemOptionOfLevel{Level: l.Level, RequiredItemLevel: l.RequiredItemLevel}
		if l.PowerUp != nil {
			def, err := r.buildPowerUp(fmt.Sprintf("%s/%s/level/%d", kind, key, l.Level), l.PowerUp)
			if err != nil {
				return nil, fmt.Errorf("option %q level %d: %w", y.Name, l.Level, err)
			}
			level.PowerUpDefinition = def
		}
		option.LevelDependentOptions = append(option.LevelDependentOptions, level)
	}
	return option, nil
}

func (r *resolver) buildPowerUp(key string, y *powerUpYAML) (*model.PowerUpDefinition, error) {
	target, err := lookupAttribute(y.Target)
	if err != nil {
		return nil, err
	}

	def := &model.PowerUpDefinition{
		ID:              entityID("power_up", key),
		TargetAttribute: target,
		Boost: &model.PowerUpValue{
			ConstantValue: model.SimpleValue{Value: y.Value, AggregateType: y.Aggregate},
		},
	}
	for _, rel := range y.Related {
		input, err := lookupAttribute(rel.Input)
		if err != nil {
			return nil, err
		}
		def.Boost.RelatedValues = append(def.Boost.RelatedValues, model.AttributeRelationship{
			InputAttribute: input,
			InputOperand:   rel.Operand,
			AggregateType:  rel.Aggregate,
		})
	}
	return def, nil
}

func lookupAttribute(name string) (*attribute.Definition, error) {
	attr, ok := stats.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q", ErrUnknownReference, name)
	}
	return attr, nil
}

func (r *resolver) declareSets(doc setsDoc) error {
	for _, y := range doc.Sets {
		if y.Name == "" {
			return fmt.Errorf("%w: set without name", ErrInvalidValue)
		}
		if _, dup := r.sets[y.Name]; dup {
			return fmt.Errorf("%w: set %q", ErrDuplicateName, y.Name)
		}
		group := &model.ItemSetGroup{
			ID:               entityID("set", y.Name),
			Name:             y.Name,
			MinimumItemCount: y.MinimumItems,
			CountDistinct:    y.CountDistinct,
			AlwaysApplies:    y.AlwaysApplies,
			SetLevel:         y.SetLevel,
		}
		r.sets[y.Name] = group
		r.cfg.ItemSetGroups = append(r.cfg.ItemSetGroups, group)
	}
	return nil
}

func (r *resolver) resolveItems(doc itemsDoc) error {
	for _, y := range doc.Items {
		if y.Name == "" {
			return fmt.Errorf("%w: item without name", ErrInvalidValue)
		}
		if _, dup := r.items[y.Name]; dup {
			return fmt.Errorf("%w: item %q", ErrDuplicateName, y.Name)
		}

		if r.cfg.FindItem(y.Group, y.Number) != nil {
			return fmt.Errorf("%w: item %d/%d", ErrDuplicateName, y.Group, y.Number)
		}

		def := &model.ItemDefinition{
			ID:          entityID("item", fmt.Sprintf("%d/%d", y.Group, y.Number)),
			Group:       y.Group,
			Number:      y.Number,
			Name:        y.Name,
			DropLevel:   y.DropLevel,
			SkillNumber: y.Skill,
		}

		for _, name := range y.Slots {
			slot, ok := model.ParseSlot(name)
			if !ok {
				return fmt.Errorf("%w: item %q slot %q", ErrInvalidValue, y.Name, name)
			}
			def.ItemSlots = append(def.ItemSlots, slot)
		}

		for _, b := range y.Base {
			target, err := lookupAttribute(b.Target)
			if err != nil {
				return fmt.Errorf("item %q: %w", y.Name, err)
			}
			base := &model.ItemBasePowerUpDefinition{
				TargetAttribute: target,
				BaseValue:       b.Value,
				AggregateType:   b.Aggregate,
			}
			if b.LevelBonus != "" {
				table, ok := r.tables[b.LevelBonus]
				if !ok {
					return fmt.Errorf("%w: item %q level bonus table %q", ErrUnknownReference, y.Name, b.LevelBonus)
				}
				base.BonusPerLevelTable = table
			}
			def.BasePowerUpAttributes = append(def.BasePowerUpAttributes, base)
		}

		for _, name := range y.Sets {
			group, ok := r.sets[name]
			if !ok {
				return fmt.Errorf("%w: item %q set %q", ErrUnknownReference, y.Name, name)
			}
			def.PossibleItemSetGroups = append(def.PossibleItemSetGroups, group)
		}

		r.items[y.Name] = def
		r.cfg.ItemDefinitions = append(r.cfg.ItemDefinitions, def)
	}
	return nil
}

func (r *resolver) resolveSets(doc setsDoc) error {
	for _, y := range doc.Sets {
		group := r.sets[y.Name]

		for _, o := range y.Options {
			if o.Type == "" {
				o.Type = setBonusOptionType
			}
			option, err := r.buildOption("set_option", y.Name+"/"+o.Name, o)
			if err != nil {
				return fmt.Errorf("set %q: %w", y.Name, err)
			}
			group.Options = append(group.Options, option)
		}

		for _, m := range y.Items {
			def, ok := r.items[m.Item]
			if !ok {
				return fmt.Errorf("%w: set %q item %q", ErrUnknownReference, y.Name, m.Item)
			}
			member := &model.ItemOfItemSet{
				ID:             entityID("set_item", y.Name+"/"+m.Item),
				ItemSetGroup:   group,
				ItemDefinition: def,
			}
			if m.BonusOption != "" {
				option, ok := r.options[m.BonusOption]
				if !ok {
					return fmt.Errorf("%w: set %q bonus option %q", ErrUnknownReference, y.Name, m.BonusOption)
				}
				member.BonusOption = option
			}
			group.Items = append(group.Items, member)
			if !containsGroup(def.PossibleItemSetGroups, group) {
				def.PossibleItemSetGroups = append(def.PossibleItemSetGroups, group)
			}
		}

		if group.MinimumItemCount <= 0 || group.MinimumItemCount > group.TotalItems() {
			group.MinimumItemCount = group.TotalItems()
		}
	}
	return nil
}

func containsGroup(groups []*model.ItemSetGroup, group *model.ItemSetGroup) bool {
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}

func (r *resolver) resolveCombinations(doc combinationsDoc) error {
	for i, y := range doc.Combinations {
		if y.Bonus == nil {
			return fmt.Errorf("%w: combination %q without bonus", ErrInvalidValue, y.Description)
		}
		key := fmt.Sprintf("%d/%s", i, y.Description)
		bonus, err := r.buildPowerUp("combination/"+key, y.Bonus)
		if err != nil {
			return fmt.Errorf("combination %q: %w", y.Description, err)
		}

		combination := &model.ItemOptionCombinationBonus{
			ID:                   entityID("combination", key),
			Description:          y.Description,
			Bonus:                bonus,
			AppliesMultipleTimes: y.Multiple,
		}
		for _, req := range y.Requirements {
			if req.Type == "" {
				return fmt.Errorf("%w: combination %q requirement without type", ErrInvalidValue, y.Description)
			}
			if req.Count <= 0 {
				return fmt.Errorf("%w: combination %q requires %d options", ErrInvalidValue, y.Description, req.Count)
			}
			combination.Requirements = append(combination.Requirements, model.CombinationBonusRequirement{
				OptionType:    r.optionType(req.Type),
				SubOptionType: req.SubType,
				MinimumCount:  req.Count,
			})
		}
		r.cfg.ItemOptionCombinationBonuses = append(r.cfg.ItemOptionCombinationBonuses, combination)
	}
	return nil
}
