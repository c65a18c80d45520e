package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/mugo/internal/config"
	"github.com/udisondev/mugo/internal/data"
	"github.com/udisondev/mugo/internal/db"
	"github.com/udisondev/mugo/internal/equipment"
	"github.com/udisondev/mugo/internal/model"
	"github.com/udisondev/mugo/internal/powerup"
)

var (
	fromDB  bool
	showAll bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [loadout.yaml...]",
	Short: "Evaluate the attributes of characters in loadout files",
	Long: `Calc equips the items of every character in the given loadout files and
prints the resulting attribute values. Without arguments the configured
loadout file is used.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().BoolVar(&fromDB, "from-db", false, "Load game configuration from the latest database revision")
	calcCmd.Flags().BoolVar(&showAll, "all", false, "Print zero values too")
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.LoadoutPath}
	}

	gameCfg, err := loadGameConfiguration(ctx)
	if err != nil {
		return err
	}
	slog.Info("game configuration loaded",
		"items", len(gameCfg.ItemDefinitions),
		"sets", len(gameCfg.ItemSetGroups),
		"fingerprint", fmt.Sprintf("%x", gameCfg.Fingerprint[:8]))

	reports, err := evaluateFiles(ctx, gameCfg, newFactory(cfg.Rules), paths)
	if err != nil {
		return err
	}
	return printReports(os.Stdout, reports, showAll)
}

func loadGameConfiguration(ctx context.Context) (*model.GameConfiguration, error) {
	if !fromDB {
		return data.LoadDir(ctx, cfg.DataDir)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return data.Load(ctx, database.Documents())
}

func newFactory(rules config.Rules) *powerup.Factory {
	opts := powerup.DefaultOptions()
	opts.ExceptionSkillNumber = rules.ExceptionSkillNumber
	opts.StaffWeaponGroup = rules.StaffWeaponGroup
	opts.DarkHorseNumber = rules.DarkHorseNumber
	opts.Logger = slog.Default()
	return powerup.NewFactory(opts)
}

// report: результат расчёта одного персонажа.
type report struct {
	Source    string
	Character string
	Values    []equipment.AttributeValue
	// Err: ошибки экипировки; значения посчитаны без отвергнутых вкладов.
	Err error
}

// evaluateFiles считает все loadout-файлы параллельно. Порядок отчётов
// совпадает с порядком файлов и персонажей в них.
func evaluateFiles(ctx context.Context, gameCfg *model.GameConfiguration, factory *powerup.Factory, paths []string) ([]report, error) {
	perFile := make([][]report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loadouts, err := data.LoadLoadout(path, gameCfg)
			if err != nil {
				return err
			}
			reports := make([]report, 0, len(loadouts))
			for _, l := range loadouts {
				r := evaluate(l, gameCfg, factory)
				r.Source = path
				reports = append(reports, r)
			}
			perFile[i] = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var reports []report
	for _, r := range perFile {
		reports = append(reports, r...)
	}
	return reports, nil
}

func evaluate(l data.Loadout, gameCfg *model.GameConfiguration, factory *powerup.Factory) report {
	inv := equipment.NewInventory(nil, factory, gameCfg, slog.Default().With("character", l.Name))
	for attr, value := range l.Bases {
		inv.Holder().SetBase(attr, value)
	}

	var errs []error
	for _, item := range l.Items {
		if err := inv.EquipItem(item, item.ItemSlot); err != nil {
			errs = append(errs, err)
		}
	}
	return report{Character: l.Name, Values: inv.Snapshot(), Err: errors.Join(errs...)}
}

func printReports(out io.Writer, reports []report, all bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%s)\n", r.Character, r.Source)
		if r.Err != nil {
			fmt.Fprintf(w, "!! %v\n", r.Err)
		}
		for _, v := range r.Values {
			if v.Value == 0 && !all {
				continue
			}
			fmt.Fprintf(w, "%s\t%g\n", v.Attribute.Name, v.Value)
		}
	}
	return w.Flush()
}
