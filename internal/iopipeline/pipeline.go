// Package iopipeline orchestrates the catalog reconciliation run:
// fetch, validate, dedupe, transform, link, bulk-load, archive and
// cleanup, expressed as a dependency graph of tasks.
package iopipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/barcraft/bardb/internal/iofetch"
	"github.com/barcraft/bardb/pkg/bardb"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/db"
	"github.com/barcraft/bardb/pkg/records"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/semaphore"
)

type pipeline struct {
	cfg    *config.Config
	stgr   stage.Stager
	db     db.Operator
	fetch  *iofetch.Client
	stages *Stages
}

// New creates a Pipeline over a connected database operator, a stager
// and an upstream catalog client.
func New(
	cfg *config.Config,
	stgr stage.Stager,
	op db.Operator,
	client *iofetch.Client,
) bardb.Pipeline {
	return &pipeline{
		cfg:    cfg,
		stgr:   stgr,
		db:     op,
		fetch:  client,
		stages: &Stages{Stager: stgr, DB: op},
	}
}

// Process-wide admission control for concurrent runs. Sized from the
// first pipeline's configuration.
var (
	runSlotsOnce sync.Once
	runSlots     *semaphore.Weighted
	runSlotsMax  int
)

// runState carries the artifact references the tasks hand to each
// other. The task graph ordering guarantees each field is written
// before a downstream task reads it.
type runState struct {
	rawDrinks           stage.Ref
	filteredDrinks      stage.Ref
	rawIngredients      stage.Ref
	filteredIngredients stage.Ref
	drinksCSV           stage.Ref
	ingredientsCSV      stage.Ref
	linksCSV            stage.Ref

	summary bardb.RunSummary
}

// Run executes the full task graph. At most MaxActiveRuns runs may be
// in flight process-wide; further calls fail immediately.
func (p *pipeline) Run(ctx context.Context) (*bardb.RunSummary, error) {
	runSlotsOnce.Do(func() {
		runSlotsMax = p.cfg.Pipeline.MaxActiveRuns
		runSlots = semaphore.NewWeighted(int64(runSlotsMax))
	})
	if !runSlots.TryAcquire(1) {
		return nil, RunsExceededError(runSlotsMax)
	}
	defer runSlots.Release(1)

	start := time.Now()
	st := &runState{}

	if err := p.runGraph(ctx, p.tasks(st)); err != nil {
		return nil, err
	}

	elapsed := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Pipeline run complete",
		"new_drinks", st.summary.NewDrinks,
		"new_ingredients", st.summary.NewIngredients,
		"links", st.summary.Links,
		"duration", elapsed,
	)
	gn.Message(
		"<em>Loaded %s drinks, %s ingredients, %s links in %s</em>",
		humanize.Comma(st.summary.DrinksLoaded),
		humanize.Comma(st.summary.IngredientsLoaded),
		humanize.Comma(st.summary.LinksLoaded),
		elapsed,
	)

	res := st.summary
	return &res, nil
}

// tasks builds the run graph. Drink and ingredient branches run
// concurrently after the shared filter step and join at link creation.
func (p *pipeline) tasks(st *runState) []task {
	return []task{
		{
			name:      "fetchCatalog",
			retryable: true,
			run: func(ctx context.Context) error {
				return p.fetchCatalog(ctx, st)
			},
		},
		{
			name:      "fetchAlterations",
			deps:      []string{"fetchCatalog"},
			retryable: true,
			run: func(ctx context.Context) error {
				return p.fetchAlterations(ctx, st)
			},
		},
		{
			name: "validate",
			deps: []string{"fetchAlterations"},
			run: func(context.Context) error {
				invalid, err := p.stages.ValidateDrinks(st.rawDrinks)
				if err != nil {
					return err
				}
				if len(invalid) > 0 {
					return ValidationError(invalid)
				}
				return nil
			},
		},
		{
			name:      "filterNewDrinks",
			deps:      []string{"validate"},
			retryable: true,
			run: func(ctx context.Context) error {
				ref, n, err := p.stages.FilterNewDrinks(
					ctx, st.rawDrinks)
				if err != nil {
					return err
				}
				st.filteredDrinks = ref
				st.summary.NewDrinks = n
				return nil
			},
		},
		{
			name: "transformDrinks",
			deps: []string{"filterNewDrinks"},
			run: func(context.Context) error {
				ref, err := p.stages.TransformDrinks(st.filteredDrinks)
				if err != nil {
					return err
				}
				st.drinksCSV = ref
				return nil
			},
		},
		{
			name:      "storeDrinks",
			deps:      []string{"transformDrinks"},
			retryable: true,
			run: func(ctx context.Context) error {
				n, err := p.stages.StoreDrinks(ctx, st.drinksCSV)
				if err != nil {
					return err
				}
				st.summary.DrinksLoaded = n
				return nil
			},
		},
		{
			name:      "searchIngredients",
			deps:      []string{"filterNewDrinks"},
			retryable: true,
			run: func(ctx context.Context) error {
				return p.searchIngredients(ctx, st)
			},
		},
		{
			name:      "filterIngredients",
			deps:      []string{"searchIngredients"},
			retryable: true,
			run: func(ctx context.Context) error {
				ref, n, err := p.stages.FilterNewIngredients(
					ctx, st.rawIngredients)
				if err != nil {
					return err
				}
				st.filteredIngredients = ref
				st.summary.NewIngredients = n
				return nil
			},
		},
		{
			name: "transformIngredients",
			deps: []string{"filterIngredients"},
			run: func(context.Context) error {
				ref, err := p.stages.TransformIngredients(
					st.filteredIngredients)
				if err != nil {
					return err
				}
				st.ingredientsCSV = ref
				return nil
			},
		},
		{
			name:      "storeIngredients",
			deps:      []string{"transformIngredients"},
			retryable: true,
			run: func(ctx context.Context) error {
				n, err := p.stages.StoreIngredients(
					ctx, st.ingredientsCSV)
				if err != nil {
					return err
				}
				st.summary.IngredientsLoaded = n
				return nil
			},
		},
		{
			name: "createLinks",
			deps: []string{"storeDrinks", "storeIngredients"},
			run: func(ctx context.Context) error {
				ref, report, err := p.stages.TransformLinks(
					ctx, st.filteredDrinks)
				if err != nil {
					return err
				}
				for _, name := range report.Unresolved {
					slog.Warn("Ingredient mention has no stored record",
						"name", name)
				}
				st.linksCSV = ref
				st.summary.Links = len(report.Links)
				return nil
			},
		},
		{
			name:      "storeLinks",
			deps:      []string{"createLinks"},
			retryable: true,
			run: func(ctx context.Context) error {
				n, err := p.stages.StoreLinks(ctx, st.linksCSV)
				if err != nil {
					return err
				}
				st.summary.LinksLoaded = n
				return nil
			},
		},
		{
			name: "archiveStagingFiles",
			deps: []string{"storeLinks"},
			run: func(context.Context) error {
				dir, err := p.stgr.Archive(
					st.drinksCSV, st.ingredientsCSV)
				if err != nil {
					return err
				}
				st.summary.BackupDir = dir
				return nil
			},
		},
		{
			name: "cleanupWorkingArea",
			deps: []string{"archiveStagingFiles"},
			run: func(context.Context) error {
				return p.stgr.Cleanup()
			},
		},
	}
}

// fetchCatalog pulls the drink lists for every configured letter and
// stages them as one raw batch.
func (p *pipeline) fetchCatalog(
	ctx context.Context, st *runState,
) error {
	letters := p.fetch.Letters()

	bar := pb.Full.Start(len(letters))
	bar.Set("prefix", "Fetching catalog: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var batch []records.Raw
	for _, letter := range letters {
		drinks, err := p.fetch.DrinksByLetter(ctx, letter)
		if err != nil {
			return err
		}
		batch = append(batch, drinks...)
		bar.Increment()
	}

	ref, err := p.stgr.WriteJSON(stage.KindRawDrinks, batch)
	if err != nil {
		return err
	}
	st.rawDrinks = ref

	slog.Info("Fetched catalog",
		"letters", len(letters), "drinks", len(batch))
	return nil
}

// fetchAlterations re-searches every fetched drink by name so altered
// versions of known drinks enter the batch, then replaces the staged
// raw artifact with the merged result.
func (p *pipeline) fetchAlterations(
	ctx context.Context, st *runState,
) error {
	var batch []records.Raw
	if err := p.stgr.ReadJSON(st.rawDrinks, &batch); err != nil {
		return err
	}

	bar := pb.Full.Start(len(batch))
	bar.Set("prefix", "Fetching alterations: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	merged := batch
	for _, rec := range batch {
		name := rec.Str(records.FieldDrinkName)
		if name == "" {
			bar.Increment()
			continue
		}
		alts, err := p.fetch.DrinksByName(ctx, name)
		if err != nil {
			return err
		}
		merged = append(merged, alts...)
		bar.Increment()
	}

	ref, err := p.stgr.WriteJSON(stage.KindRawDrinks, merged)
	if err != nil {
		return err
	}
	if err := p.stgr.Remove(st.rawDrinks); err != nil {
		return err
	}
	st.rawDrinks = ref
	return nil
}

// searchIngredients extracts the unique ingredient mentions of the
// filtered drinks and fetches the detail record of each.
func (p *pipeline) searchIngredients(
	ctx context.Context, st *runState,
) error {
	names, err := p.stages.UniqueIngredients(st.filteredDrinks)
	if err != nil {
		return err
	}

	bar := pb.Full.Start(len(names))
	bar.Set("prefix", "Fetching ingredients: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var batch []records.Raw
	for _, name := range names {
		recs, err := p.fetch.IngredientByName(ctx, name)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			slog.Warn("Ingredient not found upstream", "name", name)
		}
		batch = append(batch, recs...)
		bar.Increment()
	}

	ref, err := p.stgr.WriteJSON(stage.KindRawIngredients, batch)
	if err != nil {
		return err
	}
	st.rawIngredients = ref

	slog.Info("Fetched ingredient details",
		"mentions", len(names), "records", len(batch))
	return nil
}

// resetRunSlots is a test hook; it must not run concurrently with Run.
func resetRunSlots() {
	runSlotsOnce = sync.Once{}
	runSlots = nil
}
