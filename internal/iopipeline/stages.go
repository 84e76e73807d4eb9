package iopipeline

import (
	"context"

	"github.com/barcraft/bardb/pkg/db"
	"github.com/barcraft/bardb/pkg/records"
	"github.com/barcraft/bardb/pkg/stage"
)

// Stages bundles the staging-file operations of the pipeline. Each
// operation reads its input artifact, applies one transformation and
// writes its output artifact; the transform service exposes the same
// operations over HTTP.
type Stages struct {
	Stager stage.Stager
	DB     db.Operator
}

// ValidateDrinks checks that every raw drink record carries the
// required fields. The returned slice is empty for a valid batch.
func (s *Stages) ValidateDrinks(
	ref stage.Ref,
) ([]records.InvalidRecord, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return nil, err
	}
	return records.Validate(
		recs, records.RequiredDrinkFields, records.FieldDrinkID), nil
}

// FilterNewDrinks dedupes the raw drink batch by id and drops records
// already present in the store. It writes the surviving records as a
// new artifact and reports their count.
func (s *Stages) FilterNewDrinks(
	ctx context.Context, ref stage.Ref,
) (stage.Ref, int, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return "", 0, err
	}

	deduped, err := records.DedupeByID(recs, records.FieldDrinkID)
	if err != nil {
		return "", 0, err
	}

	existing, err := s.DB.ExistingIDs(ctx, "drinks")
	if err != nil {
		return "", 0, err
	}

	fresh, _, err := records.FilterNew(
		deduped, records.FieldDrinkID, existing)
	if err != nil {
		return "", 0, err
	}

	out, err := s.Stager.WriteJSON(stage.KindRawDrinks, fresh)
	if err != nil {
		return "", 0, err
	}
	return out, len(fresh), nil
}

// TransformDrinks maps a raw drink artifact to the canonical CSV shape.
func (s *Stages) TransformDrinks(ref stage.Ref) (stage.Ref, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return "", err
	}

	drinks, err := records.TransformDrinks(recs)
	if err != nil {
		return "", err
	}

	rows := make([][]string, len(drinks))
	for i, d := range drinks {
		rows[i] = d.Row()
	}
	return s.Stager.WriteCSV(stage.KindDrinks, records.DrinkColumns, rows)
}

// StoreDrinks bulk-loads a canonical drink artifact.
func (s *Stages) StoreDrinks(
	ctx context.Context, ref stage.Ref,
) (int64, error) {
	return s.DB.BulkLoad(ctx, s.Stager, ref, "drinks", drinkDBColumns)
}

// UniqueIngredients extracts the sorted set of normalized ingredient
// mentions from a raw drink artifact.
func (s *Stages) UniqueIngredients(ref stage.Ref) ([]string, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return nil, err
	}
	return records.UniqueIngredients(recs), nil
}

// FilterNewIngredients dedupes a raw ingredient batch and drops records
// already present in the store.
func (s *Stages) FilterNewIngredients(
	ctx context.Context, ref stage.Ref,
) (stage.Ref, int, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return "", 0, err
	}

	deduped, err := records.DedupeByID(recs, records.FieldIngredientID)
	if err != nil {
		return "", 0, err
	}

	existing, err := s.DB.ExistingIDs(ctx, "ingredients")
	if err != nil {
		return "", 0, err
	}

	fresh, _, err := records.FilterNew(
		deduped, records.FieldIngredientID, existing)
	if err != nil {
		return "", 0, err
	}

	out, err := s.Stager.WriteJSON(stage.KindRawIngredients, fresh)
	if err != nil {
		return "", 0, err
	}
	return out, len(fresh), nil
}

// TransformIngredients maps a raw ingredient artifact to the canonical
// CSV shape.
func (s *Stages) TransformIngredients(ref stage.Ref) (stage.Ref, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(ref, &recs); err != nil {
		return "", err
	}

	ingredients, err := records.TransformIngredients(recs)
	if err != nil {
		return "", err
	}

	rows := make([][]string, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = ing.Row()
	}
	return s.Stager.WriteCSV(
		stage.KindIngredients, records.IngredientColumns, rows)
}

// StoreIngredients bulk-loads a canonical ingredient artifact.
func (s *Stages) StoreIngredients(
	ctx context.Context, ref stage.Ref,
) (int64, error) {
	return s.DB.BulkLoad(
		ctx, s.Stager, ref, "ingredients", ingredientDBColumns)
}

// TransformLinks cross-references a raw drink artifact against the
// stored ingredient table and writes the unique link pairs as a CSV
// artifact. Unresolved mentions are reported, not fatal.
func (s *Stages) TransformLinks(
	ctx context.Context, drinkRef stage.Ref,
) (stage.Ref, *records.LinkReport, error) {
	var recs []records.Raw
	if err := s.Stager.ReadJSON(drinkRef, &recs); err != nil {
		return "", nil, err
	}

	stored, err := s.DB.NameToID(ctx, "ingredients")
	if err != nil {
		return "", nil, err
	}

	report, err := records.BuildLinks(recs, stored)
	if err != nil {
		return "", nil, err
	}

	rows := make([][]string, len(report.Links))
	for i, l := range report.Links {
		rows[i] = l.Row()
	}

	ref, err := s.Stager.WriteCSV(
		stage.KindLinks, records.LinkColumns, rows)
	if err != nil {
		return "", nil, err
	}
	return ref, report, nil
}

// StoreLinks bulk-loads a link artifact.
func (s *Stages) StoreLinks(
	ctx context.Context, ref stage.Ref,
) (int64, error) {
	return s.DB.BulkLoad(
		ctx, s.Stager, ref, "drink_ingredients_link", linkDBColumns)
}

// Database column orders matching the canonical CSV artifact columns.
var (
	drinkDBColumns = []string{
		"id", "name", "tags", "type", "glass_type", "instructions",
		"image_url",
	}
	ingredientDBColumns = []string{"id", "name", "description"}
	linkDBColumns       = []string{"drink_id", "ingredient_id"}
)
