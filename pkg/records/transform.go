package records

import (
	"strconv"
	"strings"
)

// DrinkColumns is the ordered canonical column set of the drinks table.
var DrinkColumns = []string{
	"id", "name", "tags", "type", "glassType", "instructions", "imageUrl",
}

// IngredientColumns is the ordered canonical column set of the
// ingredients table.
var IngredientColumns = []string{"id", "name", "description"}

// LinkColumns is the ordered column set of the drink-ingredient link
// table.
var LinkColumns = []string{"drinkId", "ingredientId"}

// CanonicalDrink is a drink record in the exact shape required for bulk
// loading.
type CanonicalDrink struct {
	ID           int
	Name         string
	Tags         string
	Type         string
	GlassType    string
	Instructions string
	ImageURL     string
}

// Row returns the drink as an ordered CSV row matching DrinkColumns.
func (d CanonicalDrink) Row() []string {
	return []string{
		strconv.Itoa(d.ID),
		d.Name,
		d.Tags,
		d.Type,
		d.GlassType,
		d.Instructions,
		d.ImageURL,
	}
}

// CanonicalIngredient is an ingredient record ready for bulk loading.
type CanonicalIngredient struct {
	ID          int
	Name        string
	Description string
}

// Row returns the ingredient as an ordered CSV row matching
// IngredientColumns.
func (i CanonicalIngredient) Row() []string {
	return []string{strconv.Itoa(i.ID), i.Name, i.Description}
}

// TransformDrinks maps raw drink records to canonical drinks.
// A record missing any mapped field fails the whole batch: partial
// transforms would break downstream completeness assumptions.
func TransformDrinks(recs []Raw) ([]CanonicalDrink, error) {
	res := make([]CanonicalDrink, 0, len(recs))

	for _, rec := range recs {
		fields := []string{
			FieldDrinkName, FieldTags, FieldCategory,
			FieldGlass, FieldInstructions, FieldThumb,
		}
		for _, f := range append([]string{FieldDrinkID}, fields...) {
			if !rec.Has(f) {
				return nil, MissingFieldError(f, rec.Str(FieldDrinkID))
			}
		}

		id, err := rec.IntID(FieldDrinkID)
		if err != nil {
			return nil, err
		}

		res = append(res, CanonicalDrink{
			ID:           id,
			Name:         clean(rec.Str(FieldDrinkName)),
			Tags:         clean(rec.Str(FieldTags)),
			Type:         clean(rec.Str(FieldCategory)),
			GlassType:    clean(rec.Str(FieldGlass)),
			Instructions: clean(rec.Str(FieldInstructions)),
			ImageURL:     clean(rec.Str(FieldThumb)),
		})
	}
	return res, nil
}

// TransformIngredients maps raw ingredient records to canonical
// ingredients with the same batch-failure semantics as TransformDrinks.
func TransformIngredients(recs []Raw) ([]CanonicalIngredient, error) {
	res := make([]CanonicalIngredient, 0, len(recs))

	for _, rec := range recs {
		fields := []string{
			FieldIngredientID, FieldIngredientName, FieldDescription,
		}
		for _, f := range fields {
			if !rec.Has(f) {
				return nil, MissingFieldError(f, rec.Str(FieldIngredientID))
			}
		}

		id, err := rec.IntID(FieldIngredientID)
		if err != nil {
			return nil, err
		}

		res = append(res, CanonicalIngredient{
			ID:          id,
			Name:        clean(rec.Str(FieldIngredientName)),
			Description: clean(rec.Str(FieldDescription)),
		})
	}
	return res, nil
}

// clean trims surrounding whitespace and removes embedded newline and
// carriage-return characters. Removal is exact, not replacement with
// spaces, to match the storage layer's expectations.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
