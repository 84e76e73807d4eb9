package records_test

import (
	"testing"

	"github.com/barcraft/bardb/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drinkWithSlots(id string, slots ...string) records.Raw {
	d := records.Raw{"idDrink": id}
	for i, s := range slots {
		d[records.SlotKey(i+1)] = s
	}
	return d
}

func TestBuildLinks(t *testing.T) {
	stored := map[string]int{
		"tequila":      1,
		"triple sec":   2,
		"lime juice":   3,
		"jagermeister": 4,
	}

	tests := []struct {
		name           string
		drinks         []records.Raw
		wantLinks      []records.Link
		wantUnresolved []string
	}{
		{
			name: "straight matches",
			drinks: []records.Raw{
				drinkWithSlots("11007", "Tequila", "Triple sec", "Lime juice"),
			},
			wantLinks: []records.Link{
				{DrinkID: 11007, IngredientID: 1},
				{DrinkID: 11007, IngredientID: 2},
				{DrinkID: 11007, IngredientID: 3},
			},
		},
		{
			name: "repeated slots collapse to one link",
			drinks: []records.Raw{
				drinkWithSlots("5", "Tequila", "TEQUILA", "tequila"),
			},
			wantLinks: []records.Link{{DrinkID: 5, IngredientID: 1}},
		},
		{
			name: "accented mention matches folded stored name",
			drinks: []records.Raw{
				drinkWithSlots("6", "Jägermeister"),
			},
			wantLinks: []records.Link{{DrinkID: 6, IngredientID: 4}},
		},
		{
			name: "mis-decoded mention matches after fix-up",
			drinks: []records.Raw{
				drinkWithSlots("7", "JÃ¤germeister"),
			},
			wantLinks: []records.Link{{DrinkID: 7, IngredientID: 4}},
		},
		{
			name: "unresolved mention is skipped with a warning",
			drinks: []records.Raw{
				drinkWithSlots("8", "Tequila", "Unicorn Tears"),
			},
			wantLinks:      []records.Link{{DrinkID: 8, IngredientID: 1}},
			wantUnresolved: []string{"unicorn tears"},
		},
		{
			name: "empty and null slots are ignored",
			drinks: []records.Raw{func() records.Raw {
				d := drinkWithSlots("9", "Tequila", "")
				d[records.SlotKey(3)] = nil
				return d
			}()},
			wantLinks: []records.Link{{DrinkID: 9, IngredientID: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := records.BuildLinks(tt.drinks, stored)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLinks, report.Links)
			assert.Equal(t, tt.wantUnresolved, report.Unresolved)
		})
	}
}

// No two entries of the output ever share a (drinkId, ingredientId)
// tuple, across drinks as well as within one drink.
func TestBuildLinksUniqueness(t *testing.T) {
	stored := map[string]int{"gin": 10, "tonic": 11}
	drinks := []records.Raw{
		drinkWithSlots("1", "Gin", "gin", "GIN", "Tonic"),
		drinkWithSlots("2", "Gin", "Tonic", "Tonic"),
	}

	report, err := records.BuildLinks(drinks, stored)
	require.NoError(t, err)

	seen := make(map[records.Link]struct{})
	for _, l := range report.Links {
		_, dup := seen[l]
		assert.False(t, dup, "duplicate link %+v", l)
		seen[l] = struct{}{}
	}
	assert.Len(t, report.Links, 4)
}

func TestBuildLinksCaseInsensitiveStoredNames(t *testing.T) {
	// Stored names with mixed case still match mentions.
	stored := map[string]int{"Triple Sec": 2}
	report, err := records.BuildLinks(
		[]records.Raw{drinkWithSlots("3", "triple sec")}, stored)
	require.NoError(t, err)
	assert.Equal(t,
		[]records.Link{{DrinkID: 3, IngredientID: 2}}, report.Links)
}

func TestUniqueIngredients(t *testing.T) {
	drinks := []records.Raw{
		drinkWithSlots("1", "Tequila", "Lime Juice"),
		drinkWithSlots("2", "TEQUILA", "Jägermeister"),
		drinkWithSlots("3", "JÃ¤germeister"),
	}

	got := records.UniqueIngredients(drinks)
	assert.Equal(t,
		[]string{"jagermeister", "lime juice", "tequila"}, got)
}
