package records_test

import (
	"testing"

	"github.com/barcraft/bardb/pkg/records"
	"github.com/stretchr/testify/assert"
)

func fullDrink(id string) records.Raw {
	return records.Raw{
		"idDrink":         id,
		"strDrink":        "Margarita",
		"strTags":         "IBA,Classic",
		"strCategory":     "Ordinary Drink",
		"strGlass":        "Cocktail glass",
		"strInstructions": "Shake with ice.",
		"strDrinkThumb":   "https://example.com/m.jpg",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input []records.Raw
		want  []records.InvalidRecord
	}{
		{
			name:  "valid batch",
			input: []records.Raw{fullDrink("1"), fullDrink("2")},
			want:  nil,
		},
		{
			name: "null values are still present",
			input: []records.Raw{func() records.Raw {
				d := fullDrink("1")
				d["strTags"] = nil
				return d
			}()},
			want: nil,
		},
		{
			name: "missing fields reported per record",
			input: []records.Raw{
				fullDrink("1"),
				func() records.Raw {
					d := fullDrink("2")
					delete(d, "strGlass")
					delete(d, "strTags")
					return d
				}(),
			},
			want: []records.InvalidRecord{
				{ID: "2", MissingFields: []string{"strTags", "strGlass"}},
			},
		},
		{
			name: "record without id reported as UNKNOWN",
			input: []records.Raw{func() records.Raw {
				d := fullDrink("3")
				delete(d, "idDrink")
				return d
			}()},
			want: []records.InvalidRecord{
				{ID: "UNKNOWN", MissingFields: []string{"idDrink"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := records.Validate(
				tt.input,
				records.RequiredDrinkFields,
				records.FieldDrinkID,
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
