// Package records implements the pure record logic of the reconciliation
// pipeline: intra-batch deduplication, store filtering, canonical field
// transformation and drink-ingredient linking. The package performs no I/O;
// staging and store access live in the internal/io* packages.
package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names of raw drink records, as the upstream catalog returns them.
const (
	FieldDrinkID      = "idDrink"
	FieldDrinkName    = "strDrink"
	FieldTags         = "strTags"
	FieldCategory     = "strCategory"
	FieldGlass        = "strGlass"
	FieldInstructions = "strInstructions"
	FieldThumb        = "strDrinkThumb"

	FieldIngredientID   = "idIngredient"
	FieldIngredientName = "strIngredient"
	FieldDescription    = "strDescription"
)

// MaxIngredientSlots is the number of positional strIngredientN fields a
// raw drink record can carry.
const MaxIngredientSlots = 15

// RequiredDrinkFields are validated before any drink enters the pipeline.
// The fields must be present; empty or null values are acceptable.
var RequiredDrinkFields = []string{
	FieldDrinkID,
	FieldDrinkName,
	FieldTags,
	FieldCategory,
	FieldGlass,
	FieldInstructions,
	FieldThumb,
}

// Raw is one raw catalog record as decoded from JSON. Values are either
// strings or nulls; unknown keys are carried along untouched.
type Raw map[string]any

// Has reports whether the key is present in the record, even with a null
// value.
func (r Raw) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Str returns the string value for key. Absent keys and nulls yield "".
func (r Raw) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// IntID parses the record's id field as a non-negative integer.
// Upstream ids may be zero-padded, so comparisons always use the parsed
// value.
func (r Raw) IntID(idKey string) (int, error) {
	raw := strings.TrimSpace(r.Str(idKey))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, BadRecordIDError(idKey, raw, err)
	}
	return id, nil
}

// SlotKey returns the field name of the i-th ingredient slot (1-based).
func SlotKey(i int) string {
	return fmt.Sprintf("strIngredient%d", i)
}
