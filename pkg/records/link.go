package records

import (
	"sort"
	"strconv"
	"strings"

	"github.com/barcraft/bardb/pkg/normalize"
)

// Link is one drink-ingredient association ready for bulk loading.
type Link struct {
	DrinkID      int
	IngredientID int
}

// Row returns the link as an ordered CSV row matching LinkColumns.
func (l Link) Row() []string {
	return []string{strconv.Itoa(l.DrinkID), strconv.Itoa(l.IngredientID)}
}

// LinkReport is the result of cross-referencing a drink batch against the
// stored ingredient set.
type LinkReport struct {
	// Links are the unique (drink, ingredient) pairs, in first-emitted
	// order.
	Links []Link

	// Unresolved lists normalized ingredient mentions with no stored
	// counterpart. Expected when an upstream ingredient search returned
	// no entry; not a failure.
	Unresolved []string
}

// BuildLinks matches the ingredient mentions of each drink against the
// stored ingredient table. stored maps canonical ingredient names to ids.
//
// Matching is case-insensitive on the stored side (canonical names are
// already accent-free) and fully normalized on the mention side (encoding
// fix-up, lower-casing, accent folding). Duplicate pairs collapse: a drink
// listing the same ingredient in several slots links once.
func BuildLinks(drinks []Raw, stored map[string]int) (*LinkReport, error) {
	lookup := storedLookup(stored)

	report := &LinkReport{}
	seen := make(map[Link]struct{})

	for _, drink := range drinks {
		drinkID, err := drink.IntID(FieldDrinkID)
		if err != nil {
			return nil, err
		}

		for i := 1; i <= MaxIngredientSlots; i++ {
			mention := drink.Str(SlotKey(i))
			if mention == "" {
				continue
			}

			key := normalize.Key(mention)
			ingID, ok := lookup[key]
			if !ok {
				report.Unresolved = append(report.Unresolved, key)
				continue
			}

			link := Link{DrinkID: drinkID, IngredientID: ingID}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			report.Links = append(report.Links, link)
		}
	}
	return report, nil
}

// storedLookup builds the case-insensitive match index: one stored
// ingredient id per lower-cased name. Names are visited in sorted order so
// collisions resolve deterministically (last sorted name wins).
func storedLookup(stored map[string]int) map[string]int {
	names := make([]string, 0, len(stored))
	for name := range stored {
		names = append(names, name)
	}
	sort.Strings(names)

	res := make(map[string]int, len(names))
	for _, name := range names {
		res[strings.ToLower(name)] = stored[name]
	}
	return res
}

// UniqueIngredients extracts the set of normalized ingredient mentions
// from a drink batch, sorted for a deterministic contract.
func UniqueIngredients(drinks []Raw) []string {
	set := make(map[string]struct{})

	for _, drink := range drinks {
		for i := 1; i <= MaxIngredientSlots; i++ {
			mention := drink.Str(SlotKey(i))
			if mention == "" {
				continue
			}
			set[normalize.Key(mention)] = struct{}{}
		}
	}

	res := make([]string, 0, len(set))
	for name := range set {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
