package records

// DedupeByID collapses a batch to one record per parsed integer id.
// When an id repeats, the last occurrence wins; surviving records keep the
// order in which their id was first seen.
func DedupeByID(recs []Raw, idKey string) ([]Raw, error) {
	byID := make(map[int]Raw, len(recs))
	var order []int

	for _, rec := range recs {
		id, err := rec.IntID(idKey)
		if err != nil {
			return nil, err
		}
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = rec
	}

	res := make([]Raw, 0, len(order))
	for _, id := range order {
		res = append(res, byID[id])
	}
	return res, nil
}

// FilterNew returns the records whose parsed integer id is not in
// existing, plus the count of records dropped as already stored.
// Running FilterNew twice against the same id set is idempotent.
func FilterNew(
	recs []Raw,
	idKey string,
	existing map[int]struct{},
) ([]Raw, int, error) {
	res := make([]Raw, 0, len(recs))
	dropped := 0

	for _, rec := range recs {
		id, err := rec.IntID(idKey)
		if err != nil {
			return nil, 0, err
		}
		if _, ok := existing[id]; ok {
			dropped++
			continue
		}
		res = append(res, rec)
	}
	return res, dropped, nil
}
