package records

// InvalidRecord describes one raw record that failed schema validation.
type InvalidRecord struct {
	ID            string   `json:"id"`
	MissingFields []string `json:"missing_fields"`
}

// Validate checks that every record carries all required fields.
// A field with an empty or null value is still present; only absent keys
// invalidate a record. Returns one entry per invalid record, preserving
// batch order; an empty result means the batch is valid.
func Validate(recs []Raw, required []string, idKey string) []InvalidRecord {
	var res []InvalidRecord

	for _, rec := range recs {
		var missing []string
		for _, f := range required {
			if !rec.Has(f) {
				missing = append(missing, f)
			}
		}
		if len(missing) == 0 {
			continue
		}

		id := rec.Str(idKey)
		if id == "" {
			id = "UNKNOWN"
		}
		res = append(res, InvalidRecord{ID: id, MissingFields: missing})
	}
	return res
}
