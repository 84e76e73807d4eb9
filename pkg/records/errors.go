package records

import (
	"fmt"

	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingFieldError creates an error for a raw record that lacks a field
// required by the canonical mapping. The error fails the whole batch.
func MissingFieldError(field, recordID string) error {
	if recordID == "" {
		recordID = "MISSING_ID"
	}

	msg := `Raw record is missing a required field

<em>Field:</em> %s
<em>Record id:</em> %s

The batch was rejected; no partial transform was written.`

	vars := []any{field, recordID}

	return &gn.Error{
		Code: errcode.PipelineMissingFieldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"record %s: missing required field %q", recordID, field),
	}
}

// BadRecordIDError creates an error for an id field that does not parse
// as a non-negative integer.
func BadRecordIDError(idKey, raw string, err error) error {
	msg := `Raw record id is not a non-negative integer

<em>Field:</em> %s
<em>Value:</em> %q`

	vars := []any{idKey, raw}

	if err == nil {
		err = fmt.Errorf("negative id")
	}

	return &gn.Error{
		Code: errcode.PipelineBadRecordIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s value %q: %w", idKey, raw, err),
	}
}
