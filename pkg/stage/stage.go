// Package stage defines the contract for staging artifacts, the files
// pipeline tasks use to hand results to their downstream tasks.
package stage

// Ref points at one staging artifact. A stage that produces a Ref owns
// the file until a downstream stage consumes it; consumption ends with
// removal or relocation to the archive.
type Ref string

// Kinds of staging artifacts. The kind prefixes the artifact file name
// so a working directory stays inspectable during a run.
const (
	KindRawDrinks      = "raw_drinks"
	KindRawIngredients = "raw_ingredients"
	KindDrinks         = "drinks"
	KindIngredients    = "ingredients"
	KindLinks          = "links"
)

// Stager reads and writes staging artifacts. Implementations decide
// where artifacts live; Ref values are only meaningful to the Stager
// that produced them.
type Stager interface {
	// WriteJSON stores v as a JSON artifact of the given kind and
	// returns its reference.
	WriteJSON(kind string, v any) (Ref, error)

	// ReadJSON loads the artifact into v. A reference to a missing
	// file is a hard error, never an empty result.
	ReadJSON(ref Ref, v any) error

	// WriteCSV stores a header row plus data rows as a CSV artifact.
	WriteCSV(kind string, header []string, rows [][]string) (Ref, error)

	// ReadCSV returns the artifact's header and data rows.
	ReadCSV(ref Ref) (header []string, rows [][]string, err error)

	// Path resolves a reference to an absolute file path.
	Path(ref Ref) string

	// Remove deletes a consumed artifact.
	Remove(ref Ref) error

	// Archive copies the given artifacts into a new timestamp-named
	// directory under the backup root, removes the originals, and
	// returns the directory path.
	Archive(refs ...Ref) (string, error)

	// Cleanup removes every remaining file in the working area.
	// Failure to remove a leftover is an error, not a warning.
	Cleanup() error
}
