// Package catalog defines the schema for catalog.yaml, the file that
// describes the upstream cocktail catalog: its base URL and the set of
// first letters to crawl.
package catalog

// Catalog loads the catalog description from disk.
type Catalog interface {
	Load() (*CatalogConfig, error)
}

// CatalogConfig represents the complete catalog.yaml configuration file.
type CatalogConfig struct {
	// BaseURL is the root of the upstream JSON API, up to and
	// including the API version segment.
	BaseURL string `yaml:"base_url"`

	// Letters lists the first letters to crawl drinks by. Each entry
	// is a single character.
	Letters []string `yaml:"letters"`
}

// Default returns the catalog description used when catalog.yaml does
// not override it.
func Default() *CatalogConfig {
	return &CatalogConfig{
		BaseURL: "https://www.thecocktaildb.com/api/json/v1/1",
		Letters: []string{"a", "l", "n", "r"},
	}
}
