// Package iocatalog loads the catalog.yaml description of the upstream
// cocktail catalog.
package iocatalog

import (
	"os"

	"github.com/barcraft/bardb/pkg/catalog"
	"github.com/barcraft/bardb/pkg/config"
	"gopkg.in/yaml.v3"
)

type iocatalog struct {
	cfg *config.Config
}

func New(cfg *config.Config) catalog.Catalog {
	res := iocatalog{cfg: cfg}
	return &res
}

func (c *iocatalog) Load() (*catalog.CatalogConfig, error) {
	catalogPath := config.CatalogFilePath(c.cfg.HomeDir)
	catalogConfig, err := loadCatalogConfig(catalogPath)
	if err != nil {
		return nil, CatalogConfigError(catalogPath, err)
	}
	return catalogConfig, nil
}

func loadCatalogConfig(path string) (*catalog.CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := catalog.Default()
	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, err
	}

	if res.BaseURL == "" || len(res.Letters) == 0 {
		return catalog.Default(), nil
	}
	return res, nil
}
