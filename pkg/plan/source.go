package plan

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads plan definitions into a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// InMemSource serves a fixed set of plans, useful for tests and
// deployments that do not ship a plans file.
type InMemSource struct {
	plans []Plan
}

func NewInMemSource(plans ...Plan) *InMemSource {
	return &InMemSource{plans: plans}
}

func (s *InMemSource) Load(_ context.Context) (*Catalog, error) {
	return NewCatalog(s.plans...)
}

// YAMLSource loads plans from a YAML file of the form:
//
//	plans:
//	  - tier: free
//	    name: Free
//	    monthly_limit: 10
//	  - tier: starter
//	    name: Starter
//	    monthly_limit: 200
//	    price_id: price_starter_monthly
//	    price: {amount: 900, currency: USD}
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) Load(_ context.Context) (*Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	return NewCatalog(file.Plans...)
}
