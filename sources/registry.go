// Package sources holds the fixed set of public feeds the dashboard can show
// and the normalizers that flatten each feed into a models.Table.
package sources

import (
	"errors"
	"fmt"

	"feed-dashboard/models"
)

const (
	USGS      = "USGS Earthquakes"
	OpenAQ    = "OpenAQ Air Quality"
	CoinGecko = "CoinGecko Crypto Prices"
)

var ErrUnknownSource = errors.New("unknown source")

// Normalizer flattens a decoded JSON document into a table.
type Normalizer func(raw interface{}) (models.Table, error)

type Spec struct {
	Name        string
	EndpointURL string
	Normalize   Normalizer
}

// Builtin returns the three feeds in priority order. A non-empty entry in
// endpoints replaces the default URL of the source with that name.
func Builtin(endpoints map[string]string) []Spec {
	specs := []Spec{
		{
			Name:        USGS,
			EndpointURL: "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson",
			Normalize:   NormalizeSeismic,
		},
		{
			Name:        OpenAQ,
			EndpointURL: "https://api.openaq.org/v2/latest?limit=100",
			Normalize:   NormalizeAirQuality,
		},
		{
			Name:        CoinGecko,
			EndpointURL: "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=50&page=1",
			Normalize:   NormalizeCrypto,
		},
	}
	for i := range specs {
		if url, ok := endpoints[specs[i].Name]; ok && url != "" {
			specs[i].EndpointURL = url
		}
	}
	return specs
}

// Registry is read-only once built.
type Registry struct {
	order []string
	specs map[string]Spec
}

func NewRegistry(specs ...Spec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, errors.New("registry needs at least one source")
	}
	r := &Registry{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]Spec, len(specs)),
	}
	for _, s := range specs {
		if s.Name == "" {
			return nil, errors.New("source without a name")
		}
		if s.Normalize == nil {
			return nil, fmt.Errorf("source %q has no normalizer", s.Name)
		}
		if _, ok := r.specs[s.Name]; ok {
			return nil, fmt.Errorf("duplicate source %q", s.Name)
		}
		r.order = append(r.order, s.Name)
		r.specs[s.Name] = s
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return s, nil
}

// Names returns the source names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Default is the source shown when none is selected.
func (r *Registry) Default() string {
	return r.order[0]
}
