package sources

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"feed-dashboard/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, payload string) interface{} {
	t.Helper()
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeSeismic(t *testing.T) {
	raw := decode(t, `{"features":[{"properties":{"place":"10km N of X","mag":4.2,"time":1700000000000}}]}`)

	table, err := NormalizeSeismic(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Place", "Magnitude", "Time"}, table.Columns)
	require.Equal(t, 1, table.Len())
	row := table.Rows[0]
	assert.Equal(t, "10km N of X", row["Place"])
	assert.Equal(t, 4.2, row["Magnitude"])
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), row["Time"])
}

func TestNormalizeSeismic_NullMagnitude(t *testing.T) {
	raw := decode(t, `{"features":[{"properties":{"place":null,"mag":null,"time":0}}]}`)

	table, err := NormalizeSeismic(raw)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Nil(t, table.Rows[0]["Magnitude"])
	assert.Equal(t, "", table.Rows[0]["Place"])
}

func TestNormalizeAirQuality(t *testing.T) {
	raw := decode(t, `{"results":[{"location":"Station 1","city":"Delhi","measurements":[
		{"parameter":"pm25","value":88.5,"unit":"µg/m³"},
		{"parameter":"o3","value":12,"unit":"ppm"}]}]}`)

	table, err := NormalizeAirQuality(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Location", "City", "Parameter", "Value", "Unit"}, table.Columns)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, models.Row{
		"Location":  "Station 1",
		"City":      "Delhi",
		"Parameter": "pm25",
		"Value":     88.5,
		"Unit":      "µg/m³",
	}, table.Rows[0])
}

func TestNormalizeAirQuality_OptionalCity(t *testing.T) {
	raw := decode(t, `{"results":[{"location":"Station 1","measurements":[{"value":1}]}]}`)

	table, err := NormalizeAirQuality(raw)
	require.NoError(t, err)
	assert.Equal(t, "", table.Rows[0]["City"])
	assert.Equal(t, "", table.Rows[0]["Parameter"])
	assert.Equal(t, "", table.Rows[0]["Unit"])
}

func TestNormalizeCrypto(t *testing.T) {
	raw := decode(t, `[{"name":"Bitcoin","symbol":"btc","current_price":50000,"market_cap":1e12,"ath":69000}]`)

	table, err := NormalizeCrypto(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "symbol", "current_price", "market_cap"}, table.Columns)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, models.Row{
		"name":          "Bitcoin",
		"symbol":        "btc",
		"current_price": 50000.0,
		"market_cap":    1e12,
	}, table.Rows[0])
}

func TestNormalize_EmptyArrays(t *testing.T) {
	tests := map[string]struct {
		normalize Normalizer
		payload   string
	}{
		"seismic":     {NormalizeSeismic, `{"features": []}`},
		"air-quality": {NormalizeAirQuality, `{"results": []}`},
		"crypto":      {NormalizeCrypto, `[]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := tt.normalize(decode(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, 0, table.Len())
			assert.NotEmpty(t, table.Columns)
		})
	}
}

func TestNormalize_ShapeErrors(t *testing.T) {
	tests := map[string]struct {
		normalize Normalizer
		payload   string
	}{
		"seismic missing features":       {NormalizeSeismic, `{}`},
		"seismic features not array":     {NormalizeSeismic, `{"features": {}}`},
		"seismic bare array":             {NormalizeSeismic, `[]`},
		"seismic time as string":         {NormalizeSeismic, `{"features":[{"properties":{"place":"x","mag":1,"time":"now"}}]}`},
		"seismic mag as string":          {NormalizeSeismic, `{"features":[{"properties":{"place":"x","mag":"big","time":1}}]}`},
		"seismic no properties":          {NormalizeSeismic, `{"features":[{}]}`},
		"air-quality missing results":    {NormalizeAirQuality, `{}`},
		"air-quality empty measurements": {NormalizeAirQuality, `{"results":[{"location":"a","measurements":[]}]}`},
		"air-quality no measurements":    {NormalizeAirQuality, `{"results":[{"location":"a"}]}`},
		"air-quality value as string":    {NormalizeAirQuality, `{"results":[{"measurements":[{"value":"1"}]}]}`},
		"crypto object":                  {NormalizeCrypto, `{"name":"Bitcoin"}`},
		"crypto missing price":           {NormalizeCrypto, `[{"name":"Bitcoin","symbol":"btc","market_cap":1}]`},
		"crypto null market cap":         {NormalizeCrypto, `[{"name":"Bitcoin","symbol":"btc","current_price":1,"market_cap":null}]`},
		"crypto entry not object":        {NormalizeCrypto, `[1, 2]`},
		"crypto bad second entry":        {NormalizeCrypto, `[{"name":"Bitcoin","symbol":"btc","current_price":1,"market_cap":1},{"name":"Ether"}]`},
		"seismic bad second feature":     {NormalizeSeismic, `{"features":[{"properties":{"place":"x","mag":1,"time":1}},{}]}`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := tt.normalize(decode(t, tt.payload))
			require.Error(t, err)
			var shapeErr *ShapeError
			assert.True(t, errors.As(err, &shapeErr), "expected ShapeError, got %T", err)
			assert.Empty(t, table.Columns)
			assert.Zero(t, table.Len())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tests := map[string]struct {
		normalize Normalizer
		payload   string
	}{
		"seismic": {NormalizeSeismic, `{"features":[
			{"properties":{"place":"a","mag":1.5,"time":1700000000000}},
			{"properties":{"place":"b","mag":null,"time":1700000060000}}]}`},
		"air-quality": {NormalizeAirQuality, `{"results":[{"location":"a","city":"b","measurements":[{"parameter":"pm10","value":3,"unit":"x"}]}]}`},
		"crypto":      {NormalizeCrypto, `[{"name":"Ether","symbol":"eth","current_price":3000,"market_cap":4e11}]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			raw := decode(t, tt.payload)
			first, err := tt.normalize(raw)
			require.NoError(t, err)
			second, err := tt.normalize(raw)
			require.NoError(t, err)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("normalizing twice differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := NewRegistry(Builtin(nil)...)
	require.NoError(t, err)

	assert.Equal(t, []string{USGS, OpenAQ, CoinGecko}, registry.Names())
	assert.Equal(t, USGS, registry.Default())

	spec, err := registry.Lookup(CoinGecko)
	require.NoError(t, err)
	assert.Contains(t, spec.EndpointURL, "api.coingecko.com")
	assert.NotNil(t, spec.Normalize)

	_, err = registry.Lookup("Weather")
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestRegistry_EndpointOverride(t *testing.T) {
	registry, err := NewRegistry(Builtin(map[string]string{OpenAQ: "http://localhost:9999/latest"})...)
	require.NoError(t, err)

	spec, err := registry.Lookup(OpenAQ)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/latest", spec.EndpointURL)

	spec, err = registry.Lookup(USGS)
	require.NoError(t, err)
	assert.Contains(t, spec.EndpointURL, "earthquake.usgs.gov")
}

func TestNewRegistry_Invalid(t *testing.T) {
	_, err := NewRegistry()
	assert.Error(t, err)

	_, err = NewRegistry(Spec{Name: "a", Normalize: NormalizeCrypto}, Spec{Name: "a", Normalize: NormalizeCrypto})
	assert.Error(t, err)

	_, err = NewRegistry(Spec{Name: "a"})
	assert.Error(t, err)
}
