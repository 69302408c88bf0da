package sources

import (
	"feed-dashboard/models"
)

const (
	ColLocation  = "Location"
	ColCity      = "City"
	ColParameter = "Parameter"
	ColValue     = "Value"
	ColUnit      = "Unit"
)

// NormalizeAirQuality flattens an OpenAQ "latest" response, keeping only the
// first measurement of every location.
func NormalizeAirQuality(raw interface{}) (models.Table, error) {
	table := models.NewTable(ColLocation, ColCity, ColParameter, ColValue, ColUnit)

	doc, ok := asObject(raw)
	if !ok {
		return models.Table{}, shapeErr(OpenAQ, "document is not an object")
	}
	results, ok := asArray(doc["results"])
	if !ok {
		return models.Table{}, shapeErr(OpenAQ, `missing "results" array`)
	}

	for i, r := range results {
		result, ok := asObject(r)
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d is not an object", i)
		}
		location, ok := optString(result, "location", "")
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: location is not a string", i)
		}
		city, ok := optString(result, "city", "")
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: city is not a string", i)
		}
		measurements, ok := asArray(result["measurements"])
		if !ok || len(measurements) == 0 {
			return models.Table{}, shapeErr(OpenAQ, "result %d has no measurements", i)
		}
		m, ok := asObject(measurements[0])
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: measurement is not an object", i)
		}
		value, ok := reqNumber(m, "value")
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: value is not a number", i)
		}
		parameter, ok := optString(m, "parameter", "")
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: parameter is not a string", i)
		}
		unit, ok := optString(m, "unit", "")
		if !ok {
			return models.Table{}, shapeErr(OpenAQ, "result %d: unit is not a string", i)
		}
		if err := table.Append(models.Row{
			ColLocation:  location,
			ColCity:      city,
			ColParameter: parameter,
			ColValue:     value,
			ColUnit:      unit,
		}); err != nil {
			return models.Table{}, err
		}
	}
	return table, nil
}
