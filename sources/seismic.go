package sources

import (
	"time"

	"feed-dashboard/models"
)

const (
	ColPlace     = "Place"
	ColMagnitude = "Magnitude"
	ColTime      = "Time"
)

// NormalizeSeismic flattens a USGS GeoJSON summary feed.
func NormalizeSeismic(raw interface{}) (models.Table, error) {
	table := models.NewTable(ColPlace, ColMagnitude, ColTime)

	doc, ok := asObject(raw)
	if !ok {
		return models.Table{}, shapeErr(USGS, "document is not an object")
	}
	features, ok := asArray(doc["features"])
	if !ok {
		return models.Table{}, shapeErr(USGS, `missing "features" array`)
	}

	for i, f := range features {
		feature, ok := asObject(f)
		if !ok {
			return models.Table{}, shapeErr(USGS, "feature %d is not an object", i)
		}
		props, ok := asObject(feature["properties"])
		if !ok {
			return models.Table{}, shapeErr(USGS, "feature %d has no properties", i)
		}
		place, ok := optString(props, "place", "")
		if !ok {
			return models.Table{}, shapeErr(USGS, "feature %d: place is not a string", i)
		}
		mag, ok := optNumber(props, "mag")
		if !ok {
			return models.Table{}, shapeErr(USGS, "feature %d: mag is not a number", i)
		}
		ms, ok := reqNumber(props, "time")
		if !ok {
			return models.Table{}, shapeErr(USGS, "feature %d: time is not a number", i)
		}
		if err := table.Append(models.Row{
			ColPlace:     place,
			ColMagnitude: mag,
			ColTime:      time.UnixMilli(int64(ms)).UTC(),
		}); err != nil {
			return models.Table{}, err
		}
	}
	return table, nil
}
