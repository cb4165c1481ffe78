package models

// Feature is a GeoJSON-like point feature consumed by the map explorer client
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry holds a GeoJSON point, coordinates ordered [lng, lat]
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureCollection is the body of the map feature endpoint
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewReportFeature builds the map feature for a report
func NewReportFeature(r Report) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: [2]float64{r.Location.Lng, r.Location.Lat},
		},
		Properties: map[string]interface{}{
			"id":        r.ID.Hex(),
			"title":     r.Title,
			"category":  r.Category,
			"thumbnail": r.ImageURL,
			"status":    r.Status(),
		},
	}
}
