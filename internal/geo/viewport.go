// Package geo derives map viewports and GeoJSON pins from the property
// collection.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dealscope/server/config"
	"dealscope/server/internal/models"
)

// Viewport is the map window enclosing the current property collection.
type Viewport struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
	CenterLat    float64 `json:"center_latitude"`
	CenterLon    float64 `json:"center_longitude"`
	ZoomLevel    int     `json:"zoom_level"`
}

// ComputeViewport builds the bounding viewport over every property that
// carries coordinates. When none do, the fallback market center is used.
func ComputeViewport(properties []models.Property, fallback config.Market) Viewport {
	points := collectPoints(properties)
	if len(points) == 0 {
		return Viewport{
			MinLatitude:  fallback.Center[0],
			MinLongitude: fallback.Center[1],
			MaxLatitude:  fallback.Center[0],
			MaxLongitude: fallback.Center[1],
			CenterLat:    fallback.Center[0],
			CenterLon:    fallback.Center[1],
			ZoomLevel:    fallback.ZoomLevel,
		}
	}

	bound := orb.MultiPoint(points).Bound()
	center := bound.Center()

	return Viewport{
		MinLatitude:  bound.Min[1],
		MinLongitude: bound.Min[0],
		MaxLatitude:  bound.Max[1],
		MaxLongitude: bound.Max[0],
		CenterLat:    center[1],
		CenterLon:    center[0],
		ZoomLevel:    fallback.ZoomLevel,
	}
}

// FeatureCollection renders the collection as GeoJSON point features for the
// map layer. Properties without coordinates are skipped.
func FeatureCollection(properties []models.Property) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}

		feature := geojson.NewFeature(orb.Point{*p.Longitude, *p.Latitude})
		feature.Properties = geojson.Properties{
			"id":             p.ID,
			"address":        p.Address,
			"city":           p.City,
			"price":          p.Price,
			"status":         p.Status,
			"property_type":  p.PropertyType,
			"lead_potential": p.LeadPotential,
		}
		fc.Append(feature)
	}

	return fc
}

func collectPoints(properties []models.Property) []orb.Point {
	points := make([]orb.Point, 0, len(properties))
	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		points = append(points, orb.Point{*p.Longitude, *p.Latitude})
	}
	return points
}
