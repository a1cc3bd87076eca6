package routeprovider

import (
	polyline "github.com/twpayne/go-polyline"

	"github.com/draymaster/tripplanner/internal/domain"
)

// EncodePolyline renders a route geometry as an encoded Google polyline
// string (precision 1e5), the compact wire format the web client uses to
// draw the route without shipping the full coordinate array as JSON.
// twpayne/go-polyline expects [lat, lng] pairs; domain.Point is [lng, lat]
// GeoJSON order, so the axes are swapped going in.
func EncodePolyline(points []domain.Point) string {
	if len(points) == 0 {
		return ""
	}
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[1], p[0]}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline parses an encoded polyline string back into GeoJSON-order
// points, the inverse of EncodePolyline. The directions client requests
// GeoJSON geometry and does not call it.
func DecodePolyline(encoded string) ([]domain.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	points := make([]domain.Point, len(coords))
	for i, c := range coords {
		points[i] = domain.Point{c[1], c[0]}
	}
	return points, nil
}
