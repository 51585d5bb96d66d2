package weather

import "math"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass converts a bearing in degrees to a 16-point compass name.
func Compass(deg float64) string {
	ix := int(deg/22.5+0.5) % 16
	if ix < 0 {
		ix += 16
	}
	return compassPoints[ix]
}

// MPSToMPH converts meters per second to miles per hour, rounded to two decimals.
func MPSToMPH(mps float64) float64 { return round2(mps * 2.23694) }

// HPaToInHg converts hectopascals to inches of mercury, rounded to two decimals.
func HPaToInHg(hpa float64) float64 { return round2(hpa * 0.02953) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
