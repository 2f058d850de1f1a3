package geo

import "math"

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371

// kmPerMile converts kilometers to miles.
const milesPerKM = 0.621371

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(a))
}

// KMToMiles converts kilometers to miles.
func KMToMiles(km float64) float64 {
	return km * milesPerKM
}

// Round2 rounds to two decimal places, matching what the server persists
// and returns.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
