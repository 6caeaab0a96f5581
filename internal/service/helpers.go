package service

import "math"

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func boolLabel(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
