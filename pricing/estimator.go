// Package pricing classifies a parcel by cargo density to pick the tariff.
package pricing

// Method selects which tariff applies to a parcel.
type Method int

const (
	// ByWeight applies when the cargo is dense enough to be billed per kilogram.
	ByWeight Method = iota
	// ByDensity applies to light, bulky cargo billed per cubic meter.
	ByDensity
)

func (m Method) String() string {
	switch m {
	case ByWeight:
		return "by_weight"
	case ByDensity:
		return "by_density"
	default:
		return "unknown"
	}
}

// DensityThreshold is the boundary, in kg/m³, at which cargo switches from
// density-based to weight-based billing. The boundary itself bills by weight.
const DensityThreshold = 100.0

// cm³ per m³
const cubicCentimetersPerCubicMeter = 1e6

// Estimate computes cargo density from box dimensions in centimeters and
// weight in kilograms, and selects the billing method. Inputs are assumed
// positive; the caller validates user input before conversion.
func Estimate(widthCM, lengthCM, heightCM, weightKG float64) (float64, Method) {
	volume := widthCM * lengthCM * heightCM / cubicCentimetersPerCubicMeter
	density := weightKG / volume
	if density >= DensityThreshold {
		return density, ByWeight
	}
	return density, ByDensity
}
