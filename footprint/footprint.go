// Package footprint turns a validated submission into kg CO2e per category.
package footprint

import (
	"math"

	"github.com/mbolis/campus-footprint/model"
)

// Distance resolves the one-way commute distance of a submission.
func (f Factors) Distance(in model.SubmissionInput) float64 {
	if in.Location == model.OtherLocation {
		return in.ManualDistance
	}
	return f.Locations[in.Location]
}

// Compute assumes in has already passed validation.
func Compute(in model.SubmissionInput, f Factors) model.Breakdown {
	b := model.Breakdown{
		Distance: f.Distance(in),
	}

	// round trip, one per day present
	b.Transport = b.Distance * 2 * float64(in.Days) * f.Car
	b.ElectricityCO2 = in.Electricity * f.Electricity
	b.WaterCO2 = in.Water * f.Water
	b.DietCO2 = f.Diet[in.Diet] * DietNormalizationDays

	b.EcoBonus = f.Bonus.Multiplier(distinct(in.Activities))
	b.Total = Round2(b.Sum() * b.EcoBonus)

	return b
}

// distinct counts activities as a set.
func distinct(acts []model.Activity) int {
	seen := make(map[model.Activity]bool, len(acts))
	for _, a := range acts {
		seen[a] = true
	}
	return len(seen)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type Badge string

const (
	EcoChampion           Badge = "Eco Champion"
	SustainabilityStarter Badge = "Sustainability Starter"
	FreshGreenJourney     Badge = "Fresh Green Journey"
)

func BadgeFor(total float64) Badge {
	switch {
	case total < 120:
		return EcoChampion
	case total < 200:
		return SustainabilityStarter
	default:
		return FreshGreenJourney
	}
}
