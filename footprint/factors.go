package footprint

import (
	"fmt"
	"os"
	"sort"

	"github.com/mbolis/campus-footprint/model"
	"gopkg.in/yaml.v3"
)

// Eco bonus applied when a submitter reports at least EcoBonusThreshold
// eco activities.
const (
	EcoBonusThreshold = 2
	EcoBonusRate      = 0.95
)

// DietNormalizationDays is the fixed period diet emissions are scaled to,
// independent of the days actually present.
const DietNormalizationDays = 30

type BonusPolicy struct {
	Threshold int     `json:"threshold" yaml:"threshold"`
	Rate      float64 `json:"rate" yaml:"rate"`
}

func DefaultBonusPolicy() BonusPolicy {
	return BonusPolicy{Threshold: EcoBonusThreshold, Rate: EcoBonusRate}
}

// Multiplier returns the factor applied to the raw sum for the given number
// of reported activities.
func (p BonusPolicy) Multiplier(activities int) float64 {
	if p.Threshold > 0 && activities >= p.Threshold {
		return p.Rate
	}
	return 1.0
}

type Factors struct {
	Car         float64                `json:"car" yaml:"car"`
	Electricity float64                `json:"electricity" yaml:"electricity"`
	Water       float64                `json:"water" yaml:"water"`
	Diet        map[model.Diet]float64 `json:"diet" yaml:"diet"`
	// one-way km from campus
	Locations map[string]float64 `json:"locations" yaml:"locations"`
	Bonus     BonusPolicy        `json:"bonus" yaml:"bonus"`
}

func DefaultFactors() Factors {
	return Factors{
		Car:         0.192,
		Electricity: 0.82,
		Water:       0.0003,
		Diet: map[model.Diet]float64{
			model.MeatHeavy:  7.0,
			model.Vegetarian: 3.8,
			model.Vegan:      2.9,
		},
		Locations: map[string]float64{
			"Karunya Hostel":      0.5,
			"Karunya Guest House": 2,
			"Peelamedu":           28,
			"Gandhipuram":         32,
			"Ukkadam":             25,
		},
		Bonus: DefaultBonusPolicy(),
	}
}

// KnownLocation reports whether name is a fixed location or Other.
func (f Factors) KnownLocation(name string) bool {
	if name == model.OtherLocation {
		return true
	}
	_, ok := f.Locations[name]
	return ok
}

// LocationNames lists fixed locations by distance, Other last.
func (f Factors) LocationNames() []string {
	names := make([]string, 0, len(f.Locations)+1)
	for name := range f.Locations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := f.Locations[names[i]], f.Locations[names[j]]
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return append(names, model.OtherLocation)
}

// LoadFactors reads a YAML file overriding the default factors. Keys left
// out of the file keep their default value.
func LoadFactors(path string) (Factors, error) {
	f := DefaultFactors()

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read factors: %w", err)
	}
	if err := ParseFactorsYAML(data, &f); err != nil {
		return f, fmt.Errorf("parse factors %s: %w", path, err)
	}
	return f, nil
}

func ParseFactorsYAML(data []byte, f *Factors) error {
	var doc struct {
		Car         *float64               `yaml:"car"`
		Electricity *float64               `yaml:"electricity"`
		Water       *float64               `yaml:"water"`
		Diet        map[model.Diet]float64 `yaml:"diet"`
		Locations   map[string]float64     `yaml:"locations"`
		Bonus       *BonusPolicy           `yaml:"bonus"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	if doc.Car != nil {
		f.Car = *doc.Car
	}
	if doc.Electricity != nil {
		f.Electricity = *doc.Electricity
	}
	if doc.Water != nil {
		f.Water = *doc.Water
	}
	for diet, v := range doc.Diet {
		if _, ok := f.Diet[diet]; !ok {
			return fmt.Errorf("unknown diet %q", diet)
		}
		f.Diet[diet] = v
	}
	if len(doc.Locations) > 0 {
		f.Locations = doc.Locations
	}
	if _, ok := f.Locations[model.OtherLocation]; ok {
		return fmt.Errorf("location %q is reserved for manual distances", model.OtherLocation)
	}
	if doc.Bonus != nil {
		f.Bonus = *doc.Bonus
	}

	return f.check()
}

func (f Factors) check() error {
	if f.Car < 0 || f.Electricity < 0 || f.Water < 0 {
		return fmt.Errorf("factors must not be negative")
	}
	for diet, v := range f.Diet {
		if v < 0 {
			return fmt.Errorf("diet factor for %s must not be negative", diet)
		}
	}
	for name, km := range f.Locations {
		if km < 0 {
			return fmt.Errorf("distance for %s must not be negative", name)
		}
	}
	if f.Bonus.Rate < 0 || f.Bonus.Rate > 1 {
		return fmt.Errorf("bonus rate must be within [0, 1]")
	}
	return nil
}
