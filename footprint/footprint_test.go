package footprint

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbolis/campus-footprint/model"
)

func sampleInput() model.SubmissionInput {
	return model.SubmissionInput{
		Name:        "Anitha",
		RegNo:       "URK21CS1001",
		Phone:       "9876543210",
		Gender:      model.Female,
		Department:  "CSE",
		Hostel:      model.DayScholar,
		Days:        22,
		Location:    "Peelamedu",
		Electricity: 250,
		Water:       3000,
		Diet:        model.Vegetarian,
		Activities:  []model.Activity{model.Recycling, model.Cycling},
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWorkedExample(t *testing.T) {
	b := Compute(sampleInput(), DefaultFactors())

	if b.Distance != 28 {
		t.Fatalf("expected distance 28, got %v", b.Distance)
	}
	if !near(b.Transport, 236.544) {
		t.Fatalf("transport: got %v", b.Transport)
	}
	if !near(b.ElectricityCO2, 205.0) {
		t.Fatalf("electricity: got %v", b.ElectricityCO2)
	}
	if !near(b.WaterCO2, 0.9) {
		t.Fatalf("water: got %v", b.WaterCO2)
	}
	if !near(b.DietCO2, 114.0) {
		t.Fatalf("diet: got %v", b.DietCO2)
	}
	if b.EcoBonus != 0.95 {
		t.Fatalf("expected bonus 0.95, got %v", b.EcoBonus)
	}
	if b.Total != 528.62 {
		t.Fatalf("expected total 528.62, got %v", b.Total)
	}
}

func TestComputeCountsRepeatedActivityOnce(t *testing.T) {
	in := sampleInput()
	in.Activities = []model.Activity{model.Recycling, model.Recycling}

	b := Compute(in, DefaultFactors())
	if b.EcoBonus != 1 {
		t.Fatalf("expected no bonus for a single distinct activity, got %v", b.EcoBonus)
	}
	if b.Total != 556.44 {
		t.Fatalf("expected total 556.44, got %v", b.Total)
	}
}

func TestComputeIsConsistentAndDeterministic(t *testing.T) {
	f := DefaultFactors()
	inputs := []model.SubmissionInput{sampleInput()}

	other := sampleInput()
	other.Location = model.OtherLocation
	other.ManualDistance = 7.5
	other.Activities = nil
	other.Diet = model.MeatHeavy
	inputs = append(inputs, other)

	single := sampleInput()
	single.Activities = []model.Activity{model.Carpool}
	single.Location = "Karunya Hostel"
	single.Diet = model.Vegan
	inputs = append(inputs, single)

	for _, in := range inputs {
		a := Compute(in, f)
		b := Compute(in, f)
		if a != b {
			t.Fatalf("non deterministic: %+v vs %+v", a, b)
		}
		if a.Total != Round2(a.Sum()*a.EcoBonus) {
			t.Fatalf("total %v does not match categories %+v", a.Total, a)
		}
		if a.Total < 0 {
			t.Fatalf("negative total %v", a.Total)
		}
	}
}

func TestComputeManualDistance(t *testing.T) {
	in := sampleInput()
	in.Location = model.OtherLocation
	in.ManualDistance = 10
	in.Days = 1

	b := Compute(in, DefaultFactors())
	if b.Distance != 10 {
		t.Fatalf("expected manual distance, got %v", b.Distance)
	}
	if !near(b.Transport, 10*2*1*0.192) {
		t.Fatalf("transport: got %v", b.Transport)
	}
}

func TestDietIgnoresDaysPresent(t *testing.T) {
	in := sampleInput()
	in.Days = 3
	b := Compute(in, DefaultFactors())
	if !near(b.DietCO2, 3.8*30) {
		t.Fatalf("diet should use 30 days, got %v", b.DietCO2)
	}
}

func TestBonusPolicy(t *testing.T) {
	cases := []struct {
		policy BonusPolicy
		acts   int
		want   float64
	}{
		{DefaultBonusPolicy(), 0, 1},
		{DefaultBonusPolicy(), 1, 1},
		{DefaultBonusPolicy(), 2, 0.95},
		{DefaultBonusPolicy(), 5, 0.95},
		{BonusPolicy{Threshold: 1, Rate: 0.9}, 1, 0.9},
		{BonusPolicy{}, 3, 1},
	}
	for _, c := range cases {
		if got := c.policy.Multiplier(c.acts); got != c.want {
			t.Fatalf("%+v with %d activities: expected %v, got %v", c.policy, c.acts, c.want, got)
		}
	}
}

func TestBadgeFor(t *testing.T) {
	cases := map[float64]Badge{
		0:      EcoChampion,
		119.99: EcoChampion,
		120:    SustainabilityStarter,
		199.99: SustainabilityStarter,
		200:    FreshGreenJourney,
		528.62: FreshGreenJourney,
	}
	for total, want := range cases {
		if got := BadgeFor(total); got != want {
			t.Fatalf("total %v: expected %s, got %s", total, want, got)
		}
	}
}

func TestLocationNames(t *testing.T) {
	names := DefaultFactors().LocationNames()
	want := []string{"Karunya Hostel", "Karunya Guest House", "Ukkadam", "Peelamedu", "Gandhipuram", "Other"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestLoadFactors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.yaml")
	doc := `car: 0.2
diet:
  Vegan: 2.5
bonus:
  threshold: 1
  rate: 0.9
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write factors: %v", err)
	}

	f, err := LoadFactors(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Car != 0.2 || f.Electricity != 0.82 {
		t.Fatalf("unexpected factors: %+v", f)
	}
	if f.Diet[model.Vegan] != 2.5 || f.Diet[model.Vegetarian] != 3.8 {
		t.Fatalf("unexpected diet factors: %+v", f.Diet)
	}
	if f.Bonus.Threshold != 1 || f.Bonus.Rate != 0.9 {
		t.Fatalf("unexpected bonus: %+v", f.Bonus)
	}
	if f.Locations["Peelamedu"] != 28 {
		t.Fatalf("default locations should be kept: %+v", f.Locations)
	}
}

func TestParseFactorsYAMLErrors(t *testing.T) {
	docs := []string{
		"diet:\n  Pescatarian: 4\n",
		"locations:\n  Other: 3\n",
		"water: -1\n",
		"bonus:\n  threshold: 2\n  rate: 1.5\n",
		"car: [",
	}
	for _, doc := range docs {
		f := DefaultFactors()
		if err := ParseFactorsYAML([]byte(doc), &f); err == nil {
			t.Fatalf("expected %q to fail", doc)
		}
	}
}
