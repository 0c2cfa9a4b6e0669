// Package analytics derives read-only dashboard views from a snapshot of
// footprint records. Every function is pure and leaves its input untouched.
package analytics

import (
	"errors"
	"sort"
	"time"

	"github.com/mbolis/campus-footprint/model"
)

// ErrNoData is returned by operations that need at least one record.
var ErrNoData = errors.New("no data")

type Order int

const (
	Ascending Order = iota
	Descending
)

func ParseOrder(s string) (Order, bool) {
	switch s {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return Ascending, false
}

// Leaderboard returns up to n records ranked by total. Ties keep append
// order.
func Leaderboard(recs []model.FootprintRecord, n int, order Order) []model.FootprintRecord {
	if n <= 0 {
		return []model.FootprintRecord{}
	}
	ranked := append([]model.FootprintRecord(nil), recs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if order == Descending {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Total < ranked[j].Total
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Criteria left at their zero value match everything.
type Criteria struct {
	Department string
	Diets      []model.Diet
}

func Filter(recs []model.FootprintRecord, c Criteria) []model.FootprintRecord {
	out := []model.FootprintRecord{}
	for _, r := range recs {
		if c.Department != "" && r.Department != c.Department {
			continue
		}
		if len(c.Diets) > 0 && !containsDiet(c.Diets, r.Diet) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsDiet(diets []model.Diet, d model.Diet) bool {
	for _, x := range diets {
		if x == d {
			return true
		}
	}
	return false
}

type CategorySums struct {
	Transport      float64 `json:"transport"`
	ElectricityCO2 float64 `json:"electricity_co2"`
	WaterCO2       float64 `json:"water_co2"`
	DietCO2        float64 `json:"diet_co2"`
}

func (s CategorySums) Total() float64 {
	return s.Transport + s.ElectricityCO2 + s.WaterCO2 + s.DietCO2
}

func CategoryBreakdownSums(recs []model.FootprintRecord) CategorySums {
	var s CategorySums
	for _, r := range recs {
		s.Transport += r.Transport
		s.ElectricityCO2 += r.ElectricityCO2
		s.WaterCO2 += r.WaterCO2
		s.DietCO2 += r.DietCO2
	}
	return s
}

// ActivityParticipationCounts counts, for every known activity, the records
// listing it. A record counts at most once per activity.
func ActivityParticipationCounts(recs []model.FootprintRecord) map[model.Activity]int {
	counts := make(map[model.Activity]int, len(model.Activities))
	for _, a := range model.Activities {
		counts[a] = 0
	}
	for _, r := range recs {
		seen := map[model.Activity]bool{}
		for _, token := range r.Activities {
			a, ok := model.ParseActivity(token)
			if !ok || seen[a] {
				continue
			}
			seen[a] = true
			counts[a]++
		}
	}
	return counts
}

type MonthAverage struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MonthlyAverages averages totals per calendar month of the record time.
// Records without a timestamp are left out.
func MonthlyAverages(recs []model.FootprintRecord) []MonthAverage {
	type acc struct {
		sum float64
		n   int
	}
	byMonth := map[time.Time]*acc{}
	for _, r := range recs {
		if r.Time.IsZero() {
			continue
		}
		m := time.Date(r.Time.Year(), r.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
		a, ok := byMonth[m]
		if !ok {
			a = &acc{}
			byMonth[m] = a
		}
		a.sum += r.Total
		a.n++
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	out := make([]MonthAverage, len(months))
	for i, m := range months {
		a := byMonth[m]
		out[i] = MonthAverage{
			Month:   m.Format("2006-01"),
			Average: a.sum / float64(a.n),
			Count:   a.n,
		}
	}
	return out
}

func Departments(recs []model.FootprintRecord) []string {
	set := map[string]bool{}
	for _, r := range recs {
		if r.Department != "" {
			set[r.Department] = true
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func DietsPresent(recs []model.FootprintRecord) []model.Diet {
	set := map[model.Diet]bool{}
	for _, r := range recs {
		if r.Diet != "" {
			set[r.Diet] = true
		}
	}
	out := make([]model.Diet, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
