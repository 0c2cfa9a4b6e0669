package records

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mbolis/campus-footprint/model"
)

func sampleRecord() model.FootprintRecord {
	return model.FootprintRecord{
		ID:          "b1",
		Time:        time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local),
		Name:        "Anitha",
		RegNo:       "URK21CS1001",
		Phone:       "9876543210",
		Gender:      model.Female,
		Department:  "CSE",
		Hostel:      model.DayScholar,
		Location:    "Peelamedu",
		Electricity: 250,
		Water:       3000,
		Diet:        model.Vegetarian,
		Days:        22,
		Activities:  []string{"Recycling", "Cycling"},
		Breakdown: model.Breakdown{
			Distance:       28,
			Transport:      236.544,
			ElectricityCO2: 205,
			WaterCO2:       0.9,
			DietCO2:        114,
			Total:          528.62,
		},
	}
}

func TestEncodeFollowsHeader(t *testing.T) {
	row := Encode(sampleRecord())
	if len(row) != len(Header) {
		t.Fatalf("expected %d cells, got %d", len(Header), len(row))
	}
	cols := IndexHeader(Header)
	checks := map[string]string{
		ColTimestamp:  "2024-03-14 09:30",
		ColPhone:      "9876543210",
		ColDistance:   "28",
		ColTotal:      "528.62",
		ColDays:       "22",
		ColActivities: "Recycling,Cycling",
	}
	for col, want := range checks {
		if got := row[cols[col]]; got != want {
			t.Fatalf("%s: expected %q, got %q", col, want, got)
		}
	}
}

func TestDecodeRestoresRecord(t *testing.T) {
	want := sampleRecord()
	got := Decode(IndexHeader(Header), Encode(want))
	if !got.Time.Equal(want.Time) {
		t.Fatalf("expected time %v, got %v", want.Time, got.Time)
	}
	got.Time, want.Time = time.Time{}, time.Time{}
	// EcoBonus is not persisted
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDecodeCoercesMalformedCells(t *testing.T) {
	header := []string{"name", "Total_CO2", "distance", "electricity", "classes", "activities", "timestamp"}
	row := []string{" Ravi ", "n/a", "", "NaN", "many", " Recycling , ,Cycling ", "yesterday"}

	r := Decode(IndexHeader(header), row)
	if r.Name != "Ravi" {
		t.Fatalf("expected trimmed name, got %q", r.Name)
	}
	if r.Total != 0 || r.Distance != 0 || r.Electricity != 0 || r.Days != 0 {
		t.Fatalf("expected zero numbers, got %+v", r)
	}
	if !reflect.DeepEqual(r.Activities, []string{"Recycling", "Cycling"}) {
		t.Fatalf("unexpected activities %v", r.Activities)
	}
	if !r.Time.IsZero() {
		t.Fatalf("expected zero time, got %v", r.Time)
	}
}

func TestDecodeOutOfRangeNumbers(t *testing.T) {
	header := []string{"total", "water", "days"}
	cases := []struct {
		row   []string
		total float64
		water float64
		days  int
	}{
		{[]string{"Inf", "-Inf", "1e300"}, 0, 0, 0},
		{[]string{"1e309", "12.5", "-1e300"}, 0, 12.5, 0},
		{[]string{"88.1", "3000", "22.0"}, 88.1, 3000, 22},
		{[]string{"1", "1", "21.9"}, 1, 1, 21},
	}
	for _, c := range cases {
		r := Decode(IndexHeader(header), c.row)
		if r.Total != c.total || r.Water != c.water || r.Days != c.days {
			t.Fatalf("%v: unexpected record %+v", c.row, r)
		}
	}
}

func TestDecodeShortRowAndAliases(t *testing.T) {
	header := []string{"name", "total_co2", "classes", "water"}
	r := Decode(IndexHeader(header), []string{"Meera", "150.5", "20"})
	if r.Total != 150.5 || r.Days != 20 || r.Water != 0 {
		t.Fatalf("unexpected record %+v", r)
	}
}

func TestDecodeAll(t *testing.T) {
	if recs := DecodeAll(nil); len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	if recs := DecodeAll([][]string{Header}); len(recs) != 0 {
		t.Fatalf("expected no records from header only, got %v", recs)
	}

	rows := [][]string{
		{"name", "total"},
		{"A", "10"},
		{"", " "},
		{"B", "x"},
	}
	recs := DecodeAll(rows)
	if len(recs) != 2 || recs[0].Name != "A" || recs[1].Name != "B" || recs[1].Total != 0 {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestMemoryStoreSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := sampleRecord()
	second := sampleRecord()
	second.ID = "b2"
	second.Name = "Ravi"
	for _, r := range []model.FootprintRecord{first, second} {
		if err := store.Append(ctx, Encode(r)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := Snapshot(ctx, store)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "b1" || recs[1].ID != "b2" {
		t.Fatalf("expected append order, got %+v", recs)
	}
}

func TestMemoryStoreFailure(t *testing.T) {
	store := NewMemoryStore()
	store.Err = errors.New("quota exceeded")
	if err := store.Append(context.Background(), Encode(sampleRecord())); err == nil {
		t.Fatalf("expected append to fail")
	}
	if store.Len() != 0 {
		t.Fatalf("failed append must not store a row")
	}
}
