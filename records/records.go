// Package records converts footprint records to and from the untyped text
// rows kept by a RecordStore.
package records

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mbolis/campus-footprint/model"
)

// RecordStore is an append-only sequence of text rows. ReadAll returns the
// header row first.
type RecordStore interface {
	Append(ctx context.Context, row []string) error
	ReadAll(ctx context.Context) ([][]string, error)
}

const TimeLayout = "2006-01-02 15:04"

const (
	ColID             = "id"
	ColTimestamp      = "timestamp"
	ColName           = "name"
	ColRegNo          = "regno"
	ColPhone          = "phone"
	ColGender         = "gender"
	ColDept           = "dept"
	ColHostel         = "hostel"
	ColLocation       = "location"
	ColDistance       = "distance"
	ColElectricity    = "electricity"
	ColWater          = "water"
	ColDiet           = "diet"
	ColTransport      = "transport"
	ColElectricityCO2 = "electricity_co2"
	ColWaterCO2       = "water_co2"
	ColDietCO2        = "diet_co2"
	ColTotal          = "total"
	ColDays           = "days"
	ColActivities     = "activities"
)

// Header is the column order rows are written in.
var Header = []string{
	ColID, ColTimestamp,
	ColName, ColRegNo, ColPhone, ColGender, ColDept, ColHostel,
	ColLocation, ColDistance, ColElectricity, ColWater, ColDiet,
	ColTransport, ColElectricityCO2, ColWaterCO2, ColDietCO2, ColTotal,
	ColDays, ColActivities,
}

// column names used by older sheets
var aliases = map[string]string{
	"total_co2": ColTotal,
	"classes":   ColDays,
	"dept_name": ColDept,
}

func Encode(r model.FootprintRecord) []string {
	row := make([]string, len(Header))
	for i, col := range Header {
		row[i] = encodeField(r, col)
	}
	return row
}

func encodeField(r model.FootprintRecord, col string) string {
	switch col {
	case ColID:
		return r.ID
	case ColTimestamp:
		if r.Time.IsZero() {
			return ""
		}
		return r.Time.Format(TimeLayout)
	case ColName:
		return r.Name
	case ColRegNo:
		return r.RegNo
	case ColPhone:
		return r.Phone
	case ColGender:
		return string(r.Gender)
	case ColDept:
		return r.Department
	case ColHostel:
		return string(r.Hostel)
	case ColLocation:
		return r.Location
	case ColDistance:
		return formatFloat(r.Distance)
	case ColElectricity:
		return formatFloat(r.Electricity)
	case ColWater:
		return formatFloat(r.Water)
	case ColDiet:
		return string(r.Diet)
	case ColTransport:
		return formatFloat(r.Transport)
	case ColElectricityCO2:
		return formatFloat(r.ElectricityCO2)
	case ColWaterCO2:
		return formatFloat(r.WaterCO2)
	case ColDietCO2:
		return formatFloat(r.DietCO2)
	case ColTotal:
		return formatFloat(r.Total)
	case ColDays:
		return strconv.Itoa(r.Days)
	case ColActivities:
		return strings.Join(r.Activities, ",")
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Columns maps a header row to column positions. Unknown columns are kept
// under their own (lowercased) name.
type Columns map[string]int

func IndexHeader(header []string) Columns {
	cols := Columns{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func (c Columns) text(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number coerces anything unparseable (or not finite) to 0.
func (c Columns) number(row []string, col string) float64 {
	v, err := strconv.ParseFloat(c.text(row, col), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// integer truncates a number cell; values outside the int32 range are
// treated as malformed.
func (c Columns) integer(row []string, col string) int {
	v := c.number(row, col)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

// Decode never fails: missing or malformed cells decode to zero values.
func Decode(cols Columns, row []string) model.FootprintRecord {
	r := model.FootprintRecord{
		ID:          cols.text(row, ColID),
		Name:        cols.text(row, ColName),
		RegNo:       cols.text(row, ColRegNo),
		Phone:       cols.text(row, ColPhone),
		Gender:      model.Gender(cols.text(row, ColGender)),
		Department:  cols.text(row, ColDept),
		Hostel:      model.HostelStatus(cols.text(row, ColHostel)),
		Location:    cols.text(row, ColLocation),
		Electricity: cols.number(row, ColElectricity),
		Water:       cols.number(row, ColWater),
		Diet:        model.Diet(cols.text(row, ColDiet)),
		Days:        cols.integer(row, ColDays),
		Activities:  splitActivities(cols.text(row, ColActivities)),
	}
	r.Distance = cols.number(row, ColDistance)
	r.Transport = cols.number(row, ColTransport)
	r.ElectricityCO2 = cols.number(row, ColElectricityCO2)
	r.WaterCO2 = cols.number(row, ColWaterCO2)
	r.DietCO2 = cols.number(row, ColDietCO2)
	r.Total = cols.number(row, ColTotal)

	if ts := cols.text(row, ColTimestamp); ts != "" {
		for _, layout := range []string{TimeLayout, time.RFC3339, "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
				r.Time = t
				break
			}
		}
	}

	return r
}

func splitActivities(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	acts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			acts = append(acts, p)
		}
	}
	return acts
}

// DecodeAll turns the output of ReadAll into records in append order. Rows
// that are entirely blank are skipped.
func DecodeAll(rows [][]string) []model.FootprintRecord {
	if len(rows) == 0 {
		return nil
	}
	cols := IndexHeader(rows[0])
	recs := make([]model.FootprintRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		recs = append(recs, Decode(cols, row))
	}
	return recs
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Snapshot reads the whole store and decodes it.
func Snapshot(ctx context.Context, store RecordStore) ([]model.FootprintRecord, error) {
	rows, err := store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeAll(rows), nil
}
