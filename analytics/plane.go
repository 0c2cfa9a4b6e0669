package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/mbolis/campus-footprint/model"
)

var ErrTooFewRecords = errors.New("a best-fit plane needs at least 3 records")

// Field names a numeric column of a record.
type Field string

const (
	FieldDistance       Field = "distance"
	FieldElectricity    Field = "electricity"
	FieldWater          Field = "water"
	FieldDays           Field = "days"
	FieldTransport      Field = "transport"
	FieldElectricityCO2 Field = "electricity_co2"
	FieldWaterCO2       Field = "water_co2"
	FieldDietCO2        Field = "diet_co2"
	FieldTotal          Field = "total"
)

var Fields = []Field{
	FieldDistance, FieldElectricity, FieldWater, FieldDays,
	FieldTransport, FieldElectricityCO2, FieldWaterCO2, FieldDietCO2, FieldTotal,
}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

func (f Field) Value(r model.FootprintRecord) float64 {
	switch f {
	case FieldDistance:
		return r.Distance
	case FieldElectricity:
		return r.Electricity
	case FieldWater:
		return r.Water
	case FieldDays:
		return float64(r.Days)
	case FieldTransport:
		return r.Transport
	case FieldElectricityCO2:
		return r.ElectricityCO2
	case FieldWaterCO2:
		return r.WaterCO2
	case FieldDietCO2:
		return r.DietCO2
	case FieldTotal:
		return r.Total
	}
	return 0
}

// Range bounds a field inclusively.
type Range struct {
	Field    Field
	Min, Max float64
}

func RangeFilter(recs []model.FootprintRecord, ranges []Range) []model.FootprintRecord {
	out := []model.FootprintRecord{}
next:
	for _, r := range recs {
		for _, rg := range ranges {
			v := rg.Field.Value(r)
			if v < rg.Min || v > rg.Max {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Plane is z = A*x + B*y + C.
type Plane struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

func (p Plane) At(x, y float64) float64 {
	return p.A*x + p.B*y + p.C
}

// BestFitPlane fits z against x and y by ordinary least squares. When the
// points do not pin down a unique plane (a constant or collinear axis) the
// minimum-norm solution is returned.
func BestFitPlane(recs []model.FootprintRecord, x, y, z Field) (Plane, error) {
	if len(recs) < 3 {
		return Plane{}, ErrTooFewRecords
	}

	// normal equations (XᵀX) β = Xᵀz with rows [x y 1]
	var (
		xtx [3][3]float64
		xtz [3]float64
	)
	for _, r := range recs {
		row := [3]float64{x.Value(r), y.Value(r), 1}
		zv := z.Value(r)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xtz[i] += row[i] * zv
		}
	}

	beta := pseudoSolve(xtx, xtz)
	return Plane{A: beta[0], B: beta[1], C: beta[2]}, nil
}

// pseudoSolve applies the pseudo-inverse of the symmetric matrix a to b,
// ignoring eigen-directions whose eigenvalue is negligible.
func pseudoSolve(a [3][3]float64, b [3]float64) [3]float64 {
	vals, vecs := symEigen(a)

	var top float64
	for _, l := range vals {
		top = math.Max(top, math.Abs(l))
	}
	tol := top * 1e-13

	var beta [3]float64
	for k := 0; k < 3; k++ {
		if vals[k] <= tol {
			continue
		}
		var p float64
		for i := 0; i < 3; i++ {
			p += vecs[i][k] * b[i]
		}
		p /= vals[k]
		for i := 0; i < 3; i++ {
			beta[i] += p * vecs[i][k]
		}
	}
	return beta
}

// symEigen diagonalizes a symmetric 3x3 matrix with cyclic Jacobi rotations.
// Column k of vecs is the eigenvector of vals[k].
func symEigen(a [3][3]float64) (vals [3]float64, vecs [3][3]float64) {
	var norm float64
	for i := 0; i < 3; i++ {
		vecs[i][i] = 1
		for j := 0; j < 3; j++ {
			norm += a[i][j] * a[i][j]
		}
	}

	for sweep := 0; sweep < 50; sweep++ {
		off := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
		if off <= norm*1e-32 {
			break
		}
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if a[p][q] == 0 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < 3; k++ {
					kp, kq := a[k][p], a[k][q]
					a[k][p] = c*kp - s*kq
					a[k][q] = s*kp + c*kq
				}
				for k := 0; k < 3; k++ {
					pk, qk := a[p][k], a[q][k]
					a[p][k] = c*pk - s*qk
					a[q][k] = s*pk + c*qk
				}
				for k := 0; k < 3; k++ {
					kp, kq := vecs[k][p], vecs[k][q]
					vecs[k][p] = c*kp - s*kq
					vecs[k][q] = s*kp + c*kq
				}
			}
		}
	}

	for i := 0; i < 3; i++ {
		vals[i] = a[i][i]
	}
	return vals, vecs
}

type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FieldBounds reports min and max of a field, or ErrNoData.
func FieldBounds(recs []model.FootprintRecord, f Field) (Bounds, error) {
	if len(recs) == 0 {
		return Bounds{}, ErrNoData
	}
	b := Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, r := range recs {
		v := f.Value(r)
		b.Min = math.Min(b.Min, v)
		b.Max = math.Max(b.Max, v)
	}
	return b, nil
}
