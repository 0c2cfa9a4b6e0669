// Package submission runs a footprint submission end to end: validation,
// scoring and the append to the record store.
package submission

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mbolis/campus-footprint/footprint"
	"github.com/mbolis/campus-footprint/model"
	"github.com/mbolis/campus-footprint/records"
	"github.com/mbolis/campus-footprint/validation"
)

type Status string

const (
	StatusSaved            Status = "saved"
	StatusValidationError  Status = "validation_error"
	StatusPersistenceError Status = "persistence_error"
)

// PersistenceError means the footprint was computed but could not be stored.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "record not saved: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Result struct {
	Status Status
	// nil when validation failed
	Record *model.FootprintRecord
	Badge  footprint.Badge
	Err    error
}

type Service struct {
	Store     records.RecordStore
	Factors   footprint.Factors
	Validator *validation.Validator
	Now       func() time.Time
	NewID     func() (string, error)
}

func NewService(store records.RecordStore, factors footprint.Factors) *Service {
	return &Service{
		Store:     store,
		Factors:   factors,
		Validator: validation.New(factors),
		Now:       time.Now,
		NewID:     newUUID,
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Preview validates and scores in without storing anything.
func (s *Service) Preview(in model.SubmissionInput) (model.FootprintRecord, error) {
	in = in.Normalize()
	if err := s.Validator.Validate(in); err != nil {
		return model.FootprintRecord{}, err
	}
	return s.build(in), nil
}

func (s *Service) Submit(ctx context.Context, in model.SubmissionInput) Result {
	rec, err := s.Preview(in)
	if err != nil {
		var verr *validation.ValidationError
		if !errors.As(err, &verr) {
			// validator misuse, not the submitter's fault
			return Result{Status: StatusValidationError, Err: err}
		}
		return Result{Status: StatusValidationError, Err: verr}
	}

	res := Result{Record: &rec, Badge: footprint.BadgeFor(rec.Total)}

	rec.ID, err = s.NewID()
	if err != nil {
		res.Status = StatusPersistenceError
		res.Err = &PersistenceError{Err: err}
		return res
	}
	rec.Time = s.Now()

	err = s.Store.Append(ctx, records.Encode(rec))
	if err != nil {
		res.Status = StatusPersistenceError
		res.Err = &PersistenceError{Err: err}
		return res
	}

	res.Status = StatusSaved
	return res
}

func (s *Service) build(in model.SubmissionInput) model.FootprintRecord {
	acts := make([]string, len(in.Activities))
	for i, a := range in.Activities {
		acts[i] = string(a)
	}

	return model.FootprintRecord{
		Name:        in.Name,
		RegNo:       in.RegNo,
		Phone:       in.Phone,
		Gender:      in.Gender,
		Department:  in.Department,
		Hostel:      in.Hostel,
		Location:    in.Location,
		Electricity: in.Electricity,
		Water:       in.Water,
		Diet:        in.Diet,
		Days:        in.Days,
		Activities:  acts,
		Breakdown:   footprint.Compute(in, s.Factors),
	}
}
