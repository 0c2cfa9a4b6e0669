package model

import (
	"slices"
	"strings"
	"time"
)

type Gender string

const (
	Female      Gender = "Female"
	Male        Gender = "Male"
	OtherGender Gender = "Other"
)

var Genders = []Gender{Female, Male, OtherGender}

type HostelStatus string

const (
	Hostelite  HostelStatus = "Hostelite"
	DayScholar HostelStatus = "Day Scholar"
)

var HostelStatuses = []HostelStatus{Hostelite, DayScholar}

type Diet string

const (
	MeatHeavy  Diet = "Meat-heavy"
	Vegetarian Diet = "Vegetarian"
	Vegan      Diet = "Vegan"
)

var Diets = []Diet{MeatHeavy, Vegetarian, Vegan}

type Activity string

const (
	PlantedTrees Activity = "Planted trees"
	Recycling    Activity = "Recycling"
	Carpool      Activity = "Carpool"
	Cycling      Activity = "Cycling"
	GreenClub    Activity = "Green Club"
)

var Activities = []Activity{PlantedTrees, Recycling, Carpool, Cycling, GreenClub}

// ParseActivity matches a free-text token against the known tags, ignoring
// case and surrounding blanks.
func ParseActivity(token string) (Activity, bool) {
	token = strings.TrimSpace(token)
	for _, a := range Activities {
		if strings.EqualFold(string(a), token) {
			return a, true
		}
	}
	return "", false
}

// OtherLocation marks a commute base whose distance is typed in by hand.
const OtherLocation = "Other"

type SubmissionInput struct {
	Name           string       `json:"name" validate:"notblank"`
	RegNo          string       `json:"regno" validate:"notblank"`
	Phone          string       `json:"phone" validate:"len=10,digits"`
	Gender         Gender       `json:"gender" validate:"oneof=Female Male Other"`
	Department     string       `json:"dept" validate:"notblank"`
	Hostel         HostelStatus `json:"hostel" validate:"oneof=Hostelite 'Day Scholar'"`
	Days           int          `json:"days" validate:"gte=1,lte=31"`
	Location       string       `json:"location" validate:"required"`
	ManualDistance float64      `json:"manual_distance" validate:"gte=0"`
	Electricity    float64      `json:"electricity" validate:"gt=0"`
	Water          float64      `json:"water" validate:"gt=0"`
	Diet           Diet         `json:"diet" validate:"oneof=Meat-heavy Vegetarian Vegan"`
	Activities     []Activity   `json:"activities" validate:"dive,oneof='Planted trees' Recycling Carpool Cycling 'Green Club'"`
}

// Normalize returns a copy with surrounding whitespace removed from every
// text field and repeated activities dropped.
func (in SubmissionInput) Normalize() SubmissionInput {
	in.Name = strings.TrimSpace(in.Name)
	in.RegNo = strings.TrimSpace(in.RegNo)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Gender = Gender(strings.TrimSpace(string(in.Gender)))
	in.Department = strings.TrimSpace(in.Department)
	in.Hostel = HostelStatus(strings.TrimSpace(string(in.Hostel)))
	in.Location = strings.TrimSpace(in.Location)
	in.Diet = Diet(strings.TrimSpace(string(in.Diet)))
	if in.Activities != nil {
		acts := make([]Activity, 0, len(in.Activities))
		for _, a := range in.Activities {
			a = Activity(strings.TrimSpace(string(a)))
			if !slices.Contains(acts, a) {
				acts = append(acts, a)
			}
		}
		in.Activities = acts
	}
	return in
}

// Breakdown is the per-category result of a footprint computation, in kg CO2e.
type Breakdown struct {
	Distance       float64 `json:"distance"`
	Transport      float64 `json:"transport"`
	ElectricityCO2 float64 `json:"electricity_co2"`
	WaterCO2       float64 `json:"water_co2"`
	DietCO2        float64 `json:"diet_co2"`
	EcoBonus       float64 `json:"eco_bonus"`
	Total          float64 `json:"total"`
}

func (b Breakdown) Sum() float64 {
	return b.Transport + b.ElectricityCO2 + b.WaterCO2 + b.DietCO2
}

type FootprintRecord struct {
	ID          string       `json:"id"`
	Time        time.Time    `json:"time"`
	Name        string       `json:"name"`
	RegNo       string       `json:"regno"`
	Phone       string       `json:"phone"`
	Gender      Gender       `json:"gender"`
	Department  string       `json:"dept"`
	Hostel      HostelStatus `json:"hostel"`
	Location    string       `json:"location"`
	Electricity float64      `json:"electricity"`
	Water       float64      `json:"water"`
	Diet        Diet         `json:"diet"`
	Days        int          `json:"days"`
	Activities  []string     `json:"activities"`
	Breakdown
}

// PublicRecord is what the dashboard may show about a record.
type PublicRecord struct {
	Name       string  `json:"name"`
	Department string  `json:"dept"`
	Diet       Diet    `json:"diet"`
	Total      float64 `json:"total"`
}

func (r FootprintRecord) Public() PublicRecord {
	return PublicRecord{
		Name:       r.Name,
		Department: r.Department,
		Diet:       r.Diet,
		Total:      r.Total,
	}
}
