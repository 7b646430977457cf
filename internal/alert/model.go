package alert

import (
	"strings"
	"time"
)

const (
	JobTypeFullTime  JobType = "full-time"
	JobTypePartTime  JobType = "part-time"
	JobTypeContract  JobType = "contract"
	JobTypeFreelance JobType = "freelance"
)

const (
	FrequencyRealtime Frequency = "realtime"
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
)

const (
	ViewCreate  View = "create"
	ViewAlerts  View = "alerts"
	ViewMatches View = "matches"
)

type JobType string

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance}

// ParseJobType falls back to full-time for anything it does not recognise.
func ParseJobType(s string) JobType {
	jt := JobType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range JobTypes {
		if jt == known {
			return jt
		}
	}
	return JobTypeFullTime
}

func (jt JobType) Label() string {
	switch jt {
	case JobTypePartTime:
		return "Part-time"
	case JobTypeContract:
		return "Contract"
	case JobTypeFreelance:
		return "Freelance"
	}
	return "Full-time"
}

type Frequency string

var Frequencies = []Frequency{FrequencyRealtime, FrequencyDaily, FrequencyWeekly}

// ParseFrequency falls back to daily for anything it does not recognise.
func ParseFrequency(s string) Frequency {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Frequencies {
		if f == known {
			return f
		}
	}
	return FrequencyDaily
}

func (f Frequency) Label() string {
	switch f {
	case FrequencyRealtime:
		return "Real-time"
	case FrequencyWeekly:
		return "Weekly"
	}
	return "Daily"
}

type View string

func ParseView(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewCreate, ViewAlerts, ViewMatches:
		return v, true
	}
	return "", false
}

type Alert struct {
	ID        string    `json:"id"`
	Keywords  string    `json:"keywords"`
	Location  string    `json:"location"`
	JobType   JobType   `json:"job_type"`
	Frequency Frequency `json:"frequency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Alert) LocationOrAny() string {
	if a.Location == "" {
		return "Any"
	}
	return a.Location
}

func (a Alert) Status() string {
	if a.Active {
		return "Active"
	}
	return "Paused"
}

func (a Alert) ToggleLabel() string {
	if a.Active {
		return "Pause"
	}
	return "Activate"
}

// Draft holds the unsaved values of the create form.
type Draft struct {
	Keywords  string
	Location  string
	JobType   JobType
	Frequency Frequency
}

func DefaultDraft() Draft {
	return Draft{
		JobType:   JobTypeFullTime,
		Frequency: FrequencyDaily,
	}
}

func (d Draft) normalize() Draft {
	d.JobType = ParseJobType(string(d.JobType))
	d.Frequency = ParseFrequency(string(d.Frequency))
	return d
}
