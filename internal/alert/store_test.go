package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestStore() *Store {
	return NewStore(&SequenceGenerator{}, func() time.Time { return fixedNow })
}

func TestNewStore(t *testing.T) {
	s := newTestStore()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ViewCreate, s.View())
	assert.Equal(t, DefaultDraft(), s.Draft())
	assert.NotNil(t, s.Alerts())
}

func TestCreate(t *testing.T) {
	s := newTestStore()
	s.SelectView(ViewMatches)

	a, ok := s.Create(Draft{
		Keywords:  "React Developer",
		Location:  "Remote",
		JobType:   JobTypeContract,
		Frequency: FrequencyWeekly,
	})
	require.True(t, ok)

	assert.Equal(t, Alert{
		ID:        "1",
		Keywords:  "React Developer",
		Location:  "Remote",
		JobType:   JobTypeContract,
		Frequency: FrequencyWeekly,
		Active:    true,
		CreatedAt: fixedNow,
	}, a)
	assert.Equal(t, []Alert{a}, s.Alerts())
	assert.Equal(t, ViewAlerts, s.View())
	assert.Equal(t, DefaultDraft(), s.Draft())
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := newTestStore()

	a, ok := s.Create(Draft{Keywords: "Go"})
	require.True(t, ok)

	assert.Equal(t, "", a.Location)
	assert.Equal(t, "Any", a.LocationOrAny())
	assert.Equal(t, JobTypeFullTime, a.JobType)
	assert.Equal(t, FrequencyDaily, a.Frequency)

	a, ok = s.Create(Draft{Keywords: "Rust", JobType: "permanent", Frequency: "hourly"})
	require.True(t, ok)
	assert.Equal(t, JobTypeFullTime, a.JobType)
	assert.Equal(t, FrequencyDaily, a.Frequency)
}

func TestCreateBlankKeywordsIsNoop(t *testing.T) {
	testCases := []struct {
		name     string
		keywords string
	}{
		{name: "empty", keywords: ""},
		{name: "spaces", keywords: "  "},
		{name: "tabs_and_newlines", keywords: "\t\n "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			draft := Draft{Keywords: "typed", Location: "Berlin", JobType: JobTypePartTime, Frequency: FrequencyWeekly}
			s.SetDraft(draft)
			var events []Event
			s.Subscribe(func(e Event) { events = append(events, e) })

			_, ok := s.Create(Draft{Keywords: tc.keywords, Location: "Remote"})

			assert.False(t, ok)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, ViewCreate, s.View())
			assert.Equal(t, draft, s.Draft())
			assert.Empty(t, events)
		})
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	s := NewStore(nil, nil)
	const n = 50
	for i := 0; i < n; i++ {
		_, ok := s.Create(Draft{Keywords: "Go Engineer"})
		require.True(t, ok)
	}

	alerts := s.Alerts()
	require.Len(t, alerts, n)
	seen := make(map[string]bool, n)
	for _, a := range alerts {
		assert.NotEmpty(t, a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}

func TestToggle(t *testing.T) {
	s := newTestStore()
	first, _ := s.Create(Draft{Keywords: "first"})
	second, _ := s.Create(Draft{Keywords: "second"})

	require.True(t, s.Toggle(first.ID))
	got, ok := s.Alert(first.ID)
	require.True(t, ok)
	assert.False(t, got.Active)
	assert.Equal(t, "Paused", got.Status())
	assert.Equal(t, "Activate", got.ToggleLabel())

	other, _ := s.Alert(second.ID)
	assert.True(t, other.Active)

	require.True(t, s.Toggle(first.ID))
	got, _ = s.Alert(first.ID)
	assert.True(t, got.Active)
	assert.Equal(t, "Active", got.Status())

	alerts := s.Alerts()
	assert.Equal(t, []string{first.ID, second.ID}, []string{alerts[0].ID, alerts[1].ID})
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	s.Create(Draft{Keywords: "Go"})
	before := s.Alerts()

	assert.False(t, s.Toggle("does-not-exist"))
	assert.Equal(t, before, s.Alerts())
}

func TestDelete(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create(Draft{Keywords: "a"})
	b, _ := s.Create(Draft{Keywords: "b"})
	c, _ := s.Create(Draft{Keywords: "c"})

	require.True(t, s.Delete(b.ID))
	assert.Equal(t, []Alert{a, c}, s.Alerts())

	assert.False(t, s.Delete(b.ID))
	assert.Equal(t, 2, s.Len())

	_, ok := s.Alert(b.ID)
	assert.False(t, ok)
}

func TestDeleteDoesNotAffectEarlierSnapshots(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create(Draft{Keywords: "a"})
	b, _ := s.Create(Draft{Keywords: "b"})
	snapshot := s.Alerts()

	s.Delete(a.ID)

	assert.Equal(t, []Alert{a, b}, snapshot)
}

func TestSelectView(t *testing.T) {
	s := newTestStore()

	assert.True(t, s.SelectView(ViewMatches))
	assert.Equal(t, ViewMatches, s.View())
	assert.True(t, s.SelectView("ALERTS"))
	assert.Equal(t, ViewAlerts, s.View())
	assert.False(t, s.SelectView("settings"))
	assert.Equal(t, ViewAlerts, s.View())
	assert.Equal(t, 0, s.Len())
}

func TestCreateThenDeleteLeavesEmptyStore(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create(Draft{Keywords: "Go"})

	s.Delete(a.ID)
	s.SelectView(ViewMatches)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ViewMatches, s.View())
}

func TestSubscribe(t *testing.T) {
	s := newTestStore()
	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	a, _ := s.Create(Draft{Keywords: "Go"})
	s.Toggle(a.ID)
	s.Toggle("missing")
	s.SelectView(ViewMatches)
	s.SelectView("nowhere")
	s.SetDraft(Draft{Keywords: "draft"})
	s.Delete(a.ID)
	s.Delete(a.ID)

	assert.Equal(t, []Event{
		{Kind: EventCreated, AlertID: a.ID, View: ViewAlerts},
		{Kind: EventToggled, AlertID: a.ID, View: ViewAlerts},
		{Kind: EventViewSelected, View: ViewMatches},
		{Kind: EventDraftChanged, View: ViewMatches},
		{Kind: EventDeleted, AlertID: a.ID, View: ViewMatches},
	}, events)

	unsubscribe()
	s.Create(Draft{Keywords: "Rust"})
	assert.Len(t, events, 5)
}

func TestSubscribersRunInOrderAndMayReadStore(t *testing.T) {
	s := newTestStore()
	var order []string
	s.Subscribe(func(e Event) { order = append(order, "first") })
	s.Subscribe(func(e Event) {
		// the lock is released before listeners run
		order = append(order, "second:"+string(s.View()))
	})

	s.Create(Draft{Keywords: "Go"})

	assert.Equal(t, []string{"first", "second:alerts"}, order)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, JobTypeFreelance, ParseJobType(" Freelance "))
	assert.Equal(t, JobTypeFullTime, ParseJobType(""))
	assert.Equal(t, FrequencyRealtime, ParseFrequency("realtime"))
	assert.Equal(t, FrequencyDaily, ParseFrequency("monthly"))
	assert.Equal(t, "Real-time", FrequencyRealtime.Label())
	assert.Equal(t, "Part-time", JobTypePartTime.Label())

	v, ok := ParseView("matches")
	assert.True(t, ok)
	assert.Equal(t, ViewMatches, v)
	_, ok = ParseView("")
	assert.False(t, ok)
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{}
	assert.Equal(t, "1", g.NewID())
	assert.Equal(t, "2", g.NewID())
}
