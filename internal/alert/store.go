package alert

import (
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	EventCreated      EventKind = "created"
	EventToggled      EventKind = "toggled"
	EventDeleted      EventKind = "deleted"
	EventViewSelected EventKind = "view_selected"
	EventDraftChanged EventKind = "draft_changed"
)

type EventKind string

// Event describes a change that has already been applied to the store.
// AlertID is empty for view and draft changes.
type Event struct {
	Kind    EventKind
	AlertID string
	View    View
}

type Listener func(Event)

// Store owns the ordered alerts of one session together with the create form
// draft and the selected view. Invalid input never errors, it is ignored.
type Store struct {
	mu        sync.Mutex
	alerts    []Alert
	draft     Draft
	view      View
	ids       IDGenerator
	now       func() time.Time
	listeners map[int]Listener
	nextSub   int
}

// NewStore returns an empty store on the create view. A nil generator
// defaults to ksuid ids and a nil clock to time.Now.
func NewStore(ids IDGenerator, now func() time.Time) *Store {
	if ids == nil {
		ids = KsuidGenerator{}
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		alerts:    []Alert{},
		draft:     DefaultDraft(),
		view:      ViewCreate,
		ids:       ids,
		now:       now,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l for every subsequent change. Listeners run after the
// store lock is released, in subscription order.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Create appends a new active alert built from d, resets the draft and moves
// to the alerts view. Blank keywords make it a no-op that returns false.
func (s *Store) Create(d Draft) (Alert, bool) {
	if strings.TrimSpace(d.Keywords) == "" {
		return Alert{}, false
	}
	d = d.normalize()

	s.mu.Lock()
	a := Alert{
		ID:        s.ids.NewID(),
		Keywords:  d.Keywords,
		Location:  d.Location,
		JobType:   d.JobType,
		Frequency: d.Frequency,
		Active:    true,
		CreatedAt: s.now(),
	}
	s.alerts = append(s.alerts, a)
	s.draft = DefaultDraft()
	s.view = ViewAlerts
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventCreated, AlertID: a.ID, View: ViewAlerts})
	return a, true
}

func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.alerts[i].Active = !s.alerts[i].Active
	view := s.view
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventToggled, AlertID: id, View: view})
	return true
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
	view := s.view
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventDeleted, AlertID: id, View: view})
	return true
}

func (s *Store) SelectView(v View) bool {
	v, ok := ParseView(string(v))
	if !ok {
		return false
	}
	s.mu.Lock()
	s.view = v
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventViewSelected, View: v})
	return true
}

// SetDraft keeps what the user typed so a rejected submission can be shown
// again.
func (s *Store) SetDraft(d Draft) {
	d = d.normalize()
	s.mu.Lock()
	s.draft = d
	view := s.view
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, Event{Kind: EventDraftChanged, View: view})
}

// Alerts returns a copy of the alerts in insertion order.
func (s *Store) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *Store) Alert(id string) (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Alert{}, false
	}
	return s.alerts[i], true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Store) indexLocked(id string) int {
	for i, a := range s.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) listenersLocked() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func notify(listeners []Listener, e Event) {
	for _, l := range listeners {
		l(e)
	}
}
