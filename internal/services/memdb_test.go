package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"campusevents/internal/domain"
)

// testLogger discards output so tests don't assert on log lines.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// memDB is an in-memory stand-in for the database. WithinTx holds mu for the whole
// transaction, which models the event row lock taken by LockEvent.
type memDB struct {
	mu            sync.Mutex
	events        map[string]*domain.Event
	users         map[string]*domain.User
	registrations []*domain.Registration
	notifications []*domain.Notification
	nextID        int

	// failOn makes the named tx step return failErr, for rollback tests.
	failOn  string
	failErr error
	// candidatesErr makes ListReminderCandidates fail.
	candidatesErr error
}

func newMemDB() *memDB {
	return &memDB{
		events: make(map[string]*domain.Event),
		users:  make(map[string]*domain.User),
	}
}

func (db *memDB) addEvent(id string, capacity int, start time.Time, organizerID string) *domain.Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	e := &domain.Event{ID: id, Title: "Event " + id, StartTime: start, Capacity: capacity, OrganizerID: organizerID}
	db.events[id] = e
	return e
}

func (db *memDB) addUser(id, email string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[id] = &domain.User{ID: id, Email: email, Name: "User " + id, Role: domain.RoleStudent}
}

func (db *memDB) event(id string) domain.Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	return *db.events[id]
}

func (db *memDB) confirmedCount(eventID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, r := range db.registrations {
		if r.EventID == eventID && r.Status == domain.RegistrationConfirmed {
			n++
		}
	}
	return n
}

func (db *memDB) registrationCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.registrations)
}

func (db *memDB) remindersFor(userID, eventID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, no := range db.notifications {
		if no.UserID == userID && no.EventID != nil && *no.EventID == eventID && no.Title == domain.ReminderTitle {
			n++
		}
	}
	return n
}

func (db *memDB) genID(prefix string) string {
	db.nextID++
	return fmt.Sprintf("%s-%d", prefix, db.nextID)
}

// memRegistrationStore implements domain.RegistrationStore on memDB.
type memRegistrationStore struct {
	db *memDB
}

func (s *memRegistrationStore) WithinTx(ctx context.Context, fn func(tx domain.RegistrationTx) error) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	tx := &memTx{db: s.db, events: make(map[string]*domain.Event, len(s.db.events))}
	for id, e := range s.db.events {
		cp := *e
		tx.events[id] = &cp
	}
	for _, r := range s.db.registrations {
		cp := *r
		tx.registrations = append(tx.registrations, &cp)
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.db.events = tx.events
	s.db.registrations = tx.registrations
	return nil
}

func (s *memRegistrationStore) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registrant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*domain.Registrant, 0)
	for _, r := range s.db.registrations {
		if r.EventID != eventID || r.Status != domain.RegistrationConfirmed {
			continue
		}
		reg := &domain.Registrant{RegistrationID: r.ID, UserID: r.UserID}
		if u, ok := s.db.users[r.UserID]; ok {
			reg.Name, reg.Email = u.Name, u.Email
		}
		out = append(out, reg)
	}
	return out, nil
}

func (s *memRegistrationStore) ListByUserID(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]*domain.RegistrationWithEvent, 0)
	for _, r := range s.db.registrations {
		if r.UserID != userID {
			continue
		}
		reg, ev := *r, *s.db.events[r.EventID]
		out = append(out, &domain.RegistrationWithEvent{Registration: &reg, Event: &ev})
	}
	return out, nil
}

// memTx stages changes on copies; WithinTx publishes them only on success.
type memTx struct {
	db            *memDB
	events        map[string]*domain.Event
	registrations []*domain.Registration
}

func (t *memTx) fail(step string) error {
	if t.db.failOn == step {
		return t.db.failErr
	}
	return nil
}

func (t *memTx) LockEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if err := t.fail("lock"); err != nil {
		return nil, err
	}
	e, ok := t.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (t *memTx) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, r := range t.registrations {
		if r.EventID == eventID && r.Status == domain.RegistrationConfirmed {
			n++
		}
	}
	return n, nil
}

func (t *memTx) GetActive(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	for _, r := range t.registrations {
		if r.EventID == eventID && r.UserID == userID && r.Active() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) Insert(ctx context.Context, reg *domain.Registration) error {
	if err := t.fail("insert"); err != nil {
		return err
	}
	for _, r := range t.registrations {
		if r.EventID == reg.EventID && r.UserID == reg.UserID && r.Active() {
			return domain.ErrAlreadyRegistered
		}
	}
	reg.ID = t.db.genID("reg")
	cp := *reg
	t.registrations = append(t.registrations, &cp)
	return nil
}

func (t *memTx) SetStatus(ctx context.Context, registrationID string, status domain.RegistrationStatus, at time.Time) error {
	for _, r := range t.registrations {
		if r.ID == registrationID {
			r.Status = status
			r.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (t *memTx) IncrementConfirmed(ctx context.Context, eventID string) error {
	if err := t.fail("increment"); err != nil {
		return err
	}
	e, ok := t.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.ConfirmedCount+1 > e.Capacity {
		return domain.ErrEventFull
	}
	e.ConfirmedCount++
	return nil
}

func (t *memTx) DecrementConfirmed(ctx context.Context, eventID string) error {
	if err := t.fail("decrement"); err != nil {
		return err
	}
	e, ok := t.events[eventID]
	if !ok || e.ConfirmedCount == 0 {
		return fmt.Errorf("decrement confirmed_count: counter already zero for event %s", eventID)
	}
	e.ConfirmedCount--
	return nil
}

// memEventRepo implements domain.EventRepository on memDB.
type memEventRepo struct {
	db *memDB
}

func (r *memEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// memUserRepo implements domain.UserRepository on memDB.
type memUserRepo struct {
	db *memDB
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// memNotificationRepo implements domain.NotificationRepository on memDB.
type memNotificationRepo struct {
	db *memDB
}

func (r *memNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if n.EventID != nil {
		for _, existing := range r.db.notifications {
			if existing.UserID == n.UserID && existing.EventID != nil && *existing.EventID == *n.EventID && existing.Title == n.Title {
				return domain.ErrAlreadyNotified
			}
		}
	}
	n.ID = r.db.genID("ntf")
	cp := *n
	r.db.notifications = append(r.db.notifications, &cp)
	return nil
}

func (r *memNotificationRepo) Exists(ctx context.Context, userID, eventID, title string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.existsLocked(userID, eventID, title), nil
}

func (r *memNotificationRepo) existsLocked(userID, eventID, title string) bool {
	return slices.ContainsFunc(r.db.notifications, func(n *domain.Notification) bool {
		return n.UserID == userID && n.EventID != nil && *n.EventID == eventID && n.Title == title
	})
}

func (r *memNotificationRepo) ListReminderCandidates(ctx context.Context, from, to time.Time, title string) ([]*domain.ReminderCandidate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.candidatesErr != nil {
		return nil, r.db.candidatesErr
	}
	out := make([]*domain.ReminderCandidate, 0)
	for _, reg := range r.db.registrations {
		if reg.Status != domain.RegistrationConfirmed {
			continue
		}
		e := r.db.events[reg.EventID]
		if e.StartTime.Before(from) || e.StartTime.After(to) {
			continue
		}
		if r.existsLocked(reg.UserID, e.ID, title) {
			continue
		}
		c := &domain.ReminderCandidate{EventID: e.ID, EventTitle: e.Title, StartTime: e.StartTime, UserID: reg.UserID}
		if u, ok := r.db.users[reg.UserID]; ok {
			c.Email = u.Email
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memNotificationRepo) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var mine []*domain.Notification
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			cp := *n
			mine = append(mine, &cp)
		}
	}
	total := len(mine)
	start := min(params.Offset(), total)
	end := min(start+params.Limit(), total)
	return mine[start:end], total, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, n := range r.db.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, no := range r.db.notifications {
		if no.UserID == userID && !no.IsRead {
			no.IsRead = true
			n++
		}
	}
	return n, nil
}

// fakeMailer records sent emails and fails for addresses in failFor.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return fmt.Errorf("smtp: connection refused")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo(addr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s == addr {
			n++
		}
	}
	return n
}

func (m *fakeMailer) setFail(addr string, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor == nil {
		m.failFor = make(map[string]bool)
	}
	m.failFor[addr] = fail
}

// fakeRenderer passes subject and body through unchanged.
type fakeRenderer struct{}

func (fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	d, ok := data.(*domain.NotificationEmailData)
	if !ok {
		return "", "", "", fmt.Errorf("unexpected template data %T", data)
	}
	return d.Subject, d.Body, d.Body, nil
}

// fixedClock returns a settable clock for services under test.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testEnv wires real services over memDB.
type testEnv struct {
	db         *memDB
	clock      *fixedClock
	mailer     *fakeMailer
	dispatcher *notificationDispatcher
	registry   *registrationService
	scheduler  *reminderScheduler
}

func newTestEnv(now time.Time) *testEnv {
	db := newMemDB()
	clock := &fixedClock{now: now}
	mailer := &fakeMailer{}
	dispatcher := newNotificationDispatcher(mailer, fakeRenderer{}, &memNotificationRepo{db: db}, testLogger)
	dispatcher.now = clock.Now
	registry := newRegistrationService(&memRegistrationStore{db: db}, &memEventRepo{db: db}, &memUserRepo{db: db}, dispatcher, testLogger, 12*time.Hour)
	registry.now = clock.Now
	scheduler := newReminderScheduler(&memNotificationRepo{db: db}, dispatcher, nil, DefaultReminderConfig(), testLogger)
	scheduler.now = clock.Now
	return &testEnv{
		db:         db,
		clock:      clock,
		mailer:     mailer,
		dispatcher: dispatcher,
		registry:   registry,
		scheduler:  scheduler,
	}
}
