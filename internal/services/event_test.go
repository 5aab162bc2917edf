package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"gatherly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	tags   *fakeTagRepo
	rsvps  *fakeRSVPRepo
	nextID int
	err    error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) UpdateOwned(ctx context.Context, eventID, organizerID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok || e.OrganizerID != organizerID {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		e.Title = *title
	}
	if description != nil {
		e.Description = *description
	}
	if location != nil {
		e.Location = *location
	}
	if date != nil {
		e.Date = *date
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) DeleteOwned(ctx context.Context, eventID, organizerID string) error {
	e, ok := f.byID[eventID]
	if !ok || e.OrganizerID != organizerID {
		return domain.ErrNotFound
	}
	delete(f.byID, eventID)
	if f.rsvps != nil {
		f.rsvps.deleteByEvent(eventID)
	}
	if f.tags != nil {
		f.tags.deleteByEvent(eventID)
	}
	return nil
}

// fakeTagRepo is an in-memory TagRepository for tests.
type fakeTagRepo struct {
	byID   map[string]*domain.Tag
	nextID int
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{byID: make(map[string]*domain.Tag), nextID: 1}
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	tag.ID = fmt.Sprintf("tag-%d", f.nextID)
	f.nextID++
	f.byID[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) DeleteByEventAndID(ctx context.Context, eventID, tagID string) error {
	t, ok := f.byID[tagID]
	if !ok || t.EventID != eventID {
		return domain.ErrNotFound
	}
	delete(f.byID, tagID)
	return nil
}

func (f *fakeTagRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Tag, error) {
	out := make([]*domain.Tag, 0)
	for _, t := range f.byID {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) deleteByEvent(eventID string) {
	for id, t := range f.byID {
		if t.EventID == eventID {
			delete(f.byID, id)
		}
	}
}

// fakeRSVPRepo is an in-memory RSVPRepository for tests.
type fakeRSVPRepo struct {
	byPair map[string]*domain.RSVP // key eventID+"|"+userID
	nextID int
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byPair: make(map[string]*domain.RSVP), nextID: 1}
}

func (f *fakeRSVPRepo) Upsert(ctx context.Context, v *domain.RSVP) error {
	key := v.EventID + "|" + v.UserID
	if existing, ok := f.byPair[key]; ok {
		existing.Status = v.Status
		existing.UpdatedAt = v.UpdatedAt
		*v = *existing
		return nil
	}
	v.ID = fmt.Sprintf("rsvp-%d", f.nextID)
	f.nextID++
	stored := *v
	f.byPair[key] = &stored
	return nil
}

func (f *fakeRSVPRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	if v, ok := f.byPair[eventID+"|"+userID]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	out := make([]*domain.RSVP, 0)
	for _, v := range f.byPair {
		if v.EventID == eventID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) deleteByEvent(eventID string) {
	for key, v := range f.byPair {
		if v.EventID == eventID {
			delete(f.byPair, key)
		}
	}
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) add(id, email, name string) {
	f.byID[id] = &domain.User{ID: id, Email: email, Name: name}
}

// fakeEmailService records cancellation notices.
type fakeEmailService struct {
	sent []*domain.EventCancelledEmailData
	err  error
}

func (f *fakeEmailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type eventFixture struct {
	svc    domain.EventService
	events *fakeEventRepo
	tags   *fakeTagRepo
	rsvps  *fakeRSVPRepo
	users  *fakeUserRepo
	emails *fakeEmailService
}

func newEventFixture() *eventFixture {
	events := newFakeEventRepo()
	tags := newFakeTagRepo()
	rsvps := newFakeRSVPRepo()
	users := newFakeUserRepo()
	emails := &fakeEmailService{}
	events.tags = tags
	events.rsvps = rsvps
	svc := NewEventService(events, tags, rsvps, users, emails, testLogger(), time.Second)
	return &eventFixture{svc: svc, events: events, tags: tags, rsvps: rsvps, users: users, emails: emails}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return d
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	date := mustDate(t, "2025-06-01T10:00:00.000Z")
	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, now, now)
	require.NoError(t, f.svc.CreateEvent(ctx, event))
	require.NotEmpty(t, event.ID)

	got, err := f.svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, "HQ", got.Location)
	assert.Equal(t, "org-1", got.OrganizerID)
	assert.True(t, got.Date.Equal(date))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	now := time.Now()

	tests := []struct {
		name  string
		event *domain.Event
	}{
		{"missing organizer", domain.NewEvent("", "t", "d", "l", date, now, now)},
		{"empty title", domain.NewEvent("org-1", " ", "d", "l", date, now, now)},
		{"empty description", domain.NewEvent("org-1", "t", "", "l", date, now, now)},
		{"empty location", domain.NewEvent("org-1", "t", "d", "", date, now, now)},
		{"zero date", domain.NewEvent("org-1", "t", "d", "l", time.Time{}, now, now)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.CreateEvent(ctx, tt.event)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEventService_UpdateEvent_OnlyOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, now, now)
	require.NoError(t, f.svc.CreateEvent(ctx, event))

	title := "x"
	_, err := f.svc.UpdateEvent(ctx, event.ID, "someone-else", &title, nil, nil, nil)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Event is unmodified.
	got, err := f.svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)
}

func TestEventService_UpdateEvent_MissingLooksLikeForbidden(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	title := "x"
	_, err := f.svc.UpdateEvent(ctx, "no-such-event", "org-1", &title, nil, nil, nil)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEventService_UpdateEvent_PartialFields(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, now, now)
	require.NoError(t, f.svc.CreateEvent(ctx, event))

	loc := "Offsite"
	updated, err := f.svc.UpdateEvent(ctx, event.ID, "org-1", nil, nil, &loc, nil)
	require.NoError(t, err)
	assert.Equal(t, "Offsite", updated.Location)
	assert.Equal(t, "Launch", updated.Title)
	assert.Equal(t, "d", updated.Description)
}

func TestEventService_DeleteEvent_CascadesAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.users.add("org-1", "org@example.com", "Ada")
	f.users.add("user-b", "b@example.com", "Bea")
	f.users.add("user-c", "c@example.com", "Cal")

	date := mustDate(t, "2025-06-01T10:00:00Z")
	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, now, now)
	require.NoError(t, f.svc.CreateEvent(ctx, event))

	_, err := f.svc.AddTag(ctx, event.ID, "org-1", "tech")
	require.NoError(t, err)
	require.NoError(t, f.rsvps.Upsert(ctx, domain.NewRSVP(event.ID, "user-b", domain.RSVPGoing, now, now)))
	require.NoError(t, f.rsvps.Upsert(ctx, domain.NewRSVP(event.ID, "user-c", domain.RSVPNotGoing, now, now)))

	require.NoError(t, f.svc.DeleteEvent(ctx, event.ID, "org-1"))

	_, err = f.svc.GetEventByID(ctx, event.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	tags, err := f.tags.ListByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = f.rsvps.GetByEventAndUser(ctx, event.ID, "user-b")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Only GOING/MAYBE respondents get the cancellation notice.
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "b@example.com", f.emails.sent[0].Email)
	assert.Equal(t, "Launch", f.emails.sent[0].EventTitle)
	assert.Equal(t, "Ada", f.emails.sent[0].OrganizerName)
}

func TestEventService_DeleteEvent_OnlyOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, now, now)
	require.NoError(t, f.svc.CreateEvent(ctx, event))

	err := f.svc.DeleteEvent(ctx, event.ID, "someone-else")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, f.emails.sent)
}

func TestEventService_ListMyEvents_FiltersByOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")

	e1 := domain.NewEvent("org-1", "First", "d", "l", date, time.Now(), time.Now())
	require.NoError(t, f.svc.CreateEvent(ctx, e1))
	e2 := domain.NewEvent("org-2", "Second", "d", "l", date, time.Now(), time.Now())
	require.NoError(t, f.svc.CreateEvent(ctx, e2))

	mine, err := f.svc.ListMyEvents(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, e1.ID, mine[0].ID)

	all, err := f.svc.ListAllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventService_AddTag_RequiresOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", date, time.Now(), time.Now())
	require.NoError(t, f.svc.CreateEvent(ctx, event))

	_, err := f.svc.AddTag(ctx, event.ID, "someone-else", "tech")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.AddTag(ctx, "no-such-event", "org-1", "tech")
	require.ErrorIs(t, err, domain.ErrForbidden)

	tag, err := f.svc.AddTag(ctx, event.ID, "org-1", "tech")
	require.NoError(t, err)
	assert.Equal(t, event.ID, tag.EventID)
	assert.Equal(t, "tech", tag.Name)

	// Duplicate names are allowed.
	dup, err := f.svc.AddTag(ctx, event.ID, "org-1", "tech")
	require.NoError(t, err)
	assert.NotEqual(t, tag.ID, dup.ID)
}

func TestEventService_RemoveTag(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	date := mustDate(t, "2025-06-01T10:00:00Z")
	e1 := domain.NewEvent("org-1", "First", "d", "l", date, time.Now(), time.Now())
	require.NoError(t, f.svc.CreateEvent(ctx, e1))
	e2 := domain.NewEvent("org-1", "Second", "d", "l", date, time.Now(), time.Now())
	require.NoError(t, f.svc.CreateEvent(ctx, e2))

	tag, err := f.svc.AddTag(ctx, e1.ID, "org-1", "tech")
	require.NoError(t, err)

	// Tag exists but belongs to a different event.
	err = f.svc.RemoveTag(ctx, e2.ID, tag.ID, "org-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Not the organizer.
	err = f.svc.RemoveTag(ctx, e1.ID, tag.ID, "someone-else")
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.svc.RemoveTag(ctx, e1.ID, tag.ID, "org-1"))
	err = f.svc.RemoveTag(ctx, e1.ID, tag.ID, "org-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
