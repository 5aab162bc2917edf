package services

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rsvpFixture struct {
	svc    domain.RSVPService
	events *fakeEventRepo
	rsvps  *fakeRSVPRepo
}

func newRSVPFixture(t *testing.T) (*rsvpFixture, *domain.Event) {
	t.Helper()
	events := newFakeEventRepo()
	rsvps := newFakeRSVPRepo()
	svc := NewRSVPService(events, rsvps, time.Second)

	now := time.Now()
	event := domain.NewEvent("org-1", "Launch", "d", "HQ", now.Add(24*time.Hour), now, now)
	require.NoError(t, events.Create(context.Background(), event))
	return &rsvpFixture{svc: svc, events: events, rsvps: rsvps}, event
}

func TestRSVPService_Respond(t *testing.T) {
	ctx := context.Background()
	f, event := newRSVPFixture(t)

	got, err := f.svc.Respond(ctx, event.ID, "user-1", domain.RSVPGoing)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, event.ID, got.EventID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.RSVPGoing, got.Status)
}

func TestRSVPService_Respond_UpsertConverges(t *testing.T) {
	ctx := context.Background()
	f, event := newRSVPFixture(t)

	first, err := f.svc.Respond(ctx, event.ID, "user-1", domain.RSVPGoing)
	require.NoError(t, err)

	// Same terminal status regardless of the path taken to it.
	for _, status := range []domain.RSVPStatus{domain.RSVPMaybe, domain.RSVPNotGoing, domain.RSVPGoing} {
		_, err := f.svc.Respond(ctx, event.ID, "user-1", status)
		require.NoError(t, err)
	}

	stored, err := f.svc.GetForCaller(ctx, event.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID, "repeated responses reuse the row")
	assert.Equal(t, domain.RSVPGoing, stored.Status)

	all, err := f.rsvps.ListByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRSVPService_Respond_PerUserRows(t *testing.T) {
	ctx := context.Background()
	f, event := newRSVPFixture(t)

	_, err := f.svc.Respond(ctx, event.ID, "user-1", domain.RSVPGoing)
	require.NoError(t, err)
	_, err = f.svc.Respond(ctx, event.ID, "user-2", domain.RSVPMaybe)
	require.NoError(t, err)

	all, err := f.rsvps.ListByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRSVPService_Respond_UnknownEvent(t *testing.T) {
	f, _ := newRSVPFixture(t)

	_, err := f.svc.Respond(context.Background(), "no-such-event", "user-1", domain.RSVPGoing)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRSVPService_Respond_InvalidStatus(t *testing.T) {
	f, event := newRSVPFixture(t)

	_, err := f.svc.Respond(context.Background(), event.ID, "user-1", domain.RSVPStatus("going"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRSVPService_GetForCaller_NoResponse(t *testing.T) {
	f, event := newRSVPFixture(t)

	got, err := f.svc.GetForCaller(context.Background(), event.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
