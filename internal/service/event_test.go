package service

import (
	"context"
	"testing"
	"time"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	db   *fakeDB
	cats *fakeCategories
	svc  *EventService
	now  time.Time
}

func newEventFixture() *eventFixture {
	db := newFakeDB()
	cats := newFakeCategories()
	svc := NewEventService(db, fakeUsers{db}, cats, zerolog.Nop())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	db.users["owner"] = model.User{ID: "owner", Name: "Owner", Email: "owner@example.com"}
	cats.cats["c1"] = model.Category{ID: "c1", Name: "concerts"}
	return &eventFixture{db: db, cats: cats, svc: svc, now: now}
}

func (f *eventFixture) payload() model.NewEventPayload {
	return model.NewEventPayload{
		Title:            "Jazz night",
		Annotation:       "An evening of live jazz",
		Description:      "Quartet on the main stage",
		CategoryID:       "c1",
		EventDate:        f.now.Add(24 * time.Hour),
		ParticipantLimit: 50,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestEventCreate(t *testing.T) {
	f := newEventFixture()

	e, err := f.svc.Create(context.Background(), "owner", f.payload())

	require.NoError(t, err)
	require.Equal(t, model.EventStatePending, e.State)
	require.True(t, e.RequestModeration, "moderation defaults to on")
	require.Equal(t, 0, e.ConfirmedRequests)
	require.Nil(t, e.PublishedOn)
	require.Contains(t, f.db.events, e.ID)
}

func TestEventCreateModerationFlag(t *testing.T) {
	f := newEventFixture()

	p := f.payload()
	p.RequestModeration = boolPtr(false)
	e, err := f.svc.Create(context.Background(), "owner", p)

	require.NoError(t, err)
	require.False(t, e.RequestModeration)
}

func TestEventCreateRejectsNearDates(t *testing.T) {
	f := newEventFixture()

	p := f.payload()
	p.EventDate = f.now.Add(90 * time.Minute)
	_, err := f.svc.Create(context.Background(), "owner", p)

	require.ErrorIs(t, err, ErrEventDateTooSoon)
}

func TestEventCreateUnknownUserOrCategory(t *testing.T) {
	f := newEventFixture()

	_, err := f.svc.Create(context.Background(), "ghost", f.payload())
	require.ErrorIs(t, err, repository.ErrNotFound)

	p := f.payload()
	p.CategoryID = "nope"
	_, err = f.svc.Create(context.Background(), "owner", p)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateByInitiator(t *testing.T) {
	f := newEventFixture()
	e, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)

	title := "Jazz night, extended"
	limit := 80
	updated, err := f.svc.UpdateByInitiator(context.Background(), "owner", e.ID, model.UpdateEventPayload{
		Title:            &title,
		ParticipantLimit: &limit,
	})

	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, 80, updated.ParticipantLimit)
	require.Equal(t, e.Annotation, updated.Annotation, "untouched fields survive the patch")
}

func TestUpdateByInitiatorGuards(t *testing.T) {
	f := newEventFixture()
	e, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)

	t.Run("not the owner", func(t *testing.T) {
		f.db.users["other"] = model.User{ID: "other"}
		_, err := f.svc.UpdateByInitiator(context.Background(), "other", e.ID, model.UpdateEventPayload{})
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("published events are frozen", func(t *testing.T) {
		_, err := f.svc.Moderate(context.Background(), e.ID, model.StateActionPublish)
		require.NoError(t, err)

		_, err = f.svc.UpdateByInitiator(context.Background(), "owner", e.ID, model.UpdateEventPayload{})
		require.ErrorIs(t, err, ErrEventPublished)
	})
}

func TestModerate(t *testing.T) {
	f := newEventFixture()

	t.Run("publish", func(t *testing.T) {
		e, err := f.svc.Create(context.Background(), "owner", f.payload())
		require.NoError(t, err)

		published, err := f.svc.Moderate(context.Background(), e.ID, model.StateActionPublish)
		require.NoError(t, err)
		require.Equal(t, model.EventStatePublished, published.State)
		require.NotNil(t, published.PublishedOn)
	})

	t.Run("reject", func(t *testing.T) {
		e, err := f.svc.Create(context.Background(), "owner", f.payload())
		require.NoError(t, err)

		rejected, err := f.svc.Moderate(context.Background(), e.ID, model.StateActionReject)
		require.NoError(t, err)
		require.Equal(t, model.EventStateCanceled, rejected.State)
		require.Nil(t, rejected.PublishedOn)
	})

	t.Run("only pending events are moderated", func(t *testing.T) {
		e, err := f.svc.Create(context.Background(), "owner", f.payload())
		require.NoError(t, err)
		_, err = f.svc.Moderate(context.Background(), e.ID, model.StateActionPublish)
		require.NoError(t, err)

		_, err = f.svc.Moderate(context.Background(), e.ID, model.StateActionReject)
		require.ErrorIs(t, err, ErrEventNotPending)
	})
}

func TestGetOwnHidesForeignEvents(t *testing.T) {
	f := newEventFixture()
	e, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)

	got, err := f.svc.GetOwn(context.Background(), "owner", e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	_, err = f.svc.GetOwn(context.Background(), "other", e.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPublishedHidesPending(t *testing.T) {
	f := newEventFixture()
	e, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)

	_, err = f.svc.GetPublished(context.Background(), e.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.svc.Moderate(context.Background(), e.ID, model.StateActionPublish)
	require.NoError(t, err)

	got, err := f.svc.GetPublished(context.Background(), e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)
}

func TestFindPublicForcesPublishedState(t *testing.T) {
	f := newEventFixture()
	pending, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)
	published, err := f.svc.Create(context.Background(), "owner", f.payload())
	require.NoError(t, err)
	_, err = f.svc.Moderate(context.Background(), published.ID, model.StateActionPublish)
	require.NoError(t, err)

	events, err := f.svc.FindPublic(context.Background(), model.EventFilter{}, model.DefaultPage)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, published.ID, events[0].ID)

	all, err := f.svc.FindAdmin(context.Background(), model.EventFilter{}, model.DefaultPage)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, model.EventStatePending, f.db.events[pending.ID].State)
}
