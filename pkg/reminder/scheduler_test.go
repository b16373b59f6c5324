package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/movies"
)

type fakeLister struct {
	from, to time.Time
	movies   []*movies.Movie
	err      error
}

func (f *fakeLister) ReleasedBetween(_ context.Context, from, to time.Time) ([]*movies.Movie, error) {
	f.from, f.to = from, to
	return f.movies, f.err
}

type fakeDirectory struct {
	users map[string]*auth.User
}

func (f *fakeDirectory) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

type recordingSender struct {
	sent    []string
	failFor map[string]bool
}

func (r *recordingSender) Send(_ context.Context, to, subject, body string) error {
	if r.failFor[to] {
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, to)
	return nil
}

func releasedMovie(id, userID string) *movies.Movie {
	return &movies.Movie{
		ID:          id,
		Title:       "Movie " + id,
		Duration:    100,
		ReleaseDate: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		UserID:      userID,
	}
}

func newTestScheduler(lister *fakeLister, directory *fakeDirectory, sender *recordingSender) *Scheduler {
	s := NewScheduler(lister, directory, sender, "0 9 * * *", nil)
	s.now = func() time.Time {
		return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	}
	return s
}

func TestRunSweepWindowIsTodayUTC(t *testing.T) {
	lister := &fakeLister{}
	s := newTestScheduler(lister, &fakeDirectory{}, &recordingSender{})

	require.NoError(t, s.RunSweep(context.Background()))

	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), lister.from)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), lister.to)
}

func TestRunSweepSendsToOwners(t *testing.T) {
	lister := &fakeLister{movies: []*movies.Movie{
		releasedMovie("m1", "u1"),
		releasedMovie("m2", "u2"),
	}}
	directory := &fakeDirectory{users: map[string]*auth.User{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com"},
		"u2": {ID: "u2", Name: "Grace", Email: "grace@example.com"},
	}}
	sender := &recordingSender{}
	s := newTestScheduler(lister, directory, sender)

	require.NoError(t, s.RunSweep(context.Background()))
	assert.Equal(t, []string{"ada@example.com", "grace@example.com"}, sender.sent)
}

func TestRunSweepSkipsFailuresAndContinues(t *testing.T) {
	lister := &fakeLister{movies: []*movies.Movie{
		releasedMovie("m1", "u1"),
		releasedMovie("m2", "ghost"),
		releasedMovie("m3", "u3"),
	}}
	directory := &fakeDirectory{users: map[string]*auth.User{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com"},
		"u3": {ID: "u3", Name: "Lin", Email: "lin@example.com"},
	}}
	sender := &recordingSender{failFor: map[string]bool{"ada@example.com": true}}
	s := newTestScheduler(lister, directory, sender)

	require.NoError(t, s.RunSweep(context.Background()))
	assert.Equal(t, []string{"lin@example.com"}, sender.sent)
}

func TestRunSweepQueryFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	s := newTestScheduler(lister, &fakeDirectory{}, &recordingSender{})

	err := s.RunSweep(context.Background())
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&fakeLister{}, &fakeDirectory{}, &recordingSender{}, "not a schedule", nil)
	assert.Error(t, s.Start())
}
