package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/mail"
	"github.com/cinevault/cinevault/pkg/movies"
	"github.com/cinevault/cinevault/pkg/observability"
)

// sweepTimeout bounds one full reminder sweep, sends included.
const sweepTimeout = 10 * time.Minute

// MovieLister is the slice of movie storage the sweep needs.
type MovieLister interface {
	ReleasedBetween(ctx context.Context, from, to time.Time) ([]*movies.Movie, error)
}

// UserDirectory resolves movie owners for delivery.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
}

// Scheduler runs the release-reminder sweep on a cron schedule. Days are
// calendar days in UTC.
type Scheduler struct {
	movies   MovieLister
	users    UserDirectory
	sender   mail.Sender
	schedule string
	cron     *cron.Cron
	log      *logrus.Entry
	metrics  *observability.Metrics

	// now is swappable for tests.
	now func() time.Time
}

func NewScheduler(movies MovieLister, users UserDirectory, sender mail.Sender, schedule string, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		movies:   movies,
		users:    users,
		sender:   sender,
		schedule: schedule,
		log:      logrus.WithField("component", "reminder"),
		metrics:  metrics,
		now:      time.Now,
	}
}

// Start registers the sweep with the cron runner and starts it.
func (s *Scheduler) Start() error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		if err := s.RunSweep(ctx); err != nil {
			s.log.WithError(err).Error("reminder sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("reminder scheduler started")
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped")
}

// RunSweep finds every movie released today (UTC) and emails its owner. A
// failed send skips that movie and continues; the sweep only errors when the
// movie query itself fails.
func (s *Scheduler) RunSweep(ctx context.Context) error {
	today := s.now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	released, err := s.movies.ReleasedBetween(ctx, today, tomorrow)
	if err != nil {
		return fmt.Errorf("failed to load today's releases: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ReminderSweepsTotal.Inc()
	}
	s.log.WithField("count", len(released)).Info("reminder sweep started")

	for _, movie := range released {
		if err := s.remind(ctx, movie); err != nil {
			if s.metrics != nil {
				s.metrics.ReminderFailuresTotal.Inc()
			}
			s.log.WithError(err).WithFields(logrus.Fields{
				"movie_id": movie.ID,
				"user_id":  movie.UserID,
			}).Warn("reminder not sent")
			continue
		}
		if s.metrics != nil {
			s.metrics.ReminderEmailsTotal.Inc()
		}
	}

	return nil
}

func (s *Scheduler) remind(ctx context.Context, movie *movies.Movie) error {
	owner, err := s.users.GetUserByID(ctx, movie.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve owner: %w", err)
	}

	subject, body, err := mail.ReleaseReminderEmail(owner.Name, movie)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, owner.Email, subject, body)
}
