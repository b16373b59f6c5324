package mail

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cinevault/cinevault/pkg/async"
	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/movies"
	"github.com/cinevault/cinevault/pkg/observability"
)

// sendTimeout bounds each fire-and-forget delivery.
const sendTimeout = 30 * time.Second

// UserDirectory resolves a movie owner to a deliverable address.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
}

// Notifier delivers the welcome and movie-added emails in the background so
// registration and movie creation never block on SMTP.
type Notifier struct {
	sender  Sender
	users   UserDirectory
	log     *logrus.Entry
	metrics *observability.Metrics
}

func NewNotifier(sender Sender, users UserDirectory, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		sender:  sender,
		users:   users,
		log:     logrus.WithField("component", "mail-notifier"),
		metrics: metrics,
	}
}

// WelcomeUser sends the post-registration welcome email.
func (n *Notifier) WelcomeUser(ctx context.Context, user auth.PublicUser) {
	async.SafeGo(ctx, sendTimeout, "welcome-email", func(ctx context.Context) error {
		subject, body, err := WelcomeEmail(user.Name)
		if err != nil {
			return err
		}
		if err := n.sender.Send(ctx, user.Email, subject, body); err != nil {
			if n.metrics != nil {
				n.metrics.EmailSendFailures.WithLabelValues("welcome").Inc()
			}
			n.log.WithError(err).WithField("to", user.Email).Warn("welcome email failed")
			return nil
		}
		if n.metrics != nil {
			n.metrics.EmailsSentTotal.WithLabelValues("welcome").Inc()
		}
		return nil
	})
}

// MovieAdded sends the creation confirmation to the movie's owner.
func (n *Notifier) MovieAdded(ctx context.Context, movie *movies.Movie, ownerID string) {
	async.SafeGo(ctx, sendTimeout, "movie-added-email", func(ctx context.Context) error {
		owner, err := n.users.GetUserByID(ctx, ownerID)
		if err != nil {
			n.log.WithError(err).WithField("user_id", ownerID).Warn("movie-added email skipped")
			return nil
		}

		subject, body, err := MovieAddedEmail(owner.Name, movie)
		if err != nil {
			return err
		}
		if err := n.sender.Send(ctx, owner.Email, subject, body); err != nil {
			if n.metrics != nil {
				n.metrics.EmailSendFailures.WithLabelValues("movie_added").Inc()
			}
			n.log.WithError(err).WithField("to", owner.Email).Warn("movie-added email failed")
			return nil
		}
		if n.metrics != nil {
			n.metrics.EmailsSentTotal.WithLabelValues("movie_added").Inc()
		}
		return nil
	})
}
