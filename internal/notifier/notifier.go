package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/email"
	"github.com/naemfares/weathermail/internal/metrics"
	"github.com/naemfares/weathermail/internal/repository"
	"github.com/naemfares/weathermail/internal/weather"
	"github.com/robfig/cron/v3"
)

// Notifier periodically scans for subscribed users whose last forecast email
// is older than the notify interval, fetches a forecast for their city, and
// mails it to them. Claiming a user and advancing last_notified_at happen in
// one store operation, so overlapping runs (scheduled or manual) never send
// twice for the same due window.
type Notifier struct {
	users      repository.UserRepository
	forecaster weather.Forecaster
	sender     email.Sender
	logger     *slog.Logger

	schedule cron.Schedule
	interval time.Duration
	days     int
	batch    int

	now func() time.Time // swapped out in tests
}

func New(
	users repository.UserRepository,
	forecaster weather.Forecaster,
	sender email.Sender,
	logger *slog.Logger,
	cronExpr string,
	interval time.Duration,
	days int,
	batch int,
) (*Notifier, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse notify cron %q: %w", cronExpr, err)
	}

	return &Notifier{
		users:      users,
		forecaster: forecaster,
		sender:     sender,
		logger:     logger.With("component", "notifier"),
		schedule:   schedule,
		interval:   interval,
		days:       days,
		batch:      batch,
		now:        time.Now,
	}, nil
}

// Start blocks until ctx is cancelled, firing RunOnce at each cron activation.
func (n *Notifier) Start(ctx context.Context) {
	n.logger.Info("notifier started", "interval", n.interval, "next_run", n.schedule.Next(n.now()))

	for {
		timer := time.NewTimer(time.Until(n.schedule.Next(n.now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			n.logger.Info("notifier shut down")
			return
		case <-timer.C:
			n.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single due-scan cycle. Safe to call concurrently with
// the scheduled loop; the store partitions the due set between callers.
func (n *Notifier) RunOnce(ctx context.Context) {
	start := n.now()
	cutoff := start.Add(-n.interval)

	var sent, failed int
	for {
		due, err := n.users.ClaimDue(ctx, cutoff, n.batch)
		if err != nil {
			n.logger.Error("claim due users", "error", err)
			break
		}
		if len(due) == 0 {
			break
		}
		metrics.UsersClaimedTotal.Add(float64(len(due)))

		for _, user := range due {
			if ctx.Err() != nil {
				n.logger.Info("cycle interrupted", "sent", sent, "failed", failed)
				return
			}
			if n.notify(ctx, user) {
				sent++
			} else {
				failed++
			}
		}
	}

	metrics.NotifyCycleDuration.Observe(time.Since(start).Seconds())
	if count, err := n.users.CountSubscribed(ctx); err == nil {
		metrics.SubscribedUsers.Set(float64(count))
	}

	if sent > 0 || failed > 0 {
		n.logger.Info("notify cycle finished", "sent", sent, "failed", failed, "duration", time.Since(start))
	}
}

// notify handles one claimed user. A failure at either external call reverts
// the claim so the user is due again next cycle; it never aborts the scan.
func (n *Notifier) notify(ctx context.Context, user *domain.DueUser) bool {
	fetchStart := time.Now()
	forecast, err := n.forecaster.Forecast(ctx, user.City, n.days)
	metrics.ForecastFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		n.fail(ctx, user, "forecast", err)
		return false
	}

	subject := email.ForecastSubject(user.City)
	body := email.ForecastBody(user.City, forecast)
	if err := n.sender.Send(ctx, user.Email, subject, body); err != nil {
		n.fail(ctx, user, "delivery", err)
		return false
	}

	if err := n.users.CompleteNotify(ctx, user.ID); err != nil {
		n.logger.Error("complete notify", "user_id", user.ID, "error", err)
	}
	metrics.EmailsSentTotal.Inc()
	n.logger.Info("forecast sent", "email", user.Email, "city", user.City)
	return true
}

func (n *Notifier) fail(ctx context.Context, user *domain.DueUser, stage string, cause error) {
	metrics.EmailsFailedTotal.WithLabelValues(stage).Inc()
	n.logger.Warn("notification failed, will retry next cycle",
		"email", user.Email,
		"city", user.City,
		"stage", stage,
		"error", cause,
	)
	if err := n.users.FailNotify(ctx, user.ID, user.PrevNotifiedAt, cause.Error()); err != nil {
		n.logger.Error("revert claim", "user_id", user.ID, "error", err)
	}
}
