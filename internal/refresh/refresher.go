package refresh

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/config"
	"github.com/spec-kit/rental-portal/internal/domain"
	"github.com/spec-kit/rental-portal/internal/stats"
	"github.com/spec-kit/rental-portal/internal/upstream"
)

// snapshotTTL outlives several refresh intervals so a short upstream outage
// keeps serving the last good aggregate.
const snapshotTTL = 24 * time.Hour

// Refresher periodically recomputes the dashboard aggregates and caches the
// result. The dashboard handler serves live data and falls back to the
// cached snapshot when both upstream fetches fail.
type Refresher struct {
	cron      *cron.Cron
	client    *upstream.Client
	synth     *stats.Synthesizer
	cache     Cache
	logger    *zap.Logger
	spec      string
	token     string
	isRunning bool
}

// NewRefresher creates a refresher.
func NewRefresher(cfg config.SnapshotConfig, client *upstream.Client, synth *stats.Synthesizer, cache Cache, logger *zap.Logger) *Refresher {
	return &Refresher{
		cron:   cron.New(),
		client: client,
		synth:  synth,
		cache:  cache,
		logger: logger,
		spec:   cfg.RefreshSpec,
		token:  cfg.ServiceToken,
	}
}

// Start schedules the refresh job and warms the cache once immediately.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		if err := r.Refresh(context.Background()); err != nil {
			r.logger.Warn("dashboard snapshot refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	go func() {
		if err := r.Refresh(context.Background()); err != nil {
			r.logger.Warn("initial dashboard snapshot failed", zap.Error(err))
		}
	}()

	r.cron.Start()
	r.isRunning = true
	r.logger.Info("dashboard snapshot refresher started", zap.String("spec", r.spec))
	return nil
}

// Stop halts the schedule.
func (r *Refresher) Stop() {
	if r.isRunning {
		r.cron.Stop()
		r.isRunning = false
	}
}

// Refresh recomputes the aggregates from upstream and stores them. The
// scheduled fetch runs outside any user session, so it authenticates with
// the configured service token. Both collections must load; a partial fetch
// is not worth caching over a previous full snapshot.
func (r *Refresher) Refresh(ctx context.Context) error {
	users, properties, userErr, propErr := Gather(ctx, r.client, r.token)
	if userErr != nil {
		return userErr
	}
	if propErr != nil {
		return propErr
	}

	snapshot := r.synth.Dashboard(properties, users)
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.cache.Put(ctx, encoded, snapshotTTL)
}

// Cached returns the last stored snapshot, if any.
func (r *Refresher) Cached(ctx context.Context) (*domain.DashboardStats, bool) {
	raw, err := r.cache.Fetch(ctx)
	if err != nil {
		return nil, false
	}
	var snapshot domain.DashboardStats
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

// Gather fetches the full user and property collections concurrently. Each
// fetch fails independently; a failed side comes back as an empty slice with
// its error, never aborting the other.
func Gather(ctx context.Context, client *upstream.Client, token string) (users []domain.User, properties []domain.Property, userErr, propErr error) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		users, userErr = client.AllUsers(ctx, token)
	}()
	go func() {
		defer wg.Done()
		properties, propErr = client.AllProperties(ctx, token)
	}()

	wg.Wait()
	if userErr != nil {
		users = nil
	}
	if propErr != nil {
		properties = nil
	}
	return users, properties, userErr, propErr
}
