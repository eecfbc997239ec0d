package resilience

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdcrm/backend/internal/domain/booking"
	"github.com/jdcrm/backend/internal/domain/catalog"
	"github.com/jdcrm/backend/internal/domain/pipeline"
	"github.com/jdcrm/backend/internal/domain/shared"
	"github.com/jdcrm/backend/internal/infrastructure/config"
)

// Mode selects how the facade routes data access
type Mode string

const (
	// ModeAuto attempts the remote store first and falls back per call
	ModeAuto Mode = "auto"
	// ModeRemote never falls back; remote errors surface to the caller
	ModeRemote Mode = "remote"
	// ModeSimulated routes everything to the simulated store
	ModeSimulated Mode = "simulated"
)

// Repositories bundles one full set of repository implementations.
// The remote and simulated sets are the same gorm-backed code over
// different drivers, so both enforce identical lifecycle invariants.
type Repositories struct {
	Leads        pipeline.LeadRepository
	Interactions pipeline.InteractionRepository
	Agents       pipeline.AgentRepository
	Bookings     booking.BookingRepository
	Projects     catalog.ProjectRepository
	Units        catalog.UnitRepository
}

// Pinger checks reachability of the remote store
type Pinger interface {
	Ping() error
}

// Facade mediates every read and write against the lifecycle data. In auto
// mode each call goes to the remote store first, bounded by the configured
// timeout, and falls over to the simulated store only on transport-class
// failures. Credential failures are never downgraded. After every completed
// call a connectivity signal is published on the event bus.
type Facade struct {
	mode          Mode
	remote        Repositories
	simulated     Repositories
	remotePing    Pinger
	remoteTimeout time.Duration
	monitor       *Monitor
	bus           shared.EventPublisher
	logger        *zap.Logger
}

// New creates a facade over a remote and a simulated repository set
func New(cfg *config.FailoverConfig, remote, simulated Repositories, remotePing Pinger, bus shared.EventPublisher, logger *zap.Logger) *Facade {
	return &Facade{
		mode:          Mode(cfg.Mode),
		remote:        remote,
		simulated:     simulated,
		remotePing:    remotePing,
		remoteTimeout: cfg.RemoteTimeout,
		monitor:       NewMonitor(),
		bus:           bus,
		logger:        logger,
	}
}

// Connectivity returns the current connectivity state
func (f *Facade) Connectivity() Connectivity {
	return f.monitor.State()
}

// Probe performs the once-per-session availability check so the state
// machine leaves UNKNOWN before the first data call
func (f *Facade) Probe(ctx context.Context) Connectivity {
	if f.mode == ModeSimulated || f.remotePing == nil {
		f.report(ctx, "probe", false)
		return f.monitor.State()
	}
	f.report(ctx, "probe", f.remotePing.Ping() == nil)
	return f.monitor.State()
}

// Leads returns the facade-mediated lead repository
func (f *Facade) Leads() pipeline.LeadRepository {
	return &leadStore{f}
}

// Interactions returns the facade-mediated interaction repository
func (f *Facade) Interactions() pipeline.InteractionRepository {
	return &interactionStore{f}
}

// Agents returns the facade-mediated agent repository
func (f *Facade) Agents() pipeline.AgentRepository {
	return &agentStore{f}
}

// Bookings returns the facade-mediated booking repository
func (f *Facade) Bookings() booking.BookingRepository {
	return &bookingStore{f}
}

// Projects returns the facade-mediated project repository
func (f *Facade) Projects() catalog.ProjectRepository {
	return &projectStore{f}
}

// Units returns the facade-mediated unit repository
func (f *Facade) Units() catalog.UnitRepository {
	return &unitStore{f}
}

func (f *Facade) report(ctx context.Context, op string, live bool) {
	previous, current, changed := f.monitor.Report(live)
	if changed {
		f.logger.Info("connectivity state changed",
			zap.String("op", op),
			zap.String("previous", previous.String()),
			zap.String("current", current.String()),
		)
	}
	if f.bus == nil {
		return
	}
	if err := f.bus.Publish(ctx, NewConnectivityChangedEvent(op, previous, current)); err != nil {
		f.logger.Warn("failed to publish connectivity signal", zap.Error(err))
	}
}

// isTransportFailure reports whether the remote store failed to respond at
// all. Only these errors trigger fallback; an error the remote actually
// produced (constraint violations, domain errors, genuine not-found) means
// the store is live and must surface unchanged.
func isTransportFailure(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// execute runs one facade-mediated call. R is the repository interface the
// call needs; T is the call's result type.
func execute[R any, T any](ctx context.Context, f *Facade, op string, remote, simulated R, call func(context.Context, R) (T, error)) (T, error) {
	var zero T

	switch f.mode {
	case ModeSimulated:
		f.report(ctx, op, false)
		return call(ctx, simulated)
	case ModeRemote:
		out, err := call(ctx, remote)
		f.report(ctx, op, err == nil || !isTransportFailure(err))
		return out, err
	}

	rctx, cancel := context.WithTimeout(ctx, f.remoteTimeout)
	out, err := call(rctx, remote)
	cancel()

	if err == nil {
		f.report(ctx, op, true)
		return out, nil
	}
	if errors.Is(err, shared.ErrAuthExpired) {
		// The remote answered; the session is what's broken
		f.report(ctx, op, true)
		return zero, err
	}
	if !isTransportFailure(err) {
		f.report(ctx, op, true)
		return zero, err
	}

	f.logger.Warn("remote store unreachable, routing to simulated store",
		zap.String("op", op), zap.Error(err))
	f.report(ctx, op, false)
	return call(ctx, simulated)
}

// executeErr is execute for calls that return only an error
func executeErr[R any](ctx context.Context, f *Facade, op string, remote, simulated R, call func(context.Context, R) error) error {
	_, err := execute(ctx, f, op, remote, simulated, func(ctx context.Context, r R) (struct{}, error) {
		return struct{}{}, call(ctx, r)
	})
	return err
}
