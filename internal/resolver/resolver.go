package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dododevs/tg-tplfvg/core/logger"
	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

// Kind classifies the outcome of a resolution attempt.
type Kind int

const (
	// KindDirectHit means exactly one stop matched and its monitor has passes.
	KindDirectHit Kind = iota
	// KindNoPassages means exactly one stop matched but its monitor is empty.
	KindNoPassages
	// KindCandidates means several stops matched and the user must pick one.
	KindCandidates
	// KindNoMatch means nothing matched the query.
	KindNoMatch
	// KindUnavailable means the upstream search could not be reached.
	KindUnavailable
)

// Resolution is the single outcome of resolving one user query.
type Resolution struct {
	Kind Kind

	// StopCode and StopName are set for direct hits and no-passage outcomes.
	StopCode string
	StopName string
	// Monitor holds the stop's passes for direct hits.
	Monitor []transit.MonitorEntry
	// Candidates holds the disambiguation list.
	Candidates []transit.StopCandidate
}

// API is the slice of the transit client the resolver needs.
type API interface {
	SearchByKeyword(ctx context.Context, query string) ([]transit.StopCandidate, error)
	SearchByLocation(ctx context.Context, lat, lon float64) ([]transit.StopCandidate, error)
	StopInfo(ctx context.Context, code string) (*transit.StopInfo, error)
	Monitor(ctx context.Context, code string) ([]transit.MonitorEntry, error)
}

// Resolver turns free text, stop codes, favorite aliases or coordinates into
// a single resolution outcome, recording direct hits in the user's recent
// stops along the way.
type Resolver struct {
	api   API
	store session.Store
	ref   *reference.Table
	log   *slog.Logger
}

// New builds a Resolver. The reference table may be empty, which disables
// zone filtering.
func New(api API, store session.Store, ref *reference.Table) *Resolver {
	if ref == nil {
		ref = reference.Empty()
	}
	return &Resolver{api: api, store: store, ref: ref, log: logger.API}
}

// ResolveText resolves a text query for the given user.
//
// Order: favorite alias substitution, direct stop-code lookup, then keyword
// search filtered by the user's selected zones.
func (r *Resolver) ResolveText(ctx context.Context, sess *session.Session, text string) Resolution {
	query := text
	if strings.HasPrefix(query, "/") {
		query = strings.SplitN(strings.TrimPrefix(query, "/"), " ", 2)[0]
	}

	if code, ok := sess.FavoriteCodeByAlias(query); ok {
		query = code
	}

	if query != "" {
		// A raw query that names a stop code bypasses keyword search.
		if info, err := r.api.StopInfo(ctx, query); err == nil && info != nil {
			return r.monitorHit(ctx, sess, info.Address, query)
		}
	}

	results, err := r.api.SearchByKeyword(ctx, query)
	if err != nil {
		return Resolution{Kind: KindUnavailable}
	}
	return r.fromSearch(ctx, sess, results)
}

// ResolveLocation resolves a static location query for the given user.
func (r *Resolver) ResolveLocation(ctx context.Context, sess *session.Session, lat, lon float64) Resolution {
	results, err := r.api.SearchByLocation(ctx, lat, lon)
	if err != nil {
		return Resolution{Kind: KindUnavailable}
	}
	return r.fromSearch(ctx, sess, results)
}

func (r *Resolver) fromSearch(ctx context.Context, sess *session.Session, results []transit.StopCandidate) Resolution {
	filtered := r.ref.FilterByZones(results, sess.Zones)
	if len(filtered) != len(results) && r.log != nil {
		r.log.LogAttrs(ctx, slog.LevelDebug, "zone filter applied",
			slog.String("event", "resolve.zone_filter"),
			slog.Any("zones", sess.Zones),
			slog.Int("results", len(filtered)),
		)
	}

	switch len(filtered) {
	case 0:
		return Resolution{Kind: KindNoMatch}
	case 1:
		return r.monitorHit(ctx, sess, filtered[0].Name, filtered[0].Code)
	default:
		return Resolution{Kind: KindCandidates, Candidates: filtered}
	}
}

// monitorHit fetches the monitor for a resolved stop. A monitor with passes
// makes a direct hit and pushes the stop onto the user's recents; an empty
// or unreachable monitor degrades to a no-passages outcome.
func (r *Resolver) monitorHit(ctx context.Context, sess *session.Session, name, code string) Resolution {
	monitor, err := r.api.Monitor(ctx, code)
	if err != nil || len(monitor) == 0 {
		return Resolution{Kind: KindNoPassages, StopCode: code, StopName: name}
	}

	if _, err := r.store.Update(ctx, sess.UserID, func(s *session.Session) error {
		s.PushRecent(code, name)
		return nil
	}); err != nil && r.log != nil {
		r.log.LogAttrs(ctx, slog.LevelWarn, "recents update failed",
			slog.String("event", "resolve.recents"),
			slog.Int64("user_id", sess.UserID),
			slog.String("stop_code", code),
			slog.String("err", err.Error()),
		)
	}

	return Resolution{
		Kind:     KindDirectHit,
		StopCode: code,
		StopName: name,
		Monitor:  monitor,
	}
}
