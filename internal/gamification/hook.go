// Package gamification exposes the member-progression operations consumed by
// UI and automation: award or remove XP through the authoritative increment,
// and summarise a member's progress.
package gamification

import (
	"context"

	"github.com/rs/zerolog"

	"questboard/internal/metrics"
	"questboard/internal/model"
	"questboard/internal/progression"
)

// XPGateway is the authoritative increment operation: one atomic
// read-add-persist at the point of truth, returning the updated member and
// whether the increment crossed a level boundary.
type XPGateway interface {
	AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error)
}

type Hook struct {
	gw  XPGateway
	log zerolog.Logger
}

func NewHook(gw XPGateway, log zerolog.Logger) *Hook {
	return &Hook{gw: gw, log: log}
}

// AddXP forwards one increment to the gateway. It returns the updated member
// only when a level-up occurred and (nil, nil) otherwise; callers that need
// the new XP value regardless must query separately. Failures are logged
// here and surfaced as an error so callers can tell "no level-up" from
// "request failed".
func (h *Hook) AddXP(ctx context.Context, memberID string, amount int) (*model.Member, error) {
	member, leveledUp, err := h.gw.AddXP(ctx, memberID, amount)
	if err != nil {
		metrics.XPEventsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).
			Str("member_id", memberID).
			Int("amount", amount).
			Msg("xp increment failed")
		return nil, err
	}
	if !leveledUp {
		metrics.XPEventsTotal.WithLabelValues("no_change").Inc()
		return nil, nil
	}
	metrics.XPEventsTotal.WithLabelValues("level_up").Inc()
	h.log.Info().
		Str("member_id", memberID).
		Int("level", member.Level).
		Int("xp", member.XP).
		Msg("member leveled up")
	return member, nil
}

// RemoveXP is AddXP with a negated amount. No lower bound is enforced: xp
// may go negative and the level follows it down.
func (h *Hook) RemoveXP(ctx context.Context, memberID string, amount int) (*model.Member, error) {
	return h.AddXP(ctx, memberID, -amount)
}

// MemberProgress summarises a member's progress from its XP value.
func (h *Hook) MemberProgress(member *model.Member) progression.Summary {
	return progression.Summarize(member.XP)
}
