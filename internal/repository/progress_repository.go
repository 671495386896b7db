package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questboard/internal/model"
	"questboard/internal/progression"
)

// ProgressRepository owns the authoritative XP value of each member. The
// increment runs under a row lock so the level comparison always sees one
// consistent before/after pair, unlike the local collection store.
type ProgressRepository struct {
	db *gorm.DB
}

type ProgressRepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error)
	Delete(ctx context.Context, id string) error
}

var _ ProgressRepositoryInterface = (*ProgressRepository)(nil)

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create inserts the authoritative row for a new member.
func (r *ProgressRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID retrieves the authoritative row for a member.
func (r *ProgressRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// AddXP applies one atomic increment: read the locked row, add the amount,
// recompute the level from the new value and persist xp and level together.
// The returned flag reports whether the increment crossed a level boundary.
// Amount may be negative; xp is not floored.
func (r *ProgressRepository) AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error) {
	var member model.Member
	leveledUp := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&member, "id = ?", memberID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}

		oldXP := member.XP
		member.XP = oldXP + amount
		member.Level = progression.LevelForXP(member.XP)
		leveledUp = progression.DidLevelUp(oldXP, member.XP)

		return tx.Model(&model.Member{}).
			Where("id = ?", memberID).
			Updates(map[string]any{"xp": member.XP, "level": member.Level}).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &member, leveledUp, nil
}

// Delete removes the authoritative row. Missing rows are a no-op.
func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, "id = ?", id).Error
}
