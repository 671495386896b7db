package repository

import (
	"context"
	"fmt"
	"strings"

	"questboard/internal/model"
	"questboard/internal/store"
)

// MemberRepository manages the local members collection. XP and level are
// only copied here; the authoritative values live behind ProgressRepository
// and reach this collection through the sync loop.
type MemberRepository struct {
	store *store.Store
}

func NewMemberRepository(s *store.Store) *MemberRepository {
	return &MemberRepository{store: s}
}

// MemberUpdate carries a partial update; nil fields are left unchanged.
type MemberUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
}

// Create validates the member, fills gamification defaults and appends it to
// the collection. Returns the generated id.
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) (string, error) {
	member.Name = strings.TrimSpace(member.Name)
	if member.Name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if member.UserID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrValidation)
	}

	member.ID = newID("member")
	member.XP = 0
	member.Level = 1

	members, err := r.GetAll(ctx)
	if err != nil {
		return "", err
	}
	members = append(members, *member)
	if err := r.store.Save(ctx, store.CollectionMembers, members); err != nil {
		return "", err
	}
	return member.ID, nil
}

// GetByID returns the member with the given id from the current snapshot.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	members, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, ErrMemberNotFound
}

// GetAll returns the current snapshot of the members collection.
func (r *MemberRepository) GetAll(ctx context.Context) ([]model.Member, error) {
	members := []model.Member{}
	if err := r.store.Get(ctx, store.CollectionMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update merges the non-nil fields over the existing member. A renamed
// member must still have a non-empty trimmed name.
func (r *MemberRepository) Update(ctx context.Context, id string, upd MemberUpdate) error {
	members, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range members {
		if members[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrMemberNotFound
	}

	member := &members[idx]
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrValidation)
		}
		member.Name = name
	}
	if upd.Email != nil {
		member.Email = *upd.Email
	}
	if upd.Avatar != nil {
		member.Avatar = *upd.Avatar
	}

	return r.store.Save(ctx, store.CollectionMembers, members)
}

// SetProgress overwrites the local XP/level copy for a member, keeping the
// stored level consistent with the stored xp. Missing members are a no-op:
// the authoritative row may exist before the local copy has synced.
func (r *MemberRepository) SetProgress(ctx context.Context, id string, xp, level int) error {
	members, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range members {
		if members[i].ID == id {
			members[i].XP = xp
			members[i].Level = level
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return r.store.Save(ctx, store.CollectionMembers, members)
}

// Delete filters the id out and saves. Deleting a missing id is a no-op.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	members, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := members[:0]
	for _, m := range members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return r.store.Save(ctx, store.CollectionMembers, kept)
}
