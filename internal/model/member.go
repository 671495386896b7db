package model

// Member is the gamification profile attached to a user account. The local
// collection store keeps a synced copy; the authoritative XP value lives in
// the members table and is only changed through an atomic increment.
//
// Invariant: Level == progression.LevelForXP(XP) after every write.
type Member struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	Email  string `json:"email"`
	UserID string `json:"user_id" gorm:"index;not null"`
	Avatar string `json:"avatar,omitempty"`
	XP     int    `json:"xp" gorm:"not null;default:0"`
	Level  int    `json:"level" gorm:"not null;default:1"`
}
