package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VouchValidity is how long a vouch stays active after issuance.
const VouchValidity = 365 * 24 * time.Hour

// MaxVouchesPerQuarter limits how many active vouches a sovereign user may
// issue within a rolling quarter, before standing penalties are deducted.
const MaxVouchesPerQuarter = 3

// Vouch is a time-limited trust attestation from a sovereign-tier user to
// another user. Only the issuing voucher may revoke it early.
type Vouch struct {
	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	FromUser  string     `bun:",notnull"      json:"fromUser"`
	ToUser    string     `bun:",notnull"      json:"toUser"`
	IssuedAt  time.Time  `bun:",notnull"      json:"issuedAt"`
	ExpiresAt time.Time  `bun:",notnull"      json:"expiresAt"`
	Active    bool       `bun:",notnull"      json:"active"`
	RevokedAt *time.Time `bun:",nullzero"     json:"revokedAt,omitempty"`
}

// IsExpired checks whether the vouch has passed its expiry instant.
func (v *Vouch) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// IsActive checks whether the vouch still contributes to network attestation.
func (v *Vouch) IsActive(now time.Time) bool {
	return v.Active && v.RevokedAt == nil && !v.IsExpired(now)
}

// VoucherStanding tracks the permanent slot penalties applied to a voucher
// whose vouchees were later found in violation. Penalties never expire.
type VoucherStanding struct {
	bun.BaseModel `bun:"table:voucher_standing" json:"-"`

	UserID        string    `bun:",pk"      json:"userId"`
	SlotPenalties int       `bun:",notnull" json:"slotPenalties"`
	UpdatedAt     time.Time `bun:",notnull" json:"updatedAt"`
}

// AvailableSlots returns the vouch slots left in the current rolling quarter
// given how many active vouches were already issued in it.
func (s *VoucherStanding) AvailableSlots(issuedThisQuarter int) int {
	slots := MaxVouchesPerQuarter - s.SlotPenalties - issuedThisQuarter
	if slots < 0 {
		return 0
	}
	return slots
}
