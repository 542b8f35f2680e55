package enum

// Tier represents the discrete access level granted to a user.
//
//go:generate go tool enumer -type=Tier -trimprefix=Tier
type Tier int

const (
	// TierBlocked denies all gated operations.
	TierBlocked Tier = iota
	// TierDegraded allows read-only access with reduced limits.
	TierDegraded
	// TierPartial is the neutral default for new and gated accounts.
	TierPartial
	// TierFull grants standard access to all gated operations.
	TierFull
	// TierSovereign is the top tier; only sovereign users may issue vouches.
	TierSovereign
)
