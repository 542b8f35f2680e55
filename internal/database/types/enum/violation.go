package enum

// Severity classifies how serious a recorded violation is.
//
//go:generate go tool enumer -type=Severity -trimprefix=Severity
type Severity int

const (
	// SeverityModerate covers spam-classified behavior and repeated
	// unverifiable claims.
	SeverityModerate Severity = iota
	// SeveritySevere covers forged claims, spoofing and harassment.
	SeveritySevere
)

// CooldownState tracks where a user sits in the violation lifecycle.
//
//go:generate go tool enumer -type=CooldownState -trimprefix=CooldownState
type CooldownState int

const (
	// CooldownStateClean means no active cooldown.
	CooldownStateClean CooldownState = iota
	// CooldownStateCooling forces the user to Blocked until expiry.
	CooldownStateCooling
	// CooldownStatePermanentlyBanned is terminal; reached at 12 violations.
	CooldownStatePermanentlyBanned
)
