package enum

// ActionClass groups action types for abuse-pattern analysis. The class of
// each configured action type comes from the scoring policy, not from code.
//
//go:generate go tool enumer -type=ActionClass -trimprefix=ActionClass
type ActionClass int

const (
	// ActionClassNeutral is the fallback for unclassified action types.
	ActionClassNeutral ActionClass = iota
	// ActionClassContribution covers uploads, claims and other additive work.
	ActionClassContribution
	// ActionClassRead covers downloads, exports and other extraction paths.
	ActionClassRead
	// ActionClassVerification covers provenance verification attempts.
	ActionClassVerification
)
