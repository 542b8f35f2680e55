// Package trust blends the non-behavioral authenticity signals: wallet age,
// vouches received, and on-chain verification.
package trust

import "math"

// Composite weights. The four signals are computed independently and the
// weights sum to 1.
const (
	WeightOnChain    = 0.40
	WeightBehavioral = 0.25
	WeightTemporal   = 0.20
	WeightNetwork    = 0.15
)

// VouchIncrement is the attestation contribution of one active vouch.
const VouchIncrement = 0.10

// temporalSaturationDays is where the wallet-age curve reaches 1.0.
const temporalSaturationDays = 1100

// Temporal maps wallet age to a trust value on a logarithmic curve: trust
// accrues fast early (30 days lands near 0.49) and saturates slowly (1000
// days lands near 0.99).
func Temporal(walletAgeDays float64) float64 {
	if walletAgeDays <= 0 {
		return 0
	}

	v := math.Log10(walletAgeDays+1) / math.Log10(temporalSaturationDays)

	return math.Min(1.0, v)
}

// Network converts the number of active vouches received into an attestation
// value, capped at 1.
func Network(activeVouches int) float64 {
	if activeVouches <= 0 {
		return 0
	}

	return math.Min(1.0, VouchIncrement*float64(activeVouches))
}

// OnChain is the fraction of a user's claims verified on chain. A user with
// no claims contributes nothing.
func OnChain(verifiedClaims, totalClaims int64) float64 {
	if totalClaims <= 0 {
		return 0
	}

	ratio := float64(verifiedClaims) / float64(totalClaims)

	return math.Min(1.0, math.Max(0, ratio))
}

// Composite blends the four independent signals into the final authenticity
// score.
func Composite(onChain, behavioral, temporal, network float64) float64 {
	return WeightOnChain*onChain +
		WeightBehavioral*behavioral +
		WeightTemporal*temporal +
		WeightNetwork*network
}
