package score

import "github.com/lumivault/gatekeeper/internal/database/types/enum"

// Policy describes how a single action type is scored and classified. The
// full mapping is injected from configuration so scoring policy can change
// without redeploying the engine.
type Policy struct {
	Score float64
	Class enum.ActionClass
}

// Table maps action types to their base quality score and abuse class.
type Table struct {
	entries      map[string]Policy
	defaultScore float64
}

// NewTable builds a score table from the injected policy entries. Unknown
// action types fall back to defaultScore with a neutral class.
func NewTable(entries map[string]Policy, defaultScore float64) *Table {
	copied := make(map[string]Policy, len(entries))
	for actionType, policy := range entries {
		copied[actionType] = policy
	}

	return &Table{
		entries:      copied,
		defaultScore: clamp01(defaultScore),
	}
}

// Score returns the base quality score for an action type.
func (t *Table) Score(actionType string) float64 {
	if policy, ok := t.entries[actionType]; ok {
		return clamp01(policy.Score)
	}
	return t.defaultScore
}

// Class returns the abuse class for an action type.
func (t *Table) Class(actionType string) enum.ActionClass {
	if policy, ok := t.entries[actionType]; ok {
		return policy.Class
	}
	return enum.ActionClassNeutral
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
