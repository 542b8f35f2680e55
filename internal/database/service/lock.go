// Package service contains multi-model write operations. Writes for the
// same user are serialized through a striped lock so that concurrent action
// and violation appends cannot silently overwrite each other's effect;
// cross-user operations run fully in parallel.
package service

import (
	"hash/fnv"
	"sync"
)

// lockStripes is the number of mutexes in the lock table. Collisions only
// cost a little extra serialization, never correctness.
const lockStripes = 128

// UserLocks serializes per-user writes with a fixed set of striped mutexes.
type UserLocks struct {
	stripes [lockStripes]sync.Mutex
}

// NewUserLocks creates an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{}
}

// Lock acquires the stripe for a user and returns its unlock function.
func (l *UserLocks) Lock(userID string) func() {
	h := fnv.New32a()
	h.Write([]byte(userID))

	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()

	return mu.Unlock
}
