package service_test

import (
	"sync"
	"testing"

	"github.com/lumivault/gatekeeper/internal/database/service"
	"github.com/stretchr/testify/assert"
)

func TestUserLocksSerializeSameUser(t *testing.T) {
	t.Parallel()

	locks := service.NewUserLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)

	// Without the lock this increment would race.
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := locks.Lock("user-1")
			defer unlock()

			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestUserLocksIndependentUsers(t *testing.T) {
	t.Parallel()

	locks := service.NewUserLocks()

	// Holding one user's lock must not block another user's.
	unlockA := locks.Lock("user-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("completely-different-user")
		unlockB()
		close(done)
	}()

	<-done
}
