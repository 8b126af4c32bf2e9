// Package record contains the daily record use cases.
package record

import (
	"sync"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// PeriodLocks serializes writers of one (store, period) within the process.
type PeriodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPeriodLocks creates an empty lock table.
func NewPeriodLocks() *PeriodLocks {
	return &PeriodLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock blocks until the (store, period) pair is free and returns its unlock func.
func (l *PeriodLocks) Lock(storeID string, period entity.Period) func() {
	key := storeID + "|" + period.Key()

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
