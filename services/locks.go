package services

import "sync"

// TournamentLocks serializes read-modify-write cycles against a tournament
// document. Every mutating operation loads the document, mutates it in memory
// and overwrites it whole; without the lock two concurrent submissions could
// interleave between load and save and silently drop one of them.
//
// One instance is shared by every service that writes tournament documents.
type TournamentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTournamentLocks() *TournamentLocks {
	return &TournamentLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given tournament id, creating it on first
// use, and returns the matching unlock.
func (l *TournamentLocks) Lock(tournamentID string) func() {
	l.mu.Lock()
	m, ok := l.locks[tournamentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tournamentID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
