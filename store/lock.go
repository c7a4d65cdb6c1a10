package store

import (
	"context"
	"fmt"

	"github.com/uvceed/pulse-api/schema"
)

// RefreshLockKey names the advisory lock guarding a (zip, signal) refresh so
// concurrent requests never run the same upstream fetch twice.
func RefreshLockKey(zipCode string, signalType schema.SignalType) string {
	return fmt.Sprintf("pulse_refresh:%s:%s", zipCode, signalType)
}

// AcquireRefreshLock takes a session-scoped postgres advisory lock. It returns
// false without blocking when another session holds the lock.
//
// Advisory locks belong to the session that took them, so the lock is taken on
// a dedicated connection checked out of the pool. The connection stays pinned
// until ReleaseRefreshLock runs the unlock on that same session.
func (s *PulseStore) AcquireRefreshLock(zipCode string, signalType schema.SignalType) (bool, error) {
	key := RefreshLockKey(zipCode, signalType)

	s.lockMu.Lock()
	_, held := s.lockConns[key]
	s.lockMu.Unlock()
	if held {
		return false, nil
	}

	conn, err := s.ormDB.DB().Conn(context.Background())
	if err != nil {
		return false, err
	}

	var acquired bool
	row := conn.QueryRowContext(context.Background(),
		"SELECT pg_try_advisory_lock(hashtext($1)::bigint)", key)
	if err := row.Scan(&acquired); err != nil {
		conn.Close()
		return false, err
	}
	if !acquired {
		conn.Close()
		return false, nil
	}

	s.lockMu.Lock()
	s.lockConns[key] = conn
	s.lockMu.Unlock()
	return true, nil
}

// ReleaseRefreshLock unlocks on the session pinned by AcquireRefreshLock and
// returns its connection to the pool. Releasing a lock this store does not
// hold is a no-op.
func (s *PulseStore) ReleaseRefreshLock(zipCode string, signalType schema.SignalType) error {
	key := RefreshLockKey(zipCode, signalType)

	s.lockMu.Lock()
	conn, ok := s.lockConns[key]
	delete(s.lockConns, key)
	s.lockMu.Unlock()
	if !ok {
		return nil
	}

	_, err := conn.ExecContext(context.Background(),
		"SELECT pg_advisory_unlock(hashtext($1)::bigint)", key)
	if closeErr := conn.Close(); err == nil {
		err = closeErr
	}
	return err
}
