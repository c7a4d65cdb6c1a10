package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/uvceed/pulse-api/schema"
)

var (
	ErrSnapshotNotFound = fmt.Errorf("no snapshot found")
)

// pulse main datastore
type PulseCore interface {
	Ping() error

	// Snapshot
	CreateSnapshot(payload schema.SignalPayload) (*schema.SignalSnapshot, error)
	GetLatestSnapshot(zipCode string, signalType schema.SignalType) (*schema.SignalSnapshot, error)
	ListSnapshots(zipCode string, signalType schema.SignalType, since time.Time, limit int) ([]schema.SignalSnapshot, error)
	ListLatestForZips(zipCodes []string, signalType schema.SignalType) ([]schema.SignalSnapshot, error)
	ExpireSnapshots(before time.Time) (int64, error)

	// ZipRequest
	TouchZipRequest(zipCode string) error
	ListRecentZips(days int) ([]string, error)

	// RefreshLock
	AcquireRefreshLock(zipCode string, signalType schema.SignalType) (bool, error)
	ReleaseRefreshLock(zipCode string, signalType schema.SignalType) error
}

// PulseStore is an implementation of PulseCore
type PulseStore struct {
	ormDB *gorm.DB
	mongo MongoStore

	lockMu    sync.Mutex
	lockConns map[string]*sql.Conn
}

func NewPulseStore(ormDB *gorm.DB, mongo MongoStore) *PulseStore {
	return &PulseStore{
		ormDB:     ormDB,
		mongo:     mongo,
		lockConns: map[string]*sql.Conn{},
	}
}

// Ping is to check the storage health status
func (s *PulseStore) Ping() error {
	if err := s.ormDB.DB().Ping(); err != nil {
		return err
	}
	return s.mongo.Ping()
}
