package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/uvceed/pulse-api/schema"
)

// newSnapshot builds the row for one summarization run. The denormalized
// rollup columns exist so history queries never unpack jsonb: the rollup
// wins when present, a single assessment stands in for it otherwise.
func newSnapshot(payload schema.SignalPayload) schema.SignalSnapshot {
	snapshot := schema.SignalSnapshot{
		ID:          uuid.New(),
		ZipCode:     payload.Zip,
		SignalType:  payload.SignalType,
		GeneratedAt: payload.GeneratedAt,
		State:       payload.Geo.StateAbbr,
		CountyFIPS:  payload.Geo.CountyFIPS,
		Payload:     payload,
	}

	if payload.Rollup != nil {
		snapshot.RiskLevel = payload.Rollup.Level
		snapshot.Trend = payload.Rollup.Trend
		snapshot.Confidence = payload.Rollup.Confidence
		snapshot.CompositeScore = payload.Rollup.Score
	} else if len(payload.Assessments) > 0 {
		a := payload.Assessments[0]
		snapshot.RiskLevel = a.Risk
		snapshot.Trend = a.Trend
		snapshot.Confidence = a.Confidence
		snapshot.CompositeScore = a.Composite
	} else {
		snapshot.RiskLevel = schema.RiskUnknown
		snapshot.Trend = schema.TrendUnknown
		snapshot.Confidence = schema.ConfidenceLow
	}

	return snapshot
}

// CreateSnapshot persists one summarization run. Rows are append-only.
func (s *PulseStore) CreateSnapshot(payload schema.SignalPayload) (*schema.SignalSnapshot, error) {
	snapshot := newSnapshot(payload)

	if err := s.ormDB.Create(&snapshot).Error; err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// GetLatestSnapshot returns the most recently generated snapshot for a
// (zip, signal type) pair.
func (s *PulseStore) GetLatestSnapshot(zipCode string, signalType schema.SignalType) (*schema.SignalSnapshot, error) {
	var snapshot schema.SignalSnapshot
	if err := s.ormDB.
		Where("zip_code = ? AND signal_type = ?", zipCode, signalType).
		Order("generated_at DESC").
		First(&snapshot).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

// ListSnapshots returns snapshots for a (zip, signal type) pair generated at
// or after since, newest first.
func (s *PulseStore) ListSnapshots(zipCode string, signalType schema.SignalType, since time.Time, limit int) ([]schema.SignalSnapshot, error) {
	snapshots := make([]schema.SignalSnapshot, 0)
	if err := s.ormDB.
		Where("zip_code = ? AND signal_type = ? AND generated_at >= ?", zipCode, signalType, since).
		Order("generated_at DESC").
		Limit(limit).
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ListLatestForZips returns the most recent snapshot per ZIP for one signal
// type. ZIPs with no snapshot yet are simply absent from the result.
func (s *PulseStore) ListLatestForZips(zipCodes []string, signalType schema.SignalType) ([]schema.SignalSnapshot, error) {
	snapshots := make([]schema.SignalSnapshot, 0)
	if err := s.ormDB.Raw(`
		SELECT DISTINCT ON (zip_code) * FROM signal_snapshots
		JOIN unnest(?::text[]) zips(zip_code) USING (zip_code)
		WHERE signal_type = ?
		ORDER BY zip_code, generated_at DESC`,
		pq.Array(zipCodes),
		signalType,
	).Scan(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ExpireSnapshots deletes snapshots generated before the given time and
// returns the number of rows removed.
func (s *PulseStore) ExpireSnapshots(before time.Time) (int64, error) {
	result := s.ormDB.Delete(schema.SignalSnapshot{}, "generated_at < ?", before)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
