package store

import (
	"time"

	"github.com/uvceed/pulse-api/schema"
)

// TouchZipRequest records that a client asked about a ZIP; scheduled refresh
// jobs use this to decide what to keep warm.
func (s *PulseStore) TouchZipRequest(zipCode string) error {
	now := time.Now().UTC()
	return s.ormDB.Exec(`
		INSERT INTO zip_requests (zip_code, first_requested_at, last_requested_at, hits)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (zip_code)
		DO UPDATE SET last_requested_at = EXCLUDED.last_requested_at, hits = zip_requests.hits + 1`,
		zipCode, now, now).Error
}

// ListRecentZips returns ZIPs requested within the last N days, most recently
// requested first.
func (s *PulseStore) ListRecentZips(days int) ([]string, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var requests []schema.ZipRequest
	if err := s.ormDB.
		Where("last_requested_at >= ?", since).
		Order("last_requested_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	zips := make([]string, 0, len(requests))
	for _, r := range requests {
		zips = append(zips, r.ZipCode)
	}
	return zips, nil
}
