package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SignalPayload is the full per-signal result serialized into the snapshot
// row: the geography it was computed for, every per-pathogen assessment, and
// the rollup when the signal carries more than one pathogen.
type SignalPayload struct {
	Zip         string           `json:"zip_code"`
	Geo         Geo              `json:"geo"`
	SignalType  SignalType       `json:"signal_type"`
	GeneratedAt time.Time        `json:"generated_at"`
	Assessments []AssessedSignal `json:"assessments"`
	Rollup      *Rollup          `json:"rollup,omitempty"`
	Source      string           `json:"source,omitempty"`
}

func (p SignalPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *SignalPayload) Scan(src interface{}) error {
	source, ok := src.([]byte)
	if !ok {
		return errors.New("Type assertion .([]byte) failed.")
	}
	return json.Unmarshal(source, p)
}

// SignalSnapshot is one persisted summarization run for a (zip, signal type)
// pair. Rows are append-only; the latest generated_at wins at read time.
type SignalSnapshot struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	ZipCode        string        `json:"zip_code" gorm:"index:idx_snapshot_zip_signal"`
	SignalType     SignalType    `json:"signal_type" gorm:"index:idx_snapshot_zip_signal"`
	GeneratedAt    time.Time     `json:"generated_at" gorm:"index:idx_snapshot_zip_signal"`
	State          string        `json:"state"`
	CountyFIPS     string        `json:"county_fips"`
	RiskLevel      RiskLevel     `json:"risk_level"`
	Trend          Trend         `json:"trend"`
	Confidence     Confidence    `json:"confidence"`
	CompositeScore float64       `json:"composite_score"`
	Payload        SignalPayload `json:"payload" gorm:"type:jsonb"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ZipRequest tracks which ZIPs clients have asked about so scheduled refresh
// jobs know what to keep warm.
type ZipRequest struct {
	ZipCode          string    `json:"zip_code" gorm:"primary_key"`
	FirstRequestedAt time.Time `json:"first_requested_at"`
	LastRequestedAt  time.Time `json:"last_requested_at"`
	Hits             int64     `json:"hits"`
}
