package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/api/mocks"
	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/store"
)

var testGeo = &schema.Geo{
	ZipCode:    "30341",
	Place:      "Atlanta",
	StateAbbr:  "GA",
	StateName:  "Georgia",
	CountyName: "DeKalb",
	CountyFIPS: "13089",
}

func snapshotAt(generatedAt time.Time) *schema.SignalSnapshot {
	return &schema.SignalSnapshot{
		ZipCode:     "30341",
		SignalType:  schema.SignalWastewater,
		GeneratedAt: generatedAt,
		RiskLevel:   schema.RiskModerate,
		Trend:       schema.TrendStable,
		Confidence:  schema.ConfidenceHigh,
		Payload: schema.SignalPayload{
			Zip:         "30341",
			Geo:         *testGeo,
			SignalType:  schema.SignalWastewater,
			GeneratedAt: generatedAt,
		},
	}
}

type latestResponse struct {
	ZipCode string `json:"zip_code"`
	Signals []struct {
		SignalType  string    `json:"signal_type"`
		Stale       bool      `json:"stale"`
		GeneratedAt time.Time `json:"generated_at"`
	} `json:"signals"`
}

func newSignalTestServer(t *testing.T) (*Server, *mocks.MockPulseCore, *mocks.MockZipResolver, *mocks.MockRefresher, *gomock.Controller) {
	ctl := gomock.NewController(t)

	p := mocks.NewMockPulseCore(ctl)
	r := mocks.NewMockZipResolver(ctl)
	f := mocks.NewMockRefresher(ctl)

	s := &Server{
		store:     p,
		resolver:  r,
		refresher: f,
	}
	return s, p, r, f, ctl
}

func serveLatest(s *Server, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/signals/latest", s.latestSignals)

	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLatestSignalsFreshCache(t *testing.T) {
	s, p, r, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	fresh := snapshotAt(time.Now().Add(-time.Hour))

	p.EXPECT().TouchZipRequest("30341").Return(nil).Times(1)
	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)
	p.EXPECT().GetLatestSnapshot("30341", schema.SignalWastewater).Return(fresh, nil).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=wastewater")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp latestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "30341", resp.ZipCode)
	assert.Len(t, resp.Signals, 1)
	assert.False(t, resp.Signals[0].Stale)
}

func TestLatestSignalsRefreshesStaleSnapshot(t *testing.T) {
	s, p, r, f, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	stale := snapshotAt(time.Now().Add(-24 * time.Hour))
	fresh := snapshotAt(time.Now())

	p.EXPECT().TouchZipRequest("30341").Return(nil).Times(1)
	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)
	p.EXPECT().GetLatestSnapshot("30341", schema.SignalWastewater).Return(stale, nil).Times(1)
	p.EXPECT().AcquireRefreshLock("30341", schema.SignalWastewater).Return(true, nil).Times(1)
	f.EXPECT().Refresh(testGeo, schema.SignalWastewater).Return(fresh, nil).Times(1)
	p.EXPECT().ReleaseRefreshLock("30341", schema.SignalWastewater).Return(nil).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=wastewater")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp latestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Signals[0].Stale)
	assert.WithinDuration(t, fresh.GeneratedAt, resp.Signals[0].GeneratedAt, time.Second)
}

func TestLatestSignalsServesStaleWhenLockBusy(t *testing.T) {
	s, p, r, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	stale := snapshotAt(time.Now().Add(-24 * time.Hour))

	p.EXPECT().TouchZipRequest("30341").Return(nil).Times(1)
	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)
	p.EXPECT().GetLatestSnapshot("30341", schema.SignalWastewater).Return(stale, nil).Times(1)
	p.EXPECT().AcquireRefreshLock("30341", schema.SignalWastewater).Return(false, nil).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=wastewater")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp latestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Signals[0].Stale)
}

func TestLatestSignalsServesStaleWhenRefreshFails(t *testing.T) {
	s, p, r, f, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	stale := snapshotAt(time.Now().Add(-24 * time.Hour))

	p.EXPECT().TouchZipRequest("30341").Return(nil).Times(1)
	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)
	p.EXPECT().GetLatestSnapshot("30341", schema.SignalWastewater).Return(stale, nil).Times(1)
	p.EXPECT().AcquireRefreshLock("30341", schema.SignalWastewater).Return(true, nil).Times(1)
	f.EXPECT().Refresh(testGeo, schema.SignalWastewater).Return(nil, fmt.Errorf("upstream down")).Times(1)
	p.EXPECT().ReleaseRefreshLock("30341", schema.SignalWastewater).Return(nil).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=wastewater")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp latestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Signals[0].Stale)
}

func TestLatestSignalsUnavailable(t *testing.T) {
	s, p, r, f, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	p.EXPECT().TouchZipRequest("30341").Return(nil).Times(1)
	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)
	p.EXPECT().GetLatestSnapshot("30341", schema.SignalWastewater).Return(nil, store.ErrSnapshotNotFound).Times(1)
	p.EXPECT().AcquireRefreshLock("30341", schema.SignalWastewater).Return(true, nil).Times(1)
	f.EXPECT().Refresh(testGeo, schema.SignalWastewater).Return(nil, fmt.Errorf("upstream down")).Times(1)
	p.EXPECT().ReleaseRefreshLock("30341", schema.SignalWastewater).Return(nil).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=wastewater")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorSignalUnavailable.Code, resp.Code)
}

func TestLatestSignalsInvalidZip(t *testing.T) {
	s, _, _, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	for _, zip := range []string{"", "1234", "abcde", "123456"} {
		w := serveLatest(s, "/v1/signals/latest?zip="+zip)
		assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code for zip %q", zip)
	}
}

func TestLatestSignalsUnknownSignal(t *testing.T) {
	s, _, _, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	w := serveLatest(s, "/v1/signals/latest?zip=30341&signals=hospitalizations")
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorUnknownSignal.Code, resp.Code)
}

func TestLatestSignalsZipNotFound(t *testing.T) {
	s, p, r, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	p.EXPECT().TouchZipRequest("99999").Return(nil).Times(1)
	r.EXPECT().Resolve("99999").Return(nil, geo.ErrZipNotFound).Times(1)

	w := serveLatest(s, "/v1/signals/latest?zip=99999&signals=wastewater")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
}

func TestSignalHistory(t *testing.T) {
	s, p, _, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	snapshots := []schema.SignalSnapshot{
		*snapshotAt(time.Now().Add(-1 * time.Hour)),
		*snapshotAt(time.Now().Add(-13 * time.Hour)),
	}
	p.EXPECT().ListSnapshots("30341", schema.SignalWastewater, gomock.Any(), 2).Return(snapshots, nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/signals/history", s.signalHistory)

	req := httptest.NewRequest("GET", "/v1/signals/history?zip=30341&signal=wastewater&limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Snapshots []schema.SignalSnapshot `json:"snapshots"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Snapshots, 2)
}

func TestResolveGeo(t *testing.T) {
	s, _, r, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	r.EXPECT().Resolve("30341").Return(testGeo, nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/geo/:zip", s.resolveGeo)

	req := httptest.NewRequest("GET", "/v1/geo/30341", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp schema.Geo
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "13089", resp.CountyFIPS)
}

func TestDebugData(t *testing.T) {
	s, p, _, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	p.EXPECT().Ping().Return(nil).Times(1)
	p.EXPECT().ListRecentZips(7).Return([]string{"30341"}, nil).Times(1)
	p.EXPECT().ListLatestForZips([]string{"30341"}, schema.SignalWastewater).
		Return([]schema.SignalSnapshot{*snapshotAt(time.Now())}, nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/debug", s.debugData)

	req := httptest.NewRequest("GET", "/admin/debug", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		StorageOK        bool                        `json:"storage_ok"`
		RecentZips       []string                    `json:"recent_zips"`
		WastewaterLevels map[string]schema.RiskLevel `json:"wastewater_levels"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.StorageOK)
	assert.Equal(t, []string{"30341"}, resp.RecentZips)
	assert.Equal(t, schema.RiskModerate, resp.WastewaterLevels["30341"])
}

func TestExpireSnapshots(t *testing.T) {
	s, p, _, _, ctl := newSignalTestServer(t)
	defer ctl.Finish()

	p.EXPECT().ExpireSnapshots(gomock.Any()).Return(int64(42), nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/expire", s.expireSnapshots)

	req := httptest.NewRequest("POST", "/admin/expire?days=30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Expired int64 `json:"expired"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Expired)
}
