package epidata_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvceed/pulse-api/external/epidata"
)

func TestFluView(t *testing.T) {
	wili := 2.31
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fluview/", r.URL.Path)
		assert.Equal(t, "il", r.URL.Query().Get("regions"))
		assert.Equal(t, "202610,202611,202612", r.URL.Query().Get("epiweeks"))

		resp := map[string]interface{}{
			"result": 1,
			"epidata": []map[string]interface{}{
				{"region": "il", "epiweek": 202610, "issue": 202612, "wili": wili},
			},
		}
		b, _ := json.Marshal(resp)
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	e := epidata.New(ts.Client(), ts.URL)
	rows, err := e.FluView("il", []int{202610, 202611, 202612})

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 202610, rows[0].Epiweek)
	assert.Equal(t, 202612, rows[0].Issue)
	assert.Equal(t, wili, *rows[0].WILI)
	assert.Nil(t, rows[0].ILI)
}

func TestFluViewResultNotOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		b, _ := json.Marshal(map[string]interface{}{"result": -2, "message": "no results"})
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	e := epidata.New(ts.Client(), ts.URL)
	_, err := e.FluView("il", []int{202601, 202602})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}

func TestFluViewClinical(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fluview_clinical/", r.URL.Path)

		resp := map[string]interface{}{
			"result": 1,
			"epidata": []map[string]interface{}{
				{"region": "il", "epiweek": 202610, "issue": 202611, "percent_positive": 12.5},
			},
		}
		b, _ := json.Marshal(resp)
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	e := epidata.New(ts.Client(), ts.URL)
	rows, err := e.FluViewClinical("il", []int{202610, 202611})

	assert.Nil(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 12.5, *rows[0].PercentPositive)
}
