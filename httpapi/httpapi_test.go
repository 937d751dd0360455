package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl-sre/semantico/engine"
	"github.com/nl-sre/semantico/internal/store"
)

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleDisambiguateReturnsDecision(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := disambiguateRequest{
		Words: []wordRequest{
			{Surface: "visite", Tags: []string{"verb"}},
			{Surface: "el", Tags: []string{"article"}},
			{Surface: "coliseo", Tags: []string{"noun"}},
			{Surface: "romano", Tags: []string{"adjective"}},
			{Surface: "en", Tags: []string{"preposition"}},
			{Surface: "smor"},
		},
		Target: 5,
	}

	rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp disambiguateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "roma", func() string {
		// Corrected sentence's last token is the resolved surface.
		return resp.Corrected[len(resp.Corrected)-len("roma"):]
	}())
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.Rationale)
}

func TestHandleDisambiguateEchoesSuppliedSessionIDAndTimestamp(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := disambiguateRequest{
		Words:     []wordRequest{{Surface: "smor"}},
		Target:    0,
		SessionID: "sess_caller",
		Timestamp: "2026-08-06T12:00:00Z",
	}

	rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp disambiguateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess_caller", resp.SessionID)
	assert.Equal(t, "2026-08-06T12:00:00Z", resp.Timestamp)
}

func TestHandleDisambiguateRejectsInvalidWeights(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := disambiguateRequest{
		Words:  []wordRequest{{Surface: "smor"}},
		Target: 0,
		Weights: &struct {
			Char    float64 `json:"char"`
			Grammar float64 `json:"grammar"`
			Context float64 `json:"context"`
		}{Char: 1, Grammar: 1, Context: 1},
	}

	rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDisambiguateRejectsUnknownTag(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := disambiguateRequest{
		Words:  []wordRequest{{Surface: "smor", Tags: []string{"not-a-real-tag"}}},
		Target: 0,
	}

	rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDisambiguateRejectsGET(t *testing.T) {
	s := NewServer(engine.NewDefault())
	req := httptest.NewRequest(http.MethodGet, "/v1/disambiguate", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleProcessAppliesCorrectionsAboveThreshold(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := processRequest{Text: "Te quiero mucho mi smor", MinConfidence: 0.70}
	rec := postJSON(t, s.Mux(), "/v1/process", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp processResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Te quiero mucho mi amor", resp.Corrected)
	require.Len(t, resp.Corrections, 1)
	assert.Equal(t, "smor", resp.Corrections[0].Original)
	assert.Equal(t, "amor", resp.Corrections[0].Corrected)
	assert.GreaterOrEqual(t, resp.Confidence, 0.70)
}

func TestHandleProcessLeavesTextUnchangedBelowThreshold(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := processRequest{Text: "Te quiero mucho mi smor", MinConfidence: 0.99}
	rec := postJSON(t, s.Mux(), "/v1/process", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp processResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Te quiero mucho mi smor", resp.Corrected)
	assert.Empty(t, resp.Corrections)
}

func TestHandleProcessRejectsGET(t *testing.T) {
	s := NewServer(engine.NewDefault())
	req := httptest.NewRequest(http.MethodGet, "/v1/process", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleGetDecisionRoundTrips(t *testing.T) {
	s := NewServer(engine.NewDefault())

	req := disambiguateRequest{
		Words:  []wordRequest{{Surface: "smor"}},
		Target: 0,
	}
	rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var created disambiguateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	getReq := httptest.NewRequest(http.MethodGet, "/v1/decisions/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	s.Mux().ServeHTTP(getRec, getReq)

	assert.Equal(t, http.StatusOK, getRec.Code)

	var record store.Record
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &record))
	assert.Equal(t, created.ID, record.ID)
	assert.Equal(t, created.SessionID, record.SessionID)
	assert.Equal(t, created.Corrected, record.Decision.Corrected)
}

func TestHandleGetDecisionUnknownIDReturns404(t *testing.T) {
	s := NewServer(engine.NewDefault())
	req := httptest.NewRequest(http.MethodGet, "/v1/decisions/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSessionDecisionsListsNewestFirst(t *testing.T) {
	s := NewServer(engine.NewDefault())

	for _, surface := range []string{"smor", "ramo"} {
		req := disambiguateRequest{
			Words:     []wordRequest{{Surface: surface}},
			Target:    0,
			SessionID: "sess_shared",
		}
		rec := postJSON(t, s.Mux(), "/v1/disambiguate", req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess_shared/decisions", nil)
	listRec := httptest.NewRecorder()
	s.Mux().ServeHTTP(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code)

	var records []store.Record
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "sess_shared", r.SessionID)
	}
	assert.Equal(t, "ramo", records[0].Decision.Original)
	assert.Equal(t, "smor", records[1].Decision.Original)
}

func TestHandleSessionDecisionsUnknownSessionReturnsEmptyList(t *testing.T) {
	s := NewServer(engine.NewDefault())
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/never-existed/decisions", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var records []store.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Empty(t, records)
}
