package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalcast/internal/config"
	"goalcast/internal/forecast"
	"goalcast/internal/model"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := config.DefaultConfig()
	return New(cfg, forecast.New(cfg, nil), logger).Handler()
}

const sampleCSV = `date,amount,merchant,category,account
2025-01-01,3000,Acme,Salary,Checking
2025-01-02,-2000,Landlord,Rent,Checking
2025-01-10,-200,Cafe,Dining,Checking
2025-02-01,3000,Acme,Salary,Checking
2025-02-02,-1800,Landlord,Rent,Checking
2025-02-10,-200,Cafe,Dining,Checking
2025-03-01,3000,Acme,Salary,Checking
2025-03-02,-1600,Landlord,Rent,Checking
2025-03-10,-200,Cafe,Dining,Checking
`

// analyzeRequest builds the multipart request the frontend sends: a CSV
// file part plus a JSON goal form value.
func analyzeRequest(t *testing.T, csv string, goal model.Goal) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)

	goalJSON, err := json.Marshal(goal)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("goal", string(goalJSON)))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/forecast/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAnalyze_StructuredGoal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := analyzeRequest(t, sampleCSV, model.Goal{TargetAmount: 12000, MonthsToDeadline: 12})
	testHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result model.ForecastResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, model.StatusOnTrack, result.Status)
	assert.True(t, result.OnTrack)
	assert.Equal(t, 1000.0, result.RequiredMonthly)
	assert.Equal(t, 1000.0, result.P50)
	assert.NotNil(t, result.Suggestions)
}

func TestAnalyze_FreeTextGoal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := analyzeRequest(t, sampleCSV, model.Goal{FreeText: "Save $12,000 in 12 months"})
	testHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.ForecastResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.NotNil(t, result.ParsedTargetAmount)
	assert.Equal(t, 12000.0, *result.ParsedTargetAmount)
	require.NotNil(t, result.ParsedMonthsToDeadline)
	assert.Equal(t, 12, *result.ParsedMonthsToDeadline)
}

func TestAnalyze_UnresolvableGoalIs422(t *testing.T) {
	rec := httptest.NewRecorder()
	req := analyzeRequest(t, sampleCSV, model.Goal{FreeText: "save lots of money"})
	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "goal")
}

func TestAnalyze_BadCSVIs400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := analyzeRequest(t, "date,amount\n2025-01-01,oops\n", model.Goal{TargetAmount: 1000, MonthsToDeadline: 6})
	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_MissingPartsAre400(t *testing.T) {
	handler := testHandler(t)

	// Not multipart at all.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/forecast/analyze", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Multipart but no goal field.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(sampleCSV))
	require.NoError(t, mw.Close())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/forecast/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseGoal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/goal/parse",
		strings.NewReader(`{"text":"Save $5,000 in 10 months"}`))
	req.Header.Set("Content-Type", "application/json")
	testHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp parseGoalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5000.0, resp.TargetAmount)
	assert.Equal(t, 10, resp.MonthsToDeadline)
	assert.NotEmpty(t, resp.Deadline)
}

func TestParseGoal_Unparsable(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/goal/parse",
		strings.NewReader(`{"text":"no numbers here"}`))
	req.Header.Set("Content-Type", "application/json")
	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/forecast/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
