package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/statement-analyzer/constants"
	"github.com/joseph-ayodele/statement-analyzer/internal/entity"
	"github.com/joseph-ayodele/statement-analyzer/internal/extract"
	"github.com/joseph-ayodele/statement-analyzer/internal/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(ctx context.Context, data []byte, contentType, password string) (string, error) {
	return s.text, s.err
}

type stubModel struct {
	completion string
	err        error
}

func (s stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	return s.completion, s.err
}

func newRouter(e Extractor, m ModelClient) *gin.Engine {
	return NewRouter(NewService(e, m, nil))
}

// uploadRequest builds a multipart POST carrying a file part with an explicit
// content type, plus an optional password field.
func uploadRequest(t *testing.T, contentType string, data []byte, password string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="statement.bin"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	if password != "" {
		require.NoError(t, mw.WriteField("password", password))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-statement/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthCheck(t *testing.T) {
	r := newRouter(stubExtractor{}, stubModel{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Backend is running"}`, w.Body.String())
}

func TestAnalyzeStatementSuccess(t *testing.T) {
	completion := `[{"date":"2024-01-01","description":"Salary","amount":5000,"category":"Income"},` +
		`{"date":"2024-01-02","description":"Coffee","amount":-50,"category":"Dining Out"}]`
	r := newRouter(
		stubExtractor{text: "01-01-2024\tSalary\t\t5000\n02-01-2024\tCoffee\t50\t\n"},
		stubModel{completion: completion},
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), ""))

	require.Equal(t, http.StatusOK, w.Code)

	var got []entity.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []entity.Transaction{
		{Date: "2024-01-01", Description: "Salary", Amount: 5000, Category: "Income"},
		{Date: "2024-01-02", Description: "Coffee", Amount: -50, Category: "Dining Out"},
	}, got)
}

func TestAnalyzeStatementEmptyListIsArray(t *testing.T) {
	r := newRouter(stubExtractor{text: "header only"}, stubModel{completion: "[]"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestAnalyzeStatementUnsupportedType(t *testing.T) {
	// Real extractor so the content-type check is exercised end to end.
	r := newRouter(extract.NewExtractor(nil), stubModel{completion: "[]"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "image/png", []byte{0x89, 0x50}, ""))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "PDF")
}

func TestAnalyzeStatementBadPassword(t *testing.T) {
	r := newRouter(stubExtractor{err: extract.ErrInvalidPassword}, stubModel{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), "wrong"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeStatementTimeout(t *testing.T) {
	r := newRouter(
		stubExtractor{text: "rows"},
		stubModel{err: fmt.Errorf("calling model: %w", llm.ErrTimeout)},
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), ""))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestAnalyzeStatementUpstreamError(t *testing.T) {
	r := newRouter(
		stubExtractor{text: "rows"},
		stubModel{err: &llm.UpstreamError{StatusCode: 502, Body: "bad gateway"}},
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), ""))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "502")
}

func TestAnalyzeStatementUnparseableCompletion(t *testing.T) {
	r := newRouter(stubExtractor{text: "rows"}, stubModel{completion: "sorry, I cannot help"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, constants.ContentTypePDF, []byte("%PDF"), ""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalyzeStatementMissingFile(t *testing.T) {
	r := newRouter(stubExtractor{}, stubModel{})

	req := httptest.NewRequest(http.MethodPost, "/analyze-statement/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "file")
}
