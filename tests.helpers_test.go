package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogFilePath(t *testing.T) {
	ts := time.Date(2023, 7, 2, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "20230702.130405.prod.log"), CreateLogFilePath("logs", true, ts))
	assert.Equal(t, filepath.Join("logs", "20230702.130405.dev.log"), CreateLogFilePath("logs", false, ts))
}

// TestRSyncWrite ensures logs go to a new file once the max size is reached.
func TestRSyncWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	clock := NewMockClocker()
	w := NewRSyncWriter(&Config{LogFolder: dir, LogMaxSize: 1}, clock)
	defer w.Close()

	line := bytes.Repeat([]byte("x"), 700*1024)
	_, err := w.Write(line)
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	clock.MockNow = clock.MockNow.Add(time.Second)
	_, err = w.Write(line)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = w.Write(bytes.Repeat([]byte("x"), 2*1048576))
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	dir := t.TempDir()
	config := &Config{IsProduction: true, LogFolder: dir, LogMaxSize: 1, GitCommit: "abc"}
	clock := NewClock(true)
	w := NewRSyncWriter(config, clock)
	defer w.Close()

	logger, flusher := SetupLogging(config, w, clock)
	logger.Info("catalog ready")
	require.NoError(t, flusher())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"catalog ready"`)
	assert.Contains(t, string(data), `"app.commit":"abc"`)
}

func TestGetRequestSourceIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "10.0.0.1", GetRequestSourceIP(r))

	r.Header.Set("X-FORWARDED-FOR", "bad, 192.168.1.9")
	assert.Equal(t, "192.168.1.9", GetRequestSourceIP(r))

	r.Header.Set("X-REAL-IP", "172.16.0.4")
	assert.Equal(t, "172.16.0.4", GetRequestSourceIP(r))
}

func TestDecodeRequestBody(t *testing.T) {
	var author Author
	w := httptest.NewRecorder()

	err := DecodeRequestBody(w, httptest.NewRequest(http.MethodPost, "/authors", nil), &author)
	assert.ErrorIs(t, err, ErrEmptyBody)

	err = DecodeRequestBody(w, httptest.NewRequest(http.MethodPost, "/authors", strings.NewReader(`{"id":"a5","name":"Isabel Allende"}`)), &author)
	require.NoError(t, err)
	assert.Equal(t, Author{ID: "a5", Name: "Isabel Allende"}, author)
}

func TestWriteResponse_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	err := WriteResponse(ctx, w, GenericResponse("r:1", http.StatusOK, "ok", nil, EmptyData))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 499, w.Code)

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	w = httptest.NewRecorder()
	err = WriteErrorResponse(ctx, w, NewAPIError("r:1", http.StatusBadRequest, "bad", EmptyData))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestCustomResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewCustomResponseWriter(rec)
	n, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	cw.WriteHeader(http.StatusTeapot)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, cw.Status())
	assert.Equal(t, 5, cw.Bytes())
	assert.Equal(t, rec, cw.Unwrap())
}

func TestIDsHandler(t *testing.T) {
	ids := NewIDsHandler()
	a, b := ids.Generate(RequestIDPrefix), ids.Generate(RequestIDPrefix)
	assert.True(t, strings.HasPrefix(a, "r:"))
	assert.Len(t, a, len("r:")+36)
	assert.NotEqual(t, a, b)
}
