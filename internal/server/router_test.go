package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverybills/uploader/internal/bill"
	"github.com/deliverybills/uploader/internal/logging"
	"github.com/deliverybills/uploader/internal/storage"
)

func newTestServer(t *testing.T, store storage.Storage) *httptest.Server {
	t.Helper()
	log := logging.Discard()
	svc := bill.NewService(store, time.Second, log)
	srv := httptest.NewServer(NewRouter(bill.NewHandler(svc, 1<<20, log), log))
	t.Cleanup(srv.Close)
	return srv
}

func multipartBody(t *testing.T, locationID string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("location_id", locationID))
	fw, err := mw.CreateFormFile("file", "bill.jpg")
	require.NoError(t, err)
	_, err = fw.Write(file)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

func TestRouter_UploadRoutes(t *testing.T) {
	store := storage.NewMemoryStorage("uploaded-bills")
	srv := newTestServer(t, store)

	for _, path := range []string{"/api/UploadBill", "/api/v1/bills"} {
		t.Run(path, func(t *testing.T) {
			body, ct := multipartBody(t, "store7", []byte("img"))
			resp, err := http.Post(srv.URL+path, ct, body)
			require.NoError(t, err)

			text := readBody(t, resp)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Regexp(t, `^File uploaded successfully: store7_\d{8}_\d{6}\.jpg$`, text)
		})
	}

	objs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, objs)
}

func TestRouter_UnconfiguredStorage(t *testing.T) {
	store, err := storage.Open(context.Background(), "", "uploaded-bills", time.Second)
	require.ErrorIs(t, err, storage.ErrNotConfigured)
	srv := newTestServer(t, store)

	body, ct := multipartBody(t, "store7", []byte("img"))
	resp, err := http.Post(srv.URL+"/api/v1/bills", ct, body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "storage connection string is not set", readBody(t, resp))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage("uploaded-bills"))

	resp, err := http.Get(srv.URL + "/api/v1/bills")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage("uploaded-bills"))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
}
