package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/models"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &content.ValidationError{Msg: "YouTube URL is required"}, http.StatusBadRequest, "YouTube URL is required"},
		{"conflict", &content.ConflictError{Msg: "Category already exists"}, http.StatusBadRequest, "Category already exists"},
		{"not found", &content.NotFoundError{Resource: "Video", Key: "x"}, http.StatusNotFound, "Video not found"},
		{"unauthorized", &content.UnauthorizedError{}, http.StatusUnauthorized, "Unauthorized"},
		{"wrapped", fmt.Errorf("update: %w", &content.NotFoundError{Resource: "Video"}), http.StatusNotFound, "Video not found"},
		{"storage", errors.New("disk on fire"), http.StatusInternalServerError, "Failed to create video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			fail(rr, httptest.NewRequest(http.MethodPost, "/videos", nil), tt.err, "Failed to create video")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantMsg), rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "disk on fire")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("invalid body", func(t *testing.T) {
		var req categoryRequest
		err := decodeJSON(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &req)
		require.Error(t, err)
		assert.Equal(t, "Invalid JSON body", err.Error())
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("a", maxBodySize) + `"}`
		var req categoryRequest
		err := decodeJSON(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req)
		require.Error(t, err)
		assert.Equal(t, "Request body is too large", err.Error())
	})

	t.Run("validates tags", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("a", maxCategoryLen+1) + `"}`
		var req categoryRequest
		err := decodeJSON(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req)
		require.Error(t, err)
		assert.True(t, content.IsValidation(err))
		assert.Equal(t, "name is too long (max 200 characters)", err.Error())
	})
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"ok", &loginRequest{Username: "admin", Password: "pw", Code: "123456"}, ""},
		{"empty code ok", &loginRequest{Username: "admin", Password: "pw"}, ""},
		{"short code", &loginRequest{Code: "123"}, "code must be 6 characters"},
		{"required", &codeRequest{}, "code is required"},
		{"long password", &loginRequest{Password: strings.Repeat("p", 73)}, "password is too long (max 72 characters)"},
		{"nil pointer skipped", &videoRequest{}, ""},
		{"non-struct", &[]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestCheckPatchLen(t *testing.T) {
	assert.NoError(t, checkPatchLen(models.Field[string]{}, "title", 3))
	assert.NoError(t, checkPatchLen(models.Null[string](), "title", 3))
	assert.NoError(t, checkPatchLen(models.Set("abc"), "title", 3))
	assert.NoError(t, checkPatchLen(models.Set("ééé"), "title", 3))

	err := checkPatchLen(models.Set("abcd"), "title", 3)
	require.Error(t, err)
	assert.Equal(t, "title is too long (max 3 characters)", err.Error())
}

// fakeStore records uploads in memory.
type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Put(_ context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: %d != %d", len(data), size)
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) URL(key string) string { return "https://cdn.test/" + key }

func (f *fakeStore) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, "https://cdn.test/")
	return key, ok && key != ""
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	files := newFakeStore()
	u := NewUpload(files)
	u.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	u.Image(rr, multipartRequest(t, "file", "Red Dot.png", pngBytes(t)))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, files.objects, 1)
	for key := range files.objects {
		assert.True(t, strings.HasPrefix(key, "portfolio/2026/05/red-dot-"), key)
		assert.True(t, strings.HasSuffix(key, ".png"), key)
		assert.Equal(t, "image/png", files.types[key])
		assert.Contains(t, rr.Body.String(), `"url":"https://cdn.test/`+key+`"`)
	}
}

func TestUploadImageRejects(t *testing.T) {
	tests := []struct {
		name  string
		req   func(t *testing.T) *http.Request
		want  int
		error string
	}{
		{
			name:  "not multipart",
			req:   func(t *testing.T) *http.Request { return httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}")) },
			want:  http.StatusBadRequest,
			error: "Invalid multipart form",
		},
		{
			name:  "missing file field",
			req:   func(t *testing.T) *http.Request { return multipartRequest(t, "other", "a.png", pngBytes(t)) },
			want:  http.StatusBadRequest,
			error: "No file provided",
		},
		{
			name:  "not an image",
			req:   func(t *testing.T) *http.Request { return multipartRequest(t, "file", "a.png", []byte("plain text, not a picture")) },
			want:  http.StatusBadRequest,
			error: `File type "text/plain; charset=utf-8" is not allowed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newFakeStore()
			rr := httptest.NewRecorder()
			NewUpload(files).Image(rr, tt.req(t))

			assert.Equal(t, tt.want, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.error, body["error"])
			assert.Empty(t, files.objects)
		})
	}
}

func TestUploadStorageFailure(t *testing.T) {
	files := newFakeStore()
	files.putErr = errors.New("bucket gone")

	rr := httptest.NewRecorder()
	NewUpload(files).Image(rr, multipartRequest(t, "file", "a.png", pngBytes(t)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to upload file"}`, rr.Body.String())
}

func TestUploadWithoutStorage(t *testing.T) {
	rr := httptest.NewRecorder()
	NewUpload(nil).Image(rr, multipartRequest(t, "file", "a.png", pngBytes(t)))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRemoveStoredFile(t *testing.T) {
	files := newFakeStore()
	files.objects["portfolio/a.png"] = []byte("x")
	h := NewContent(nil, files)

	h.removeStoredFile(context.Background(), "https://elsewhere.test/portfolio/a.png")
	assert.Empty(t, files.deleted)

	h.removeStoredFile(context.Background(), "https://cdn.test/portfolio/a.png")
	assert.Equal(t, []string{"portfolio/a.png"}, files.deleted)

	NewContent(nil, nil).removeStoredFile(context.Background(), "https://cdn.test/x")
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(pinger{})(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	Health(pinger{err: errors.New("down")})(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
