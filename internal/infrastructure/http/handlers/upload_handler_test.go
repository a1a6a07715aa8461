package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxFileBytes = 5 * 1024 * 1024

func newUploadHandler(media *fakeMediaStore) *UploadHandler {
	return NewUploadHandler(media, testMaxFileBytes, 5, zerolog.Nop())
}

// multipartBody builds a multipart form with one part per entry under the
// given field name.
func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for name, content := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadHandler_UploadPhoto(t *testing.T) {
	media := &fakeMediaStore{}
	handler := newUploadHandler(media)

	body, contentType := multipartBody(t, "photo", map[string][]byte{"pic.jpg": []byte("jpegdata")})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadPhoto(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["url"])
	assert.NotEmpty(t, data["publicId"])
	assert.Len(t, media.stored, 1)
}

func TestUploadHandler_UploadPhoto_Missing(t *testing.T) {
	handler := newUploadHandler(&fakeMediaStore{})

	body, contentType := multipartBody(t, "wrongfield", map[string][]byte{"pic.jpg": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_UploadPhoto_NotAnImage(t *testing.T) {
	handler := newUploadHandler(&fakeMediaStore{})

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="doc.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/photo", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Only image files are allowed", resp["error"])
}

func TestUploadHandler_UploadPhotos_Batch(t *testing.T) {
	media := &fakeMediaStore{}
	handler := newUploadHandler(media)

	body, contentType := multipartBody(t, "photos", map[string][]byte{
		"a.jpg": []byte("aaa"),
		"b.jpg": []byte("bbb"),
		"c.jpg": []byte("ccc"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadPhotos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["count"])
	assert.Len(t, resp["data"].([]interface{}), 3)
}

func TestUploadHandler_UploadPhotos_TooMany(t *testing.T) {
	media := &fakeMediaStore{}
	handler := newUploadHandler(media)

	files := map[string][]byte{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files[name+".jpg"] = []byte("x")
	}
	body, contentType := multipartBody(t, "photos", files)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.UploadPhotos(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Nothing relayed: the count check runs before any file is stored.
	assert.Empty(t, media.stored)
}

func TestUploadHandler_DeletePhoto(t *testing.T) {
	media := &fakeMediaStore{}
	handler := newUploadHandler(media)

	r := chi.NewRouter()
	r.Delete("/api/upload/photo/*", handler.DeletePhoto)

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/photo/photos/2026/09/01/abc123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, media.deleted, 1)
	assert.Equal(t, "photos/2026/09/01/abc123", media.deleted[0])
}
