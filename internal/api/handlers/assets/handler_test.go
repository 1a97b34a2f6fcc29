package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/integrations/objectstorage"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStorage struct {
	objects  []objectstorage.Object
	uploaded map[string][]byte
	moved    [2]string
	removed  []string
	err      error
}

func (f *fakeStorage) List(context.Context, string, int, int) ([]objectstorage.Object, error) {
	return f.objects, f.err
}

func (f *fakeStorage) Upload(_ context.Context, p, _ string, body io.Reader) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(body)
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[p] = b
	return nil
}

func (f *fakeStorage) Move(_ context.Context, from, to string) error {
	f.moved = [2]string{from, to}
	return f.err
}

func (f *fakeStorage) Remove(_ context.Context, paths []string) error {
	f.removed = paths
	return f.err
}

func (f *fakeStorage) PublicURL(p string) string { return "https://cdn.test/" + p }

func TestList(t *testing.T) {
	id := "x"
	obj := objectstorage.Object{Name: "a.jpg", ID: &id}
	obj.Metadata.Size = 10
	st := &fakeStorage{objects: []objectstorage.Object{obj, {Name: "sub"}}}
	h := NewHandler(st, nopLogger{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/assets?prefix=campaigns/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data []AssetResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "campaigns/a.jpg", env.Data[0].Path)
	assert.Equal(t, "https://cdn.test/campaigns/a.jpg", env.Data[0].PublicURL)
	assert.True(t, env.Data[1].IsFolder)
}

func TestList_RejectsTraversal(t *testing.T) {
	h := NewHandler(&fakeStorage{}, nopLogger{})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/assets?prefix=../secret", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", "campaigns"))

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="Photo.PNG"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("pngdata"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	st := &fakeStorage{}
	h := NewHandler(st, nopLogger{})

	body, ct := multipartBody(t, "image/png")
	r := httptest.NewRequest(http.MethodPost, "/admin/assets", body)
	r.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, st.uploaded, 1)
	for p, data := range st.uploaded {
		assert.True(t, strings.HasPrefix(p, "campaigns/"))
		assert.True(t, strings.HasSuffix(p, ".png"))
		assert.Equal(t, []byte("pngdata"), data)
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	h := NewHandler(&fakeStorage{}, nopLogger{})

	body, ct := multipartBody(t, "application/pdf")
	r := httptest.NewRequest(http.MethodPost, "/admin/assets", body)
	r.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMoveAndDelete(t *testing.T) {
	st := &fakeStorage{}
	h := NewHandler(st, nopLogger{})

	rec := httptest.NewRecorder()
	h.Move(rec, httptest.NewRequest(http.MethodPost, "/admin/assets/move", strings.NewReader(`{"from":"/a/b.jpg","to":"c/b.jpg"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]string{"a/b.jpg", "c/b.jpg"}, st.moved)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/admin/assets", strings.NewReader(`{"paths":["a/b.jpg","c/d.jpg"]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a/b.jpg", "c/d.jpg"}, st.removed)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/admin/assets", strings.NewReader(`{"paths":["../x"]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageErrors(t *testing.T) {
	h := NewHandler(&fakeStorage{err: objectstorage.ErrNotFound}, nopLogger{})
	rec := httptest.NewRecorder()
	h.Move(rec, httptest.NewRequest(http.MethodPost, "/admin/assets/move", strings.NewReader(`{"from":"a.jpg","to":"b.jpg"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = NewHandler(&fakeStorage{err: objectstorage.ErrUnavailable}, nopLogger{})
	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/assets", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"details"`)
}
