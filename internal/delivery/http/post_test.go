package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo/database"
	"posts-backend/internal/usecase/service"
	"posts-backend/pkg/connector"
	"posts-backend/pkg/goosehelper"
)

type fakeMediaHost struct {
	err error
}

func (f *fakeMediaHost) UploadFile(_ context.Context, file *entity.MediaFile) (*entity.MediaObject, error) {
	if _, err := io.Copy(io.Discard, file.Reader); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	name := uuid.New().String() + filepath.Ext(file.FileName)
	return &entity.MediaObject{URL: "http://media.local/posts-media/" + name, FileName: name}, nil
}

func (f *fakeMediaHost) DeleteFile(context.Context, string) error {
	return nil
}

type testServer struct {
	echo       *echo.Echo
	media      *fakeMediaHost
	stagingDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := connector.GetDatabaseConnector(context.Background(), connector.DriverSQLite, filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, goosehelper.MigrateUp(db.DB, connector.GooseDialect(connector.DriverSQLite), database.Migrations, database.MigrationsDir))

	media := &fakeMediaHost{}
	stagingDir := t.TempDir()
	postUseCase := service.NewPost(database.NewPost(db), media, nil, stagingDir, "")

	e := echo.New()
	NewPost(postUseCase).Configure(e.Group(""))
	return &testServer{echo: e, media: media, stagingDir: stagingDir}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func multipartRequest(t *testing.T, fileName, contentType, content, caption string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if caption != "" {
		require.NoError(t, writer.WriteField("caption", caption))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestUploadThenFeedAndDetail(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(multipartRequest(t, "clip.mp4", "video/mp4", "not really a video", "A caption"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[entity.Post](t, rec)
	assert.Equal(t, entity.FileTypeVideo, created.FileType)
	assert.Equal(t, "A caption", created.Caption)
	assert.NotEqual(t, uuid.Nil, created.ID)

	rec = server.do(multipartRequest(t, "photo.png", "image/png", "png", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	newest := decodeBody[entity.Post](t, rec)
	assert.Equal(t, entity.FileTypeImage, newest.FileType)
	assert.Equal(t, "", newest.Caption)

	rec = server.do(httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decodeBody[entity.PostList](t, rec)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, newest.ID, feed.Posts[0].ID)
	assert.Equal(t, created.ID, feed.Posts[1].ID)
	assert.Equal(t, "A caption", feed.Posts[1].Caption)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"id", "caption", "url", "file_type", "file_name", "created_at"} {
		assert.Contains(t, raw["posts"][0], key)
	}

	rec = server.do(httptest.NewRequest(http.MethodGet, "/feed?limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[entity.PostList](t, rec).Posts, 1)

	rec = server.do(httptest.NewRequest(http.MethodGet, "/feed/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody[entity.Post](t, rec)
	assert.Equal(t, entity.FileTypeVideo, detail.FileType)
	assert.Equal(t, "A caption", detail.Caption)

	entries, err := os.ReadDir(server.stagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadWithoutFile(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(multipartRequest(t, "", "", "", "caption only"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])
}

func TestUploadMediaHostFailure(t *testing.T) {
	server := newTestServer(t)
	server.media.err = errors.New("media host unreachable")

	rec := server.do(multipartRequest(t, "photo.jpg", "image/jpeg", "jpeg", ""))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], "media host unreachable")

	rec = server.do(httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[entity.PostList](t, rec).Posts)

	entries, err := os.ReadDir(server.stagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeedDetailNotFound(t *testing.T) {
	server := newTestServer(t)

	for _, id := range []string{uuid.New().String(), "42", "not-a-uuid"} {
		rec := server.do(httptest.NewRequest(http.MethodGet, "/feed/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func TestFeedInvalidLimit(t *testing.T) {
	server := newTestServer(t)

	for _, query := range []string{"limit=abc", "limit=-1"} {
		rec := server.do(httptest.NewRequest(http.MethodGet, "/feed?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestErrorStatus(t *testing.T) {
	cause := errors.New("cause")
	cases := map[error]int{
		fmt.Errorf("%w: %w", entity.ErrValidation, cause):  http.StatusBadRequest,
		fmt.Errorf("%w: %w", entity.ErrNotFound, cause):    http.StatusNotFound,
		fmt.Errorf("%w: %w", entity.ErrUpstream, cause):    http.StatusBadGateway,
		fmt.Errorf("%w: %w", entity.ErrPersistence, cause): http.StatusInternalServerError,
		cause: http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, errorStatus(err), err.Error())
	}
}
