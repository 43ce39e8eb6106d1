package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newTestService(t *testing.T, name string) *Service {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Upload{}))
	return NewService(NewRepository(db), t.TempDir(), "/static/uploads")
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestService_Upload_PNG(t *testing.T) {
	svc := newTestService(t, "upload_png")

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	u, err := svc.Upload(context.Background(), 7, makeFileHeader(t, "avatar.png", content))

	require.NoError(t, err)
	assert.Equal(t, int64(7), u.UserID)
	assert.Equal(t, "image/png", u.MimeType)
	assert.Equal(t, "avatar.png", u.OriginalName)
	assert.True(t, strings.HasPrefix(u.FileURL, "/static/uploads/"))

	// The file really landed on disk.
	_, err = os.Stat(filepath.Join(svc.baseDir, u.FilePath))
	assert.NoError(t, err)

	stored, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.FileURL, stored.FileURL)
}

func TestService_Upload_RejectsNonImage(t *testing.T) {
	svc := newTestService(t, "upload_text")

	_, err := svc.Upload(context.Background(), 7, makeFileHeader(t, "notes.txt", []byte("plain text content")))
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestService_Upload_RejectsEmptyFile(t *testing.T) {
	svc := newTestService(t, "upload_empty")

	_, err := svc.Upload(context.Background(), 7, makeFileHeader(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	svc := newTestService(t, "upload_delete")

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	u, err := svc.Upload(context.Background(), 7, makeFileHeader(t, "avatar.png", content))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), u.ID, 8), ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), u.ID, 7))
	_, err = os.Stat(filepath.Join(svc.baseDir, u.FilePath))
	assert.True(t, os.IsNotExist(err))

	_, err = svc.GetByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
