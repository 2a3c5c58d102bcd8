package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/config"
	dbpkg "github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/routes"
	"github.com/BruksfildServices01/shop-api/internal/storage"
)

var dbSeq atomic.Int64

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
	cfg       *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	dir := t.TempDir()
	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: dir,
	}

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, storage.NewLocal(dir), nil)

	return &testEnv{router: r, db: db, uploadDir: dir, cfg: cfg}
}

func (e *testEnv) token(t *testing.T, userID uint) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(e.cfg.JWTSecret))
	require.NoError(t, err)

	return token
}

func (e *testEnv) do(t *testing.T, method, url string, body []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doMultipart submits form fields plus optional "images" files.
func (e *testEnv) doMultipart(t *testing.T, method, url string, fields map[string]string, files map[string][]byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) uploadedFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
