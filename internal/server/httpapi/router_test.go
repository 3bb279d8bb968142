package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejani8980/job-app-tracker-backend/internal/common"
	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/blobstore"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/config"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/models"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.CreatedAt = time.Now()
	r.users[user.Email] = &u
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memEntityRepo struct {
	items map[string]json.RawMessage
	order []string
}

func memKey(owner, sortKey string) string { return owner + "|" + sortKey }

func (r *memEntityRepo) Put(_ context.Context, e *models.Entity) error {
	k := memKey(e.OwnerEmail, e.SortKey)
	if _, ok := r.items[k]; !ok {
		r.order = append(r.order, k)
	}
	r.items[k] = e.Attrs
	return nil
}

func (r *memEntityRepo) Get(_ context.Context, owner, sortKey string) (*models.Entity, error) {
	attrs, ok := r.items[memKey(owner, sortKey)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Entity{OwnerEmail: owner, SortKey: sortKey, Attrs: attrs}, nil
}

func (r *memEntityRepo) QueryPrefix(_ context.Context, owner, prefix string) ([]*models.Entity, error) {
	var out []*models.Entity
	for _, k := range r.order {
		ownerPart, sortKey, _ := strings.Cut(k, "|")
		if ownerPart != owner || !strings.HasPrefix(sortKey, prefix) {
			continue
		}
		if attrs, ok := r.items[k]; ok {
			out = append(out, &models.Entity{OwnerEmail: owner, SortKey: sortKey, Attrs: attrs})
		}
	}
	return out, nil
}

func (r *memEntityRepo) Update(_ context.Context, owner, sortKey string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	k := memKey(owner, sortKey)
	attrs, ok := r.items[k]
	if !ok {
		return nil
	}
	merged := map[string]any{}
	if err := json.Unmarshal(attrs, &merged); err != nil {
		return err
	}
	for f, v := range fields {
		merged[f] = v
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	r.items[k] = b
	return nil
}

func (r *memEntityRepo) Delete(_ context.Context, owner, sortKey string) error {
	delete(r.items, memKey(owner, sortKey))
	return nil
}

func (r *memEntityRepo) DeleteAll(ctx context.Context, owner string, sortKeys []string) error {
	for _, sortKey := range sortKeys {
		if err := r.Delete(ctx, owner, sortKey); err != nil {
			return err
		}
	}
	return nil
}

type memBlobStore struct {
	stored map[string]string
}

func (b *memBlobStore) Store(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.stored[key] = string(data)
	return "https://signed.example/" + key, nil
}

func (b *memBlobStore) Fetch(_ context.Context, key string) (*blobstore.Download, error) {
	content, ok := b.stored[key]
	if !ok {
		return nil, fmt.Errorf("%w: no such key", common.ErrorBlobBackend)
	}
	return &blobstore.Download{
		Body:          io.NopCloser(strings.NewReader(content)),
		ContentLength: int64(len(content)),
		ContentType:   "application/pdf",
	}, nil
}

func (b *memBlobStore) Delete(_ context.Context, key string) error {
	delete(b.stored, key)
	return nil
}

func newTestRouter() *gin.Engine {
	cfg := &config.Config{JWTSecret: "test-secret", TokenValidityDuration: time.Hour}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	userSvc := services.NewUserService(&memUserRepo{users: map[string]*models.User{}}, cfg)
	appSvc := services.NewApplicationService(
		&memEntityRepo{items: map[string]json.RawMessage{}},
		&memBlobStore{stored: map[string]string{}},
	)

	return NewRouter(cfg, log, userSvc, appSvc)
}

func doJSON(r *gin.Engine, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, r *gin.Engine, method, target, token, field string, files map[string]string, form map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range form {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret1",
		"firstName": "Test", "lastName": "User", "phoneNumber": "+12025550101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

func createApplication(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()
	w := doMultipart(t, r, http.MethodPost, "/api/applications", token,
		"file", map[string]string{"resume.pdf": "cv"},
		map[string]string{"jobTitle": "Go Developer", "companyName": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decodeBody(t, w)["application"].(map[string]any)
	return app["applicationId"].(string)
}

func TestRegister_InvalidBody(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad email", gin.H{"email": "not-an-email", "password": "secret1", "firstName": "A", "lastName": "B", "phoneNumber": "+12025550101"}},
		{"short password", gin.H{"email": "a@x.com", "password": "12345", "firstName": "A", "lastName": "B", "phoneNumber": "+12025550101"}},
		{"missing first name", gin.H{"email": "a@x.com", "password": "secret1", "lastName": "B", "phoneNumber": "+12025550101"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_InvalidPhoneNumber(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1",
		"firstName": "A", "lastName": "B", "phoneNumber": "not-a-phone",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid phone number", decodeBody(t, w)["error"])
}

func TestRegister_Duplicate(t *testing.T) {
	r := newTestRouter()
	registerAndLogin(t, r, "alice@x.com")

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "alice@x.com", "password": "secret1",
		"firstName": "A", "lastName": "B", "phoneNumber": "+12025550101",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter()
	registerAndLogin(t, r, "alice@x.com")

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@x.com", "password": "wrong-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
}

func TestProtectedRoutes_MissingToken(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication token is missing. Please log in to access this resource.", decodeBody(t, w)["error"])
}

func TestProtectedRoutes_InvalidToken(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/applications", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired token. Please log in again.", decodeBody(t, w)["error"])
}

func TestCreateApplication_Success(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")

	w := doMultipart(t, r, http.MethodPost, "/api/applications", token,
		"file", map[string]string{"resume.pdf": "cv"},
		map[string]string{"jobTitle": "Go Developer", "companyName": "Acme", "status": "Applied"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Application created successfully", body["message"])
	app := body["application"].(map[string]any)
	assert.Equal(t, "Go Developer", app["jobTitle"])
	assert.Equal(t, "alice@x.com", app["userEmail"])
	assert.NotEmpty(t, app["resumeUrl"])
}

func TestCreateApplication_NoFile(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")

	w := doMultipart(t, r, http.MethodPost, "/api/applications", token,
		"file", nil, map[string]string{"jobTitle": "Go Developer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file provided", decodeBody(t, w)["error"])
}

func TestGetApplication_ForeignOwner(t *testing.T) {
	r := newTestRouter()
	bobToken := registerAndLogin(t, r, "bob@x.com")
	appID := createApplication(t, r, bobToken)

	aliceToken := registerAndLogin(t, r, "alice@x.com")
	w := doJSON(r, http.MethodGet, "/api/applications/"+appID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Application not found", decodeBody(t, w)["error"])
}

func TestUpdateApplication_Partial(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doJSON(r, http.MethodPut, "/api/applications/"+appID, token, gin.H{"status": "Interviewing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/applications/"+appID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	app := decodeBody(t, w)["application"].(map[string]any)
	assert.Equal(t, "Interviewing", app["status"])
	assert.Equal(t, "Go Developer", app["jobTitle"])
}

func TestDeleteApplication(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doJSON(r, http.MethodDelete, "/api/applications/"+appID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Application deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/api/applications/"+appID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/applications/"+appID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownload_MissingFileKey(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")

	w := doJSON(r, http.MethodGet, "/api/applications/download", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing fileKey query parameter", decodeBody(t, w)["error"])
}

func TestDownload_ForeignKey(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")

	w := doJSON(r, http.MethodGet, "/api/applications/download?fileKey=bob%40x.com%2F123-resume.pdf", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decodeBody(t, w)["error"])
}

func TestDownload_OwnKey(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doJSON(r, http.MethodGet, "/api/applications/"+appID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	app := decodeBody(t, w)["application"].(map[string]any)
	fileKey := app["resumeS3Key"].(string)

	w = doJSON(r, http.MethodGet, "/api/applications/download?fileKey="+strings.ReplaceAll(fileKey, "/", "%2F"), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cv", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestAddDocuments_NoFiles(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doMultipart(t, r, http.MethodPost, "/api/applications/"+appID+"/documents", token,
		"files", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No files provided", decodeBody(t, w)["error"])
}

func TestAddAndListDocuments(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doMultipart(t, r, http.MethodPost, "/api/applications/"+appID+"/documents", token,
		"files", map[string]string{"cover.pdf": "cover", "refs.pdf": "refs"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Supporting documents added", decodeBody(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/api/applications/"+appID+"/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decodeBody(t, w)["supportingDocuments"].([]any)
	assert.Len(t, docs, 2)
}

func TestDeleteDocument(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doMultipart(t, r, http.MethodPost, "/api/applications/"+appID+"/documents", token,
		"files", map[string]string{"cover.pdf": "cover"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	doc := decodeBody(t, w)["documents"].([]any)[0].(map[string]any)

	w = doJSON(r, http.MethodDelete, "/api/applications/"+appID+"/documents/"+doc["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Supporting document deleted", decodeBody(t, w)["message"])
}

func TestAddNote_MissingTitle(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doJSON(r, http.MethodPost, "/api/applications/"+appID+"/notes", token, gin.H{"description": "Call recruiter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and description are required", decodeBody(t, w)["error"])
}

func TestNoteLifecycle(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "alice@x.com")
	appID := createApplication(t, r, token)

	w := doJSON(r, http.MethodPost, "/api/applications/"+appID+"/notes", token,
		gin.H{"title": "Follow up", "description": "Call recruiter"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	note := decodeBody(t, w)["note"].(map[string]any)
	assert.Equal(t, "other", note["type"])
	noteID := note["id"].(string)

	w = doJSON(r, http.MethodPut, "/api/applications/"+appID+"/notes/"+noteID, token, gin.H{"title": "Second follow up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody(t, w)["note"].(map[string]any)
	assert.Equal(t, "Second follow up", updated["title"])
	assert.Equal(t, "Call recruiter", updated["description"])

	w = doJSON(r, http.MethodDelete, "/api/applications/"+appID+"/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note deleted", decodeBody(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/api/applications/"+appID+"/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["notes"])
}
