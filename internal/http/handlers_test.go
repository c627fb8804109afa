package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/domain"
	"github.com/AmirSohelSardar/mern-blog-backend/internal/repository"
	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

type mockUserRepo struct {
	usersByID     map[string]domain.User
	idsByEmail    map[string]string
	idsByUsername map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:     make(map[string]domain.User),
		idsByEmail:    make(map[string]string),
		idsByUsername: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if _, ok := m.idsByEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if _, ok := m.idsByUsername[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	m.usersByID[user.ID] = user
	m.idsByEmail[user.Email] = user.ID
	m.idsByUsername[user.Username] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.idsByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) Update(_ context.Context, id string, update repository.UserUpdate) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	if update.Username != nil {
		if other, ok := m.idsByUsername[*update.Username]; ok && other != id {
			return domain.User{}, repository.ErrDuplicateUsername
		}
		delete(m.idsByUsername, user.Username)
		user.Username = *update.Username
		m.idsByUsername[user.Username] = id
	}
	if update.Email != nil {
		if other, ok := m.idsByEmail[*update.Email]; ok && other != id {
			return domain.User{}, repository.ErrDuplicateEmail
		}
		delete(m.idsByEmail, user.Email)
		user.Email = *update.Email
		m.idsByEmail[user.Email] = id
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.AuthProvider != nil {
		user.AuthProvider = *update.AuthProvider
	}
	user.UpdatedAt = time.Now().UTC()
	m.usersByID[id] = user
	return user, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.usersByID, id)
	delete(m.idsByEmail, user.Email)
	delete(m.idsByUsername, user.Username)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, params repository.ListUsersParams) ([]domain.User, error) {
	var users []domain.User
	for _, u := range m.usersByID {
		users = append(users, u)
	}
	if params.Limit > 0 && len(users) > params.Limit {
		users = users[:params.Limit]
	}
	return users, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.usersByID)), nil
}

func (m *mockUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, u := range m.usersByID {
		if !u.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type testServer struct {
	router *gin.Engine
	repo   *mockUserRepo
	jwtSvc *service.JWTService
}

func newTestServer(environment string) *testServer {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	repo := newMockUserRepo()
	jwtSvc := service.NewJWTService("test-secret")
	userSvc := service.NewUserService(logger, repo, nil, "supabase.co/storage")
	authH := NewAuthHandler(logger, userSvc, jwtSvc, environment)
	userH := NewUserHandler(logger, userSvc)
	router := NewRouter(logger, jwtSvc, authH, userH, []string{"http://localhost:5173"})
	return &testServer{router: router, repo: repo, jwtSvc: jwtSvc}
}

func (s *testServer) seedUser(t *testing.T, user domain.User) {
	t.Helper()
	if err := s.repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func (s *testServer) tokenFor(t *testing.T, userID string, isAdmin bool) string {
	t.Helper()
	token, err := s.jwtSvc.Issue(userID, isAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}
