package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserRepo struct {
	users map[int64]*models.User
}

func (s *stubUserRepo) Create(context.Context, *models.User) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserRepo) EmailExists(context.Context, string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) GetAll(context.Context) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) SetBlocked(context.Context, int64, bool) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func newTestRouter(t *testing.T, users map[int64]*models.User) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "studyshelf.test",
	})
	m := NewAuthMiddleware(jwtService, &stubUserRepo{users: users})

	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	router.GET("/admin-only", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, jwtService
}

func TestJWTAuthMissingToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthBearerToken(t *testing.T) {
	user := &models.User{ID: 1, Name: "Ada", Role: models.RoleStudent}
	router, jwtService := newTestRouter(t, map[int64]*models.User{1: user})

	token, err := jwtService.GenerateToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":1`)
}

func TestJWTAuthCookieToken(t *testing.T) {
	user := &models.User{ID: 2, Name: "Tom", Role: models.RoleTeacher}
	router, jwtService := newTestRouter(t, map[int64]*models.User{2: user})

	token, err := jwtService.GenerateToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthBlockedAccount(t *testing.T) {
	user := &models.User{ID: 3, Name: "Mal", Role: models.RoleStudent, IsBlocked: true}
	router, jwtService := newTestRouter(t, map[int64]*models.User{3: user})

	token, err := jwtService.GenerateToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_006")
}

func TestJWTAuthDeletedAccount(t *testing.T) {
	// Token is valid but the account is gone
	user := &models.User{ID: 4, Name: "Ghost", Role: models.RoleStudent}
	router, jwtService := newTestRouter(t, map[int64]*models.User{})

	token, err := jwtService.GenerateToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	admin := &models.User{ID: 9, Name: "Root", Role: models.RoleAdmin}
	blocked := &models.User{ID: 10, Name: "Blk", Role: models.RoleStudent, IsBlocked: true}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "studyshelf.test",
	})
	m := NewAuthMiddleware(jwtService, &stubUserRepo{users: map[int64]*models.User{9: admin, 10: blocked}})

	router := gin.New()
	router.GET("/catalog", m.OptionalJWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": string(CurrentUserRole(c))})
	})

	// Anonymous requests pass through with no role
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/catalog", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)

	// A valid token populates the caller's role
	adminToken, err := jwtService.GenerateToken(admin)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	// A blocked account is treated as anonymous, not rejected
	blockedToken, err := jwtService.GenerateToken(blocked)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+blockedToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)
}

func TestRoleRequired(t *testing.T) {
	student := &models.User{ID: 5, Name: "Stu", Role: models.RoleStudent}
	admin := &models.User{ID: 6, Name: "Root", Role: models.RoleAdmin}
	router, jwtService := newTestRouter(t, map[int64]*models.User{5: student, 6: admin})

	studentToken, err := jwtService.GenerateToken(student)
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateToken(admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
