package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/internal/store"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uuid.UUID, jti string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newAuthTestRouter(t *testing.T, st *store.Store, rdb *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(st, rdb, testSecret)
	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func seedStoreUser(t *testing.T, st *store.Store, role model.Role) model.User {
	t.Helper()
	u := model.User{ID: uuid.New(), Username: "u-" + uuid.NewString()[:8], Role: role}
	if err := st.AppendUser(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestRequireAuth(t *testing.T) {
	st := store.New()
	user := seedStoreUser(t, st, model.RoleMedicalStudent)
	router := newAuthTestRouter(t, st, nil)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"valid bearer token", "Bearer " + signToken(t, testSecret, user.ID, "jti-1", time.Hour), "", http.StatusOK},
		{"token in query param", "", signToken(t, testSecret, user.ID, "jti-2", time.Hour), http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", user.ID, "jti-3", time.Hour), "", http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, testSecret, user.ID, "jti-4", -time.Minute), "", http.StatusUnauthorized},
		{"unknown subject", "Bearer " + signToken(t, testSecret, uuid.New(), "jti-5", time.Hour), "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/protected"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAuthRejectsRevokedToken(t *testing.T) {
	st := store.New()
	user := seedStoreUser(t, st, model.RoleMedicalStudent)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	router := newAuthTestRouter(t, st, rdb)

	token := signToken(t, testSecret, user.ID, "revoked-jti", time.Hour)
	if err := service.RevokeToken(context.Background(), rdb, "revoked-jti", time.Hour); err != nil {
		t.Fatalf("revoke token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	st := store.New()
	user := seedStoreUser(t, st, model.RoleMedicalStudent)
	router := newAuthTestRouter(t, st, nil)
	token := signToken(t, testSecret, user.ID, "jti-del", time.Hour)

	if err := st.RemoveUser(user.ID); err != nil {
		t.Fatalf("remove user: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	st := store.New()
	admin := seedStoreUser(t, st, model.RoleAdministrator)
	student := seedStoreUser(t, st, model.RoleMedicalStudent)
	router := newAuthTestRouter(t, st, nil)

	tests := []struct {
		name       string
		user       model.User
		wantStatus int
	}{
		{"administrator", admin, http.StatusOK},
		{"medical student", student, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, tt.user.ID, uuid.NewString(), time.Hour))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
