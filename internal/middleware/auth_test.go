package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-portal-server/internal/config"
	"hospital-portal-server/internal/models"
	"hospital-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
)

func testRouter(cfg *config.Config, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role models.Role) string {
	t.Helper()
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: role}
	access, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens() = %v", err)
	}
	return access
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s1", JWTRefreshSecret: "s2", JWTExpirationMinutes: 15, JWTRefreshExpirationHours: 1}
	router := testRouter(cfg)

	t.Run("missing header", func(t *testing.T) {
		if w := request(router, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if w := request(router, "Token abc"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		if w := request(router, "Bearer not-a-real-token"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := request(router, "Bearer "+tokenFor(t, cfg, models.RolePatient))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
	})
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s1", JWTRefreshSecret: "s2", JWTExpirationMinutes: 15, JWTRefreshExpirationHours: 1}
	router := testRouter(cfg, models.RoleDoctor, models.RoleAdmin)

	t.Run("allowed role", func(t *testing.T) {
		w := request(router, "Bearer "+tokenFor(t, cfg, models.RoleDoctor))
		if w.Code != http.StatusOK {
			t.Errorf("doctor status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("other allowed role", func(t *testing.T) {
		w := request(router, "Bearer "+tokenFor(t, cfg, models.RoleAdmin))
		if w.Code != http.StatusOK {
			t.Errorf("admin status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("forbidden role", func(t *testing.T) {
		w := request(router, "Bearer "+tokenFor(t, cfg, models.RolePatient))
		if w.Code != http.StatusForbidden {
			t.Errorf("patient status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
