package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/config"
	"shipping-management/internal/domain/user"
	"shipping-management/pkg/utils"
)

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given the request id middleware", t, func() {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

		Convey("a sane inbound id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			rec := serve(r, req)
			So(rec.Body.String(), ShouldEqual, "abc-123")
			So(rec.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("an oversized or spaced id is replaced", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "has space")
			rec := serve(r, req)
			_, err := uuid.Parse(rec.Body.String())
			So(err, ShouldBeNil)

			req = httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
			rec = serve(r, req)
			So(len(rec.Body.String()), ShouldEqual, 36)
		})
	})
}

func TestRateLimiter(t *testing.T) {
	Convey("Given a limiter of one request per second without burst", t, func() {
		rl := NewRateLimiter(1, 1)
		now := time.Now()

		So(rl.Allow("10.0.0.1", now), ShouldBeTrue)
		So(rl.Allow("10.0.0.1", now), ShouldBeFalse)
		So(rl.Allow("10.0.0.2", now), ShouldBeTrue)
		So(rl.Allow("10.0.0.1", now.Add(time.Second)), ShouldBeTrue)

		Convey("idle clients are pruned", func() {
			rl.Prune(now.Add(limiterIdleTTL + 2*time.Second))
			So(rl.clients, ShouldBeEmpty)
		})
	})
}

func TestAuthAndRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given routes guarded by the dispatcher role", t, func() {
		cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-secret"}}
		r := gin.New()
		r.Use(AuthMiddleware(cfg), Dispatchers())
		r.POST("/send", func(c *gin.Context) {
			id, _ := CurrentUserID(c)
			c.String(http.StatusOK, id.String())
		})

		tokenFor := func(role user.Role) (uuid.UUID, string) {
			id := uuid.New()
			token, err := utils.GenerateToken(id, "someone@example.com", string(role), cfg.JWT.Secret, time.Hour)
			So(err, ShouldBeNil)
			return id, token
		}

		Convey("an operator passes and is identified", func() {
			id, token := tokenFor(user.RoleOperator)
			req := httptest.NewRequest(http.MethodPost, "/send", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := serve(r, req)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldEqual, id.String())
		})

		Convey("a salesperson is forbidden", func() {
			_, token := tokenFor(user.RoleSalesperson)
			req := httptest.NewRequest(http.MethodPost, "/send", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			So(serve(r, req).Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("a malformed header is unauthorized", func() {
			req := httptest.NewRequest(http.MethodPost, "/send", nil)
			req.Header.Set("Authorization", "Token abc")
			So(serve(r, req).Code, ShouldEqual, http.StatusUnauthorized)
		})
	})
}
