package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"out-of-office/internal/domain"
	"out-of-office/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"employee_id": c.GetString(middleware.ContextEmployeeID),
				"position":    c.GetString(middleware.ContextPosition),
			})
		})
		return r
	}

	validClaims := jwt.MapClaims{
		"employee_id": "emp-1",
		"position":    "HR Manager",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	t.Run("success - bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims))

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"position":"HR Manager"`)
	})

	t.Run("success - cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, testSecret, validClaims)})

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name  string
		token string
	}{
		{"negative - missing token", ""},
		{"negative - wrong secret", signToken(t, "other", validClaims)},
		{"negative - expired", signToken(t, testSecret, jwt.MapClaims{
			"employee_id": "emp-1",
			"position":    "Developer",
			"exp":         time.Now().Add(-time.Hour).Unix(),
		})},
		{"negative - no position", signToken(t, testSecret, jwt.MapClaims{"employee_id": "emp-1"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			newRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
		})
	}
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(enforcer *fakeEnforcer, authenticated bool) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if authenticated {
				c.Set(middleware.ContextEmployeeID, "emp-1")
				c.Set(middleware.ContextPosition, "Developer")
			}
		})
		r.POST("/approve", middleware.RBACAuthorize(enforcer, "approval", "decide"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/approve", nil))
		return w
	}

	t.Run("success - allowed", func(t *testing.T) {
		enforcer := &fakeEnforcer{allowed: true}

		w := run(enforcer, true)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{
			EmployeeID: "emp-1",
			Position:   "Developer",
			Resource:   "approval",
			Action:     "decide",
		}, enforcer.got)
	})

	t.Run("negative - forbidden", func(t *testing.T) {
		w := run(&fakeEnforcer{allowed: false}, true)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "approval:decide")
	})

	t.Run("negative - unauthenticated", func(t *testing.T) {
		w := run(&fakeEnforcer{allowed: true}, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative - enforcer error", func(t *testing.T) {
		w := run(&fakeEnforcer{err: errors.New("policy store down")}, true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeID, c.GetHeader("X-Employee"))
	})
	r.GET("/x", middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(employee string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Employee", employee)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"))
	assert.Equal(t, http.StatusOK, call(""))
	assert.Equal(t, http.StatusOK, call(""))
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		cacheKey = "idemp:/leave-requests:emp-1:key-1"
		lockKey  = cacheKey + ":lock"
	)

	build := func() (*gin.Engine, redismock.ClientMock, *int) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(middleware.ContextEmployeeID, "emp-1") })
		r.POST("/leave-requests", middleware.Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
		return r, mock, &calls
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("success - first request is stored", func(t *testing.T) {
		r, mock, calls := build()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `.*`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - replay skips the handler", func(t *testing.T) {
		r, mock, calls := build()
		stored, _ := json.Marshal(map[string]any{"status": http.StatusCreated, "body": []byte(`{"ok":true}`)})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(middleware.ReplayedHeader))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - in flight duplicate", func(t *testing.T) {
		r, mock, calls := build()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
	})
}
