package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rediscache "github.com/phananhtu/authcore/internal/cache/redis"
	"github.com/phananhtu/authcore/internal/mocks"
	"github.com/phananhtu/authcore/internal/model"
	"github.com/phananhtu/authcore/internal/password"
	"github.com/phananhtu/authcore/internal/revocation"
	"github.com/phananhtu/authcore/internal/service"
	"github.com/phananhtu/authcore/internal/session"
	"github.com/phananhtu/authcore/internal/testutil"
)

type loginTestEnv struct {
	engine   *gin.Engine
	accounts *mocks.AccountStore
	ledger   *mocks.KeyTokenStore
	hasher   *password.Hasher
}

func newLoginTestEnv(t *testing.T) *loginTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := rediscache.NewCache(client)

	env := &loginTestEnv{
		accounts: new(mocks.AccountStore),
		ledger:   new(mocks.KeyTokenStore),
		hasher:   password.NewHasher("test-secret"),
	}

	tokens := new(mocks.TokenManager)
	tokens.On("IssueAccessToken", mock.AnythingOfType("string")).Return("access-token", nil)
	tokens.On("IssueRefreshToken", mock.AnythingOfType("string")).Return("refresh-token", nil)

	svc := service.NewAuth(
		env.accounts,
		env.ledger,
		session.NewCache(cache),
		revocation.NewRegistry(cache),
		tokens,
		env.hasher,
		time.Hour,
		testutil.MakeNoopLogger(),
	)

	h := NewAuth(svc, testutil.MakeNoopLogger())
	env.engine = gin.New()
	env.engine.POST("/auth/login", h.Login)
	return env
}

func (env *loginTestEnv) postLogin(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	return rec
}

func TestAuth_Login(t *testing.T) {
	t.Run("returns profile and token pair in envelope", func(t *testing.T) {
		env := newLoginTestEnv(t)

		salt, err := password.NewSalt()
		require.NoError(t, err)
		account := model.Account{
			ID:           uuid.New(),
			Number:       3,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: env.hasher.Hash("correct horse", salt),
			Salt:         salt,
			Status:       true,
		}
		env.accounts.On("GetByUsername", mock.Anything, "alice").Return(account, nil)
		env.ledger.On("CountByAccount", mock.Anything, account.ID).Return(0, nil)
		env.ledger.On("Insert", mock.Anything, account.ID, "refresh-token").Return(nil)

		rec := env.postLogin(`{"username":"alice","password":"correct horse"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			StatusCode int               `json:"statusCode"`
			Message    string            `json:"message"`
			Data       model.LoginOutput `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusOK, body.StatusCode)
		assert.Equal(t, "login success", body.Message)
		assert.Equal(t, "alice", body.Data.Username)
		assert.Equal(t, "access-token", body.Data.AccessToken)
		assert.Equal(t, "refresh-token", body.Data.RefreshToken)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		env := newLoginTestEnv(t)

		rec := env.postLogin(`{"username":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		env := newLoginTestEnv(t)

		rec := env.postLogin(`{"username":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password returns 401 envelope", func(t *testing.T) {
		env := newLoginTestEnv(t)

		salt, err := password.NewSalt()
		require.NoError(t, err)
		account := model.Account{
			ID:           uuid.New(),
			Username:     "alice",
			PasswordHash: env.hasher.Hash("correct horse", salt),
			Salt:         salt,
			Status:       true,
		}
		env.accounts.On("GetByUsername", mock.Anything, "alice").Return(account, nil)

		rec := env.postLogin(`{"username":"alice","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password")
	})

	t.Run("locked account returns 403 envelope", func(t *testing.T) {
		env := newLoginTestEnv(t)

		salt, err := password.NewSalt()
		require.NoError(t, err)
		account := model.Account{
			ID:           uuid.New(),
			Username:     "alice",
			PasswordHash: env.hasher.Hash("correct horse", salt),
			Salt:         salt,
			Status:       false,
		}
		env.accounts.On("GetByUsername", mock.Anything, "alice").Return(account, nil)

		rec := env.postLogin(`{"username":"alice","password":"correct horse"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Account is Locked")
	})

	t.Run("internal failures are not leaked", func(t *testing.T) {
		env := newLoginTestEnv(t)

		env.accounts.On("GetByUsername", mock.Anything, "alice").Return(model.Account{}, assert.AnError)

		rec := env.postLogin(`{"username":"alice","password":"correct horse"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal server error")
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health", Health)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Service is healthy"`)
}
