package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finflock/apperr"
	"finflock/models"
	"finflock/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("test-secret")

type memAccounts map[string]models.User

func (m memAccounts) ByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := m[email]
	if !ok {
		return models.User{}, apperr.ErrAuth
	}
	return user, nil
}

func login(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Login(w, r, nil)
	return w
}

func demoAccounts(t *testing.T) (memAccounts, models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Finflock Demo",
		Email:        "demo@finflock.app",
		PasswordHash: string(hash),
		Address:      models.Address{City: "Bengaluru", Pincode: "560001"},
	}
	return memAccounts{user.Email: user}, user
}

func TestLoginSuccess(t *testing.T) {
	accounts, user := demoAccounts(t)
	h := NewHandler(accounts, secret)

	w := login(t, h, `{"email":"demo@finflock.app","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := tokens.Verify(resp.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)

	assert.Equal(t, user.ID.Hex(), resp.User.ID)
	assert.Equal(t, "Bengaluru", resp.User.Address.City)
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}

func TestLoginMissingFields(t *testing.T) {
	accounts, _ := demoAccounts(t)
	h := NewHandler(accounts, secret)

	for _, body := range []string{
		`{}`,
		`{"email":"demo@finflock.app"}`,
		`{"password":"hunter22"}`,
		`not json`,
	} {
		w := login(t, h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

// Unknown accounts and wrong passwords must be indistinguishable.
func TestLoginFailuresDoNotEnumerateAccounts(t *testing.T) {
	accounts, _ := demoAccounts(t)
	h := NewHandler(accounts, secret)

	unknown := login(t, h, `{"email":"nobody@finflock.app","password":"hunter22"}`)
	wrongPassword := login(t, h, `{"email":"demo@finflock.app","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String())
}
