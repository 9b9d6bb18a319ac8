package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"finflock/apperr"
	"finflock/middleware"
	"finflock/models"
	"finflock/tokens"
	"finflock/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Same wording for an unknown email and a wrong password, so the
// endpoint cannot be used to probe which accounts exist.
const invalidCredentials = "Invalid email or password"

// Accounts is the read-only user lookup the login flow needs. Accounts
// are provisioned externally; nothing here writes.
type Accounts interface {
	ByEmail(ctx context.Context, email string) (models.User, error)
}

type mongoAccounts struct {
	users *mongo.Collection
}

func NewAccounts(users *mongo.Collection) Accounts {
	return &mongoAccounts{users: users}
}

func (a *mongoAccounts) ByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := a.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, apperr.ErrAuth
	}
	if err != nil {
		return user, fmt.Errorf("%w: user lookup: %v", apperr.ErrStorage, err)
	}
	return user, nil
}

type Handler struct {
	accounts Accounts
	secret   []byte
}

func NewHandler(accounts Accounts, secret []byte) *Handler {
	return &Handler{accounts: accounts, secret: secret}
}

// Login handles POST /api/auth/login. On success it issues a signed
// identity assertion and returns it with a sanitized profile.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.accounts.ByEmail(ctx, input.Email)
	if errors.Is(err, apperr.ErrAuth) {
		utils.RespondWithError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		log.Printf("[%s] login lookup: %v", middleware.RequestIDFromContext(ctx), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := tokens.Sign(&tokens.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
	}, h.secret)
	if err != nil {
		log.Printf("[%s] login sign: %v", middleware.RequestIDFromContext(ctx), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": token,
		"user": models.Profile{
			ID:      user.ID.Hex(),
			Name:    user.Name,
			Email:   user.Email,
			Address: user.Address,
		},
	})
}
