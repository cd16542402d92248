package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type AuthHandler struct {
	users     domain.UserRepository
	jwtSecret string

	// resolves the e-mail domain; swapped in tests
	emailCheck func(email string) bool
}

func NewAuthHandler(users domain.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtSecret:  jwtSecret,
		emailCheck: validators.NewEmailDomainCheck(net.DefaultResolver, 3*time.Second),
	}
}

// WithEmailCheck replaces the DNS lookup on register.
func (h *AuthHandler) WithEmailCheck(fn func(email string) bool) *AuthHandler {
	h.emailCheck = fn
	return h
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "E-mail domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
	}

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.jwtSecret, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(status, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me returns the caller's account, including the coin balance.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), middleware.Session(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, user)
}
