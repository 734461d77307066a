package user

import (
	"net/http"
	"time"

	"github.com/andrefarias-dev/mensalista/config"
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/andrefarias-dev/mensalista/pkg/token"
	"github.com/andrefarias-dev/mensalista/utils"
	"github.com/gin-gonic/gin"
)

// UserController handles account registration and login.
type UserController struct {
	repo UserRepository
	cfg  *config.Config
}

// NewUserController creates a new user controller
func NewUserController(repo UserRepository, cfg *config.Config) *UserController {
	return &UserController{repo: repo, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary Register an account
// @Tags Users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=User}
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /users/register [post]
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := uc.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check email")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := User{Name: req.Name, Email: req.Email, Phone: req.Phone, Password: hash}
	if err := uc.repo.CreateUser(&u); err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Account created successfully", u)
}

// Login godoc
// @Summary Log in
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=TokenResponse}
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to load account")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	access, err := token.GenerateJWT(u.ID, uc.cfg.JWT.AccessTokenSecret, uc.cfg.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	refreshDays := uc.cfg.JWT.RefreshTokenExpiryDays
	refresh, err := token.GenerateJWT(u.ID, uc.cfg.JWT.RefreshTokenSecret, refreshDays*24*60)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue refresh token")
		return
	}
	rt := RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().AddDate(0, 0, refreshDays),
	}
	if err := uc.repo.SaveRefreshToken(&rt); err != nil {
		responses.InternalServerError(c, "Failed to store refresh token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in", TokenResponse{AccessToken: access, RefreshToken: refresh})
}

// Me godoc
// @Summary Current account
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) Me(c *gin.Context) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	u, err := uc.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load account")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", u)
}
