package service

import (
	"errors"
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	MailSvc  *MailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, mailSvc *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		MailSvc:  mailSvc,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Username string         `json:"username" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     model.UserRole `json:"role" binding:"required,oneof=PARENT CHILD"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	// Verification token is a short-lived JWT carried in the mail link.
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err == nil && s.MailSvc != nil {
		s.MailSvc.SendVerificationMail(user, token)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// Verify resolves the token mailed at registration and marks the account
// verified.
func (s *AuthService) Verify(token string) error {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return util.ErrInvalidCredentials
	}
	return s.UserRepo.MarkVerified(claims.UserID)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
