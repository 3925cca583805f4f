package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/jxeer/Harmonia/config"
	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/services/jwt"
	"github.com/jxeer/Harmonia/services/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(email, accessToken string) error
	GetUserProfile(userID string) (*models.User, error)
	GeneratePasswordResetToken(request *models.ForgotPassword) (string, *apiError.Error)
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	GetAllUsers() ([]models.User, error)
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiates an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.User, error) {
	if request == nil {
		return nil, errors.New("signup request is nil")
	}

	if err := models.ValidateWhiteSpaces(request); err != nil {
		log.Printf("SignupUser conform error: %v", err)
	}

	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	role := request.Role
	if role == "" {
		role = models.RolePatient
	}

	user := &models.User{
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Role:           role,
	}

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return user, nil
}

func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, a.Config.JWTSecret, foundUser.ID, foundUser.Role)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: foundUser.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authService) LogoutUser(email, accessToken string) error {
	blacklist := &models.Blacklist{
		Email: email,
		Token: accessToken,
	}
	return a.authRepo.AddToBlackList(blacklist)
}

func (a *authService) GetUserProfile(userID string) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GeneratePasswordResetToken verifies the account exists and returns a
// signed short-lived token for the reset link.
func (a *authService) GeneratePasswordResetToken(request *models.ForgotPassword) (string, *apiError.Error) {
	user, err := a.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apiError.New("no account found for that email", http.StatusNotFound)
		}
		return "", apiError.ErrInternalServerError
	}

	token, err := utils.GeneratePasswordResetToken(user.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return "", apiError.ErrInternalServerError
	}
	return token, nil
}

func (a *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	claims, err := utils.VerifyResetToken(token, a.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.UpdatePassword(hashed, claims.Email); err != nil {
		log.Printf("Error updating password: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetAllUsers() ([]models.User, error) {
	users, err := s.authRepo.GetAllUsers()
	if err != nil {
		log.Printf("Error fetching all users: %v", err)
		return nil, err
	}
	return users, nil
}
