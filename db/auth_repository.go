package db

import (
	"strings"

	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error
	MarkUserOnboarded(userID, role string) error
	UpsertUserImage(userID, imageURL, thumbnailURL string) error
	UpdatePassword(password string, email string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	GetAllUsers() ([]models.User, error)
	CountUsers() (int64, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("id = ?", id).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) MarkUserOnboarded(userID, role string) error {
	return a.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"is_onboarded": true, "role": role}).Error
}

func (a *authRepo) UpsertUserImage(userID, imageURL, thumbnailURL string) error {
	result := a.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"profile_image_url": imageURL,
			"thumb_nail_url":    thumbnailURL,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user image")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	return a.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("hashed_password", password).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	blacklist.Token = normalizeToken(blacklist.Token)
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", normalizeToken(token)).Count(&count)
	return count > 0
}

func normalizeToken(token string) string {
	return strings.TrimSpace(token)
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "could not list users")
	}
	return users, nil
}

func (a *authRepo) CountUsers() (int64, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}
