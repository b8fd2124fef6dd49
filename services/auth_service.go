package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
	"github.com/nrj111/foodgram-backend/utils"
)

// AuthService implements registration and login for both principal kinds.
// The two flows are deliberately symmetric; only the field sets differ.
type AuthService struct {
	store  storage.Store
	secret string
	log    *logrus.Logger
}

func NewAuthService(store storage.Store, secret string, log *logrus.Logger) *AuthService {
	return &AuthService{store: store, secret: secret, log: log}
}

type RegisterUserInput struct {
	FullName string
	Email    string
	Password string
}

type RegisterPartnerInput struct {
	Name        string
	ContactName string
	Phone       string
	Address     string
	Email       string
	Password    string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) RegisterUser(ctx context.Context, in RegisterUserInput) (*models.User, string, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalizeEmail(in.Email)
	if fullName == "" || email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: fullName, email and password are required", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{FullName: fullName, Email: email, Password: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, models.ActorKindUser, s.secret)
	if err != nil {
		return nil, "", err
	}
	s.log.WithFields(logrus.Fields{"userId": user.ID}).Info("user registered")
	return user, token, nil
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, models.ActorKindUser, s.secret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) RegisterFoodPartner(ctx context.Context, in RegisterPartnerInput) (*models.FoodPartner, string, error) {
	name := strings.TrimSpace(in.Name)
	contactName := strings.TrimSpace(in.ContactName)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)
	email := normalizeEmail(in.Email)
	if name == "" || contactName == "" || phone == "" || address == "" || email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, contactName, phone, address, email and password are required", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	partner := &models.FoodPartner{
		Name:        name,
		ContactName: contactName,
		Phone:       phone,
		Address:     address,
		Email:       email,
		Password:    hash,
	}
	if err := s.store.CreateFoodPartner(ctx, partner); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(partner.ID, models.ActorKindPartner, s.secret)
	if err != nil {
		return nil, "", err
	}
	s.log.WithFields(logrus.Fields{"partnerId": partner.ID}).Info("food partner registered")
	return partner, token, nil
}

func (s *AuthService) LoginFoodPartner(ctx context.Context, email, password string) (*models.FoodPartner, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	partner, err := s.store.FoodPartnerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPasswordHash(password, partner.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(partner.ID, models.ActorKindPartner, s.secret)
	if err != nil {
		return nil, "", err
	}
	return partner, token, nil
}
