package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"chirpboard/internal/config"
	"chirpboard/internal/models"
	"chirpboard/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, userID, password string) (*models.Account, error)
	Login(ctx context.Context, userID, password string) (*models.Account, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.Account, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	cfg         *config.Config
}

func NewAuthService(accountRepo repository.AccountRepository, cfg *config.Config) AuthService {
	return &authService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, userID, password string) (*models.Account, error) {
	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	account := &models.Account{
		UserID:                 userID,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	err := s.accountRepo.CreateAccount(ctx, account, password)
	if err != nil {
		return nil, fmt.Errorf("could not register account: %w", err)
	}

	return account, nil
}

func (s *authService) Login(ctx context.Context, userID, password string) (*models.Account, string, string, error) {
	account, err := s.accountRepo.VerifyPassword(ctx, userID, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("authentication failed: %w", err)
	}

	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, "", "", fmt.Errorf("could not generate access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.accountRepo.UpdateRefreshToken(ctx, account.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("could not store refresh token: %w", err)
	}

	return account, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.Account, string, string, error) {
	account, err := s.accountRepo.GetAccountByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, "", "", fmt.Errorf("could not generate access token: %w", err)
	}

	newRefreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.accountRepo.UpdateRefreshToken(ctx, account.UserID, newRefreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("could not rotate refresh token: %w", err)
	}

	return account, accessToken, newRefreshToken, nil
}

func (s *authService) generateAccessToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"userId": account.UserID,
		"exp":    time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return token, nil
}
