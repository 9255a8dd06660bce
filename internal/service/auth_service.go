package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/db"
	"github.com/grupohub/grupohub-backend/internal/email"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/sso"
	"github.com/grupohub/grupohub-backend/internal/types"
	pgx "github.com/jackc/pgx/v5"
)

const resetTokenTTL = time.Hour

// ============================================
// Auth Service
// ============================================

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*repository.User, string, error)
	Login(ctx context.Context, email, password string) (*repository.User, string, error)
	LoginWithSSO(ctx context.Context, code string) (*repository.User, string, error)
	Logout(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
	GetUserIDFromToken(token *jwt.Token) (string, error)
	CheckToken(ctx context.Context, token string) (*repository.ApiToken, error)
}

type authService struct {
	cfg      *config.Config
	tx       repository.TxManager
	userRepo repository.UserRepository
	typeRepo repository.TypeUserRepository
	repRepo  repository.RepresentativeRepository
	memRepo  repository.MemberRepository
	emailSvc *email.Service
	redis    *db.RedisDB
	ssoCli   *sso.Client
}

func NewAuthService(
	cfg *config.Config,
	tx repository.TxManager,
	userRepo repository.UserRepository,
	typeRepo repository.TypeUserRepository,
	repRepo repository.RepresentativeRepository,
	memRepo repository.MemberRepository,
	emailSvc *email.Service,
	redis *db.RedisDB,
	ssoCli *sso.Client,
) AuthService {
	return &authService{
		cfg:      cfg,
		tx:       tx,
		userRepo: userRepo,
		typeRepo: typeRepo,
		repRepo:  repRepo,
		memRepo:  memRepo,
		emailSvc: emailSvc,
		redis:    redis,
		ssoCli:   ssoCli,
	}
}

// Register creates a user. The role comes from any pending invitation
// matching the email: a representative contact wins over a member record;
// with neither, the requested role (or viewer) applies. A matching
// invitation record gets its user_id backfilled in the same transaction.
func (s *authService) Register(ctx context.Context, name, emailAddr, password, role string) (*repository.User, string, error) {
	existing, err := s.userRepo.FindByEmailAny(ctx, emailAddr)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	pendingRep, err := s.repRepo.FindPendingByEmail(ctx, emailAddr)
	if err != nil {
		return nil, "", err
	}
	var pendingMember *repository.Member
	if pendingRep == nil {
		pendingMember, err = s.memRepo.FindPendingByEmail(ctx, emailAddr)
		if err != nil {
			return nil, "", err
		}
	}

	roleName := types.RoleViewer
	switch {
	case pendingRep != nil:
		roleName = types.RoleRepresentative
	case pendingMember != nil:
		roleName = types.RoleViewer
	case types.IsValidRole(role):
		roleName = role
	}

	typeUser, err := s.typeRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, "", err
	}
	if typeUser == nil {
		return nil, "", fmt.Errorf("role %q is not provisioned", roleName)
	}

	user := &repository.User{
		Name:       name,
		Email:      emailAddr,
		Password:   string(hashed),
		TypeUserID: typeUser.ID,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if pendingRep != nil {
			if err := s.repRepo.LinkUserTx(ctx, tx, pendingRep.ID, user.ID); err != nil {
				return fmt.Errorf("failed to link representative: %w", err)
			}
		}
		if pendingMember != nil {
			if err := s.memRepo.LinkUserTx(ctx, tx, pendingMember.ID, user.ID); err != nil {
				return fmt.Errorf("failed to link member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	user.TypeUserName = typeUser.Name

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, emailAddr, password string) (*repository.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil || user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// LoginWithSSO exchanges an external authorization code, fetches the
// provider profile and upserts the local account.
func (s *authService) LoginWithSSO(ctx context.Context, code string) (*repository.User, string, error) {
	if s.ssoCli == nil || !s.ssoCli.Enabled() {
		return nil, "", ErrInvalidCredentials
	}

	providerToken, err := s.ssoCli.ExchangeCode(ctx, code)
	if err != nil {
		log.Printf("[Auth] SSO code exchange failed: %v", err)
		return nil, "", ErrInvalidCredentials
	}

	profile, err := s.ssoCli.FetchProfile(ctx, providerToken.AccessToken)
	if err != nil {
		log.Printf("[Auth] SSO profile fetch failed: %v", err)
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmailAny(ctx, profile.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		typeUser, err := s.typeRepo.FindByName(ctx, types.RoleViewer)
		if err != nil {
			return nil, "", err
		}
		if typeUser == nil {
			return nil, "", fmt.Errorf("role %q is not provisioned", types.RoleViewer)
		}
		// SSO accounts never authenticate with a local password.
		hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", err
		}
		user = &repository.User{
			Name:       profile.Name,
			Email:      profile.Email,
			Password:   string(hashed),
			TypeUserID: typeUser.ID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create SSO user: %w", err)
		}
		user.TypeUserName = typeUser.Name
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if s.redis != nil {
		if token, err := s.userRepo.FindApiTokenByUser(ctx, userID); err == nil && token != nil {
			if err := s.redis.DeleteToken(ctx, token.Token); err != nil {
				log.Printf("[Auth] Failed to evict cached token: %v", err)
			}
		}
	}
	return s.userRepo.DeleteApiTokenByUser(ctx, userID)
}

func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) (string, error) {
	const status = "If the email is registered, a reset link has been sent"

	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}
	if user == nil {
		// Same answer either way; the caller learns nothing about
		// which emails exist.
		return status, nil
	}

	if err := s.userRepo.DeletePasswordResetTokens(ctx, user.Email); err != nil {
		return "", err
	}

	reset := &repository.PasswordResetToken{
		Email: user.Email,
		Token: uuid.New().String(),
	}
	if err := s.userRepo.SavePasswordResetToken(ctx, reset); err != nil {
		return "", err
	}

	if s.emailSvc != nil {
		data := email.PasswordResetData{
			Name:     user.Name,
			ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, reset.Token),
		}
		if err := s.emailSvc.SendPasswordReset(user.Email, data); err != nil {
			log.Printf("[Auth] Failed to send reset email to %s: %v", user.Email, err)
		}
	}

	return status, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) (string, error) {
	reset, err := s.userRepo.FindPasswordResetToken(ctx, token)
	if err != nil {
		return "", err
	}
	if reset == nil || time.Since(reset.CreatedAt) > resetTokenTTL {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(ctx, reset.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return "", err
	}
	if err := s.userRepo.DeletePasswordResetTokens(ctx, user.Email); err != nil {
		return "", err
	}

	return "Password updated", nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *authService) GetUserIDFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// CheckToken verifies the api_tokens row behind a bearer token: absent or
// expired rows are unauthorized. Redis, when configured, fronts the lookup.
func (s *authService) CheckToken(ctx context.Context, tokenString string) (*repository.ApiToken, error) {
	if s.redis != nil {
		cached := &repository.ApiToken{}
		if err := s.redis.GetToken(ctx, tokenString, cached); err == nil {
			if time.Now().After(cached.ExpiresAt) {
				return nil, ErrInvalidToken
			}
			return cached, nil
		}
	}

	token, err := s.userRepo.FindApiToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	if s.redis != nil {
		ttl := time.Until(token.ExpiresAt)
		if err := s.redis.SetToken(ctx, tokenString, token, ttl); err != nil {
			log.Printf("[Auth] Failed to cache token: %v", err)
		}
	}
	return token, nil
}

func (s *authService) issueToken(ctx context.Context, userID string) (string, error) {
	expiresAt := time.Now().Add(time.Hour * time.Duration(s.cfg.JWTExpiry))

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	apiToken := &repository.ApiToken{
		UserID:    userID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := s.userRepo.SaveApiToken(ctx, apiToken); err != nil {
		return "", err
	}

	if s.redis != nil {
		if err := s.redis.SetToken(ctx, tokenString, apiToken, time.Until(expiresAt)); err != nil {
			log.Printf("[Auth] Failed to cache token: %v", err)
		}
	}
	return tokenString, nil
}
