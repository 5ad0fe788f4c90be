package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/logger"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

// AuthService выдаёт и отзывает сессии администраторов дашборда.
type AuthService struct {
	profiles     repository.ProfileRepository
	sessions     repository.SessionRepository
	tokenManager *TokenManager
	events       repository.EventPublisher
	now          func() time.Time
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult итог входа.
type AuthResult struct {
	Profile   *entity.Profile
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации. events может быть nil.
func NewAuthService(
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	tokenManager *TokenManager,
	events repository.EventPublisher,
) *AuthService {
	return &AuthService{
		profiles:     profiles,
		sessions:     sessions,
		tokenManager: tokenManager,
		events:       events,
		now:          time.Now,
	}
}

// Login проверяет учётные данные. Войти может только активный администратор.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta map[string]string) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Password == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "пароль обязателен")
	}

	profile, err := s.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if profile.PasswordHash == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := checkDashboardAccess(profile); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"profile_id": profile.ID,
			"role":       profile.Role,
			"status":     profile.Status,
		}).Warn("auth service: вход без доступа к дашборду")
		return nil, err
	}

	pair, err := s.openSession(ctx, profile, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Profile: profile, TokenPair: pair}, nil
}

// Refresh меняет refresh токен на новую пару, старая сессия удаляется.
func (s *AuthService) Refresh(ctx context.Context, oldToken string, meta map[string]string) (*TokenPair, error) {
	if _, err := s.tokenManager.ParseRefresh(oldToken); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh токен невалиден")
	}

	session, err := s.sessions.FindByRefreshToken(ctx, oldToken)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.DeleteByRefreshToken(ctx, oldToken)
		return nil, apperror.ErrUnauthorized
	}

	profile, err := s.profiles.FindByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := checkDashboardAccess(profile); err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteByRefreshToken(ctx, oldToken); err != nil {
		return nil, err
	}

	return s.openSession(ctx, profile, meta)
}

// Logout удаляет сессию и сообщает об этом остальным вкладкам администратора.
func (s *AuthService) Logout(ctx context.Context, profileID uuid.UUID, refreshToken string) error {
	session, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if session.ProfileID != profileID {
		return apperror.ErrForbidden
	}

	if err := s.sessions.DeleteByRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	if s.events != nil {
		s.events.PublishTo(ctx, profileID, repository.EventSessionRevoked, map[string]interface{}{
			"session_id": session.ID,
		})
	}
	return nil
}

// Me возвращает текущего пользователя.
func (s *AuthService) Me(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error) {
	return s.profiles.FindByID(ctx, profileID)
}

// Authorize проверяет, что владелец токена всё ещё может работать с дашбордом:
// сессия не отозвана, профиль существует, это активный администратор.
// Токен без sid не привязан к сессии и не принимается.
func (s *AuthService) Authorize(ctx context.Context, claims *AccessClaims) (*entity.Profile, error) {
	if claims.SessionID == uuid.Nil {
		return nil, apperror.ErrUnauthorized
	}

	session, err := s.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if session.ProfileID != claims.ProfileID || session.Expired(s.now()) {
		return nil, apperror.ErrUnauthorized
	}

	profile, err := s.profiles.FindByID(ctx, claims.ProfileID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrForbidden
		}
		return nil, err
	}
	if err := checkDashboardAccess(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) openSession(ctx context.Context, profile *entity.Profile, meta map[string]string) (*TokenPair, error) {
	sessionID := uuid.New()
	pair, refreshExp, err := s.tokenManager.GeneratePair(profile, sessionID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}

	session := &entity.Session{
		ID:           sessionID,
		ProfileID:    profile.ID,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    refreshExp,
		CreatedAt:    s.now(),
	}
	if ua, ok := meta["user_agent"]; ok {
		session.UserAgent = &ua
	}
	if ip, ok := meta["ip"]; ok {
		session.IPAddress = &ip
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return pair, nil
}

func checkDashboardAccess(profile *entity.Profile) error {
	if profile.IsBlocked() {
		return apperror.ErrAccountBlocked
	}
	if !profile.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}
