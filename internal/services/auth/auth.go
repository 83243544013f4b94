// Package auth содержит бизнес-логику сессий: регистрацию, вход,
// ротацию токенов, работу с профилем и удаление аккаунта.
//
// Известные и намеренно сохранённые пробелы реализации:
//   - Logout не отзывает refresh-токен (нет blacklist/версионирования),
//     токен остаётся валидным до естественного истечения;
//   - смена пароля не ротирует уже выданные токены.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	jwtlib "github.com/eklimchuk/assistant-marketplace/internal/lib/jwt"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/password"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/rabbitmq"
	"github.com/eklimchuk/assistant-marketplace/internal/lib/sl"

	"github.com/eklimchuk/assistant-marketplace/internal/errs"
	"github.com/eklimchuk/assistant-marketplace/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или errs.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByUID возвращает пользователя по uid или errs.ErrUserNotFound.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	// UpdateUserProfile применяет частичное обновление профиля.
	UpdateUserProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error)
	// UpdateUserPassword перезаписывает хэш пароля.
	UpdateUserPassword(ctx context.Context, uid, passwordHash string) error
	// DeleteUser удаляет пользователя с каскадом по зависимым записям.
	DeleteUser(ctx context.Context, uid string) error
}

// EventPublisher публикует доменные события для воркеров уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// TokenPair пара выпущенных токенов с временем жизни access-токена в секундах.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// RegisterInput данные регистрации нового пользователя.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Phone     *string
	Address   []byte
}

// Service реализует операции сессионного уровня.
type Service struct {
	users  UserRepository
	tokens jwtlib.Maker
	events EventPublisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, tokens jwtlib.Maker, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		events: events,
		log:    log,
	}
}

// userRegisteredEvent событие для очереди приветственных уведомлений.
type userRegisteredEvent struct {
	UserUID   string  `json:"user_uid"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
}

// Register создает нового пользователя с хэшированием пароля и
// дефолтным уровнем подписки free, выпускает пару токенов.
// Дубликат email — errs.ErrEmailTaken; гонка двух конкурентных
// регистраций разрешается уникальным ограничением хранилища.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	const op = "auth.Register"

	hash, err := password.GetHash(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:            input.Email,
		PasswordHash:     hash,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Phone:            input.Phone,
		Address:          input.Address,
		SubscriptionTier: models.TierFree,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issuePair(created)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.events.Publish(rabbitmq.RouteUserRegistered, userRegisteredEvent{
		UserUID:   created.UID,
		Email:     created.Email,
		FirstName: created.FirstName,
	}); err != nil {
		s.log.Warn("failed to publish user.registered event", sl.Err(err))
	}

	s.log.Info("registered new user", slog.String("uid", created.UID))
	return created, pair, nil
}

// Login проверяет пароль пользователя и выпускает пару токенов.
// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// чтобы не допускать перебор пользователей.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, *TokenPair, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, pair, nil
}

// Refresh проверяет refresh-токен и выпускает новую пару: ротируются
// оба токена. Любая ошибка верификации, как и исчезнувший из хранилища
// пользователь, дают одинаковую ошибку аутентификации — наружу не
// утекает, какой именно случай произошёл.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "auth.Refresh"

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}

	user, err := s.users.GetUserByUID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pair, nil
}

// GetProfile возвращает профиль пользователя по uid.
func (s *Service) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	const op = "auth.GetProfile"

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateProfile применяет частичное обновление: nil-поля не трогаются,
// не-nil поля (включая пустую строку) перезаписываются.
func (s *Service) UpdateProfile(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "auth.UpdateProfile"

	user, err := s.users.UpdateUserProfile(ctx, uid, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ChangePassword проверяет текущий пароль и перезаписывает хэш с той же
// стоимостью bcrypt. Ранее выданные токены не ротируются.
func (s *Service) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	const op = "auth.ChangePassword"

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return fmt.Errorf("%s: %w", op, errs.ErrWrongPassword)
	}

	newHash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserPassword(ctx, uid, newHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Logout подтверждает выход и пишет запись в аудит-лог. Refresh-токен
// на сервере не инвалидируется и остаётся валидным до истечения.
func (s *Service) Logout(_ context.Context, uid, refreshToken string) {
	preview := refreshToken
	if len(preview) > 20 {
		preview = preview[:20]
	}
	s.log.Info("user logged out",
		slog.String("uid", uid),
		slog.String("refresh_token_prefix", preview))
}

// DeleteAccount удаляет пользователя; заказы и отзывы удаляются
// каскадом в хранилище.
func (s *Service) DeleteAccount(ctx context.Context, uid string) error {
	const op = "auth.DeleteAccount"

	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("deleted user account", slog.String("uid", uid))
	return nil
}

// Authenticate проверяет access-токен и возвращает личность запроса.
// Ошибки парсинга пробрасываются как есть (jwt.ErrExpiredToken /
// jwt.ErrInvalidToken); валидный токен удалённого пользователя
// даёт errs.ErrUserGone.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.Identity, error) {
	const op = "auth.Authenticate"

	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrUserGone
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Identity{
		UID:              user.UID,
		Email:            user.Email,
		SubscriptionTier: user.SubscriptionTier,
	}, nil
}

// issuePair выпускает новую пару токенов для пользователя.
func (s *Service) issuePair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.UID, user.Email, user.SubscriptionTier)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.UID, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.ExpiresIn(),
	}, nil
}
