package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/domain/service"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const tokenTypeBearer = "Bearer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// Login checks the credentials outside any transaction (bcrypt is CPU-bound)
// and then stores the new session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	login := strings.TrimSpace(input.Login)

	user, err := srv.userRepo.FindByLogin(ctx, login)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed: unknown user", slog.String("login", login))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.String("login", login))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if !user.IsActive {
		srv.log(ctx).Warn("Login refused for inactive user", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrUserInactive, "login failed")
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		pair, err := srv.issueTokens(ctx, repoFactory.NewSessionRepository(), user)
		if err != nil {
			return err
		}

		now := srv.now()
		user.LastLoginAt = &now
		if err := repoFactory.NewUserRepository().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to stamp last login")
		}

		output = &usecase.AuthOutput{TokenPair: *pair, User: user}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

// RefreshToken rotates the session: the presented refresh token is revoked and a new pair issued.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil || claims.Type != service.TokenTypeRefresh {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions := repoFactory.NewSessionRepository()
		tokenHash := srv.tokenService.HashToken(input.RefreshToken)

		stored, err := sessions.FindByHash(ctx, tokenHash)
		if err != nil {
			return mapNotFound(err, repository.ErrSessionNotFound, domainerrors.ErrRefreshTokenInvalid, "")
		}
		if stored.IsExpired(srv.now()) || stored.UserID != claims.UserID {
			return domainerrors.ErrRefreshTokenInvalid
		}

		user, err := repoFactory.NewUserRepository().FindByID(ctx, claims.UserID)
		if err != nil {
			return mapNotFound(err, repository.ErrUserNotFound, domainerrors.ErrRefreshTokenInvalid, "")
		}
		if !user.IsActive {
			return domainerrors.ErrUserInactive
		}

		if err := sessions.Revoke(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to revoke rotated refresh token")
		}

		pair, err := srv.issueTokens(ctx, sessions, user)
		if err != nil {
			return err
		}
		output = &usecase.AuthOutput{TokenPair: *pair, User: user}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to refresh token")
	}

	return output, nil
}

// Logout revokes the session behind the refresh token. Unknown tokens are ignored.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	err := srv.sessionRepo.Revoke(ctx, tokenHash)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// PurgeExpiredSessions removes sessions whose refresh token has expired.
func (srv *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	purged, err := srv.sessionRepo.PurgeExpired(ctx, srv.now())
	if err != nil {
		return 0, err
	}
	srv.log(ctx).Info("Expired sessions purged", slog.Int64("count", purged))

	return purged, nil
}

func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*usecase.MeOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "")
	}

	permissions, err := srv.userRepo.FindPermissionNames(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load permissions")
	}

	return &usecase.MeOutput{
		User:        user,
		Roles:       user.RoleNames(),
		Permissions: permissions,
	}, nil
}

// PermissionNames fails with ErrUserInactive once the account is disabled or
// removed, so outstanding access tokens stop working before they expire.
func (srv *authService) PermissionNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserInactive
		}

		return nil, errors.Wrap(err, "failed to load user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	names, err := srv.userRepo.FindPermissionNames(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load permissions")
	}

	return names, nil
}

func (srv *authService) issueTokens(ctx context.Context, sessions repository.SessionRepository, user *entity.User) (*entity.TokenPair, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.RoleNames())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	now := srv.now()
	if err := sessions.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: now.Add(srv.tokenService.GetRefreshTokenDuration()),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresAt:    now.Add(srv.tokenService.GetAccessTokenDuration()),
	}, nil
}
