// Package services contains server-side business logic, including the
// per-operation access-control rules. Services return sentinel errors from
// internal/common; the transport layer maps them onto the wire taxonomy.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/auth"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
)

// UserService provides identity operations:
//   - Register: create a user and issue a first token
//   - Login: verify credentials and mint a token
//   - Get/List: read access with password hashes stripped upstream
//   - Delete: self-service or admin removal
//   - CompleteGame: record a game completion for the acting user
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a non-admin user and returns it together with a fresh
// identity token. A duplicate email yields common.ErrorConflict and no second
// record.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials and, on success, returns a new identity
// token. A missing user and a wrong password are both reported as
// common.ErrorInvalidCredentials so an attacker cannot probe for registered
// emails.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByID returns the user with completions attached.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.CompletedGames, err = repo.ListCompletedGames(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// List returns all users with their completions attached.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)

	users, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.CompletedGames, err = repo.ListCompletedGames(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return users, nil
}

// Delete removes the target user. Allowed when the actor is the target
// (self-service) or the actor is an admin. A missing target is NotFound; a
// disallowed actor is Forbidden; the two are never conflated. The completion
// rows and the user row go away in one transaction.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if actorID != targetID {
		actor, err := repo.GetByID(ctx, actorID)
		if err != nil {
			// The acting identity vanished between token issuance and now.
			// Never a silent allow.
			return common.ErrorInternal
		}
		if !actor.IsAdmin {
			return common.ErrorForbidden
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		if err := repoTx.DeleteCompletedGames(ctx, targetID); err != nil {
			return err
		}
		return repoTx.Delete(ctx, targetID)
	})
}

// CompleteGame records that the acting user finished the given game. The
// game must exist; repeating the call leaves exactly one reference.
func (s *UserService) CompleteGame(ctx context.Context, userID, gameID string) error {
	if _, err := s.repomanager.Games(s.db).GetByID(ctx, gameID); err != nil {
		return err
	}

	return s.repomanager.Users(s.db).AddCompletedGame(ctx, userID, gameID)
}
