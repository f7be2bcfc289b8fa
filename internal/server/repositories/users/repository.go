package users

import (
	"context"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) error

	// AddCompletedGame records a completion; re-recording the same game for
	// the same user is a no-op.
	AddCompletedGame(ctx context.Context, userID, gameID string) error
	ListCompletedGames(ctx context.Context, userID string) ([]string, error)
	DeleteCompletedGames(ctx context.Context, userID string) error
}
