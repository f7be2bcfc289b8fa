package games

import (
	"context"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, game *models.Game) (*models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context) ([]*models.Game, error)
	Delete(ctx context.Context, id string) error
	UpdateIcon(ctx context.Context, id, icon string) error
}
