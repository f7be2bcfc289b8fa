package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

// Postgres error codes we translate into sentinels.
const (
	pgUniqueViolation = "23505"
	pgInvalidTextRep  = "22P02"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// translate maps driver errors onto the shared taxonomy. A malformed uuid in
// a lookup reads as "no such row", not as a server fault.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return common.ErrorConflict
		case pgInvalidTextRep:
			return common.ErrorNotFound
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, is_admin)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, is_admin, created_at FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, is_admin, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, email, password_hash, is_admin, created_at FROM users
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, translate(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	return users, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM users
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translate(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) AddCompletedGame(ctx context.Context, userID, gameID string) error {
	// The unique constraint makes re-completion a no-op instead of a
	// duplicate reference.
	query :=
		`INSERT INTO completed_games (user_id, game_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, game_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, gameID); err != nil {
		return translate(err)
	}

	return nil
}

func (r *PostgresRepository) ListCompletedGames(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT game_id FROM completed_games
		 WHERE user_id = $1
		 ORDER BY completed_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var gameIDs []string
	for rows.Next() {
		var gameID string
		if err := rows.Scan(&gameID); err != nil {
			return nil, translate(err)
		}
		gameIDs = append(gameIDs, gameID)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	return gameIDs, nil
}

func (r *PostgresRepository) DeleteCompletedGames(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM completed_games
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return translate(err)
	}

	return nil
}
