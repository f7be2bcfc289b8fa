package games

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

const pgInvalidTextRep = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRep {
		return common.ErrorNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, game *models.Game) (*models.Game, error) {

	qs := game.Questions
	if qs == nil {
		qs = []models.Question{}
	}
	questions, err := json.Marshal(qs)
	if err != nil {
		return nil, fmt.Errorf("marshalling questions: %w", err)
	}

	query :=
		`INSERT INTO games (title, icon, start_text, end_text, menu_order, questions)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		game.Title, game.Icon, game.StartText, game.EndText, game.Order, questions).
		Scan(&game.ID, &game.CreatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return game, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query :=
		`SELECT id, title, icon, start_text, end_text, menu_order, questions, created_at FROM games
		 WHERE id = $1
		 `

	return scanGame(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Game, error) {
	query :=
		`SELECT id, title, icon, start_text, end_text, menu_order, questions, created_at FROM games
		 ORDER BY menu_order, created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, game)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM games
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

func (r *PostgresRepository) UpdateIcon(ctx context.Context, id, icon string) error {
	query :=
		`UPDATE games SET icon = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, icon)
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

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*models.Game, error) {
	game := &models.Game{}
	var questions []byte

	err := s.Scan(&game.ID, &game.Title, &game.Icon, &game.StartText, &game.EndText,
		&game.Order, &questions, &game.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}

	if err := json.Unmarshal(questions, &game.Questions); err != nil {
		return nil, fmt.Errorf("unmarshalling questions: %w", err)
	}

	return game, nil
}
