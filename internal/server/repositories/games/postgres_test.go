package games

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleQuestions() []models.Question {
	return []models.Question{
		{
			Order:   1,
			Content: "Q1",
			Answers: []models.Answer{
				{Content: "A", Correct: true},
				{Content: "B", Correct: false},
			},
		},
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+games\s*\(title,\s*icon,\s*start_text,\s*end_text,\s*menu_order,\s*questions\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at\s*$`

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("g-1", created)
	mock.ExpectQuery(q).
		WithArgs("Quiz1", "", "", "", 0, []byte(`[{"order":1,"content":"Q1","answers":[{"content":"A","correct":true},{"content":"B","correct":false}]}]`)).
		WillReturnRows(rows)

	g := &models.Game{Title: "Quiz1", Questions: sampleQuestions()}
	got, err := repo.Create(context.Background(), g)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "g-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected game: %+v", got)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,.*FROM\s+games\s+WHERE\s+id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "title", "icon", "start_text", "end_text", "menu_order", "questions", "created_at"}).
		AddRow("g-1", "Quiz1", "icons/abc", "intro", "bye", 2,
			[]byte(`[{"order":1,"content":"Q1","answers":[{"content":"A","correct":true}]}]`), time.Now())
	mock.ExpectQuery(q).WithArgs("g-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "g-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "Quiz1" || got.Order != 2 {
		t.Fatalf("unexpected game: %+v", got)
	}
	if len(got.Questions) != 1 || len(got.Questions[0].Answers) != 1 || !got.Questions[0].Answers[0].Correct {
		t.Fatalf("questions not decoded: %+v", got.Questions)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*title,.*FROM\s+games\s+WHERE\s+id`).
		WithArgs("g-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "g-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_MalformedUUIDReadsAsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*title,.*FROM\s+games\s+WHERE\s+id`).
		WithArgs("oops").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.GetByID(context.Background(), "oops")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_OrderedByMenuOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "icon", "start_text", "end_text", "menu_order", "questions", "created_at"}).
		AddRow("g-1", "First", "", "", "", 1, []byte(`[]`), time.Now()).
		AddRow("g-2", "Second", "", "", "", 2, []byte(`[]`), time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*title,.*FROM\s+games\s+ORDER\s+BY\s+menu_order,\s*created_at`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "First" || got[1].Title != "Second" {
		t.Fatalf("unexpected games: %+v", got)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+games\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("g-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "g-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+games\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("g-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "g-404"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateIcon(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+games\s+SET\s+icon\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("g-1", "icons/2025/key").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateIcon(context.Background(), "g-1", "icons/2025/key"); err != nil {
		t.Fatalf("UpdateIcon error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+games`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Game{Title: "Quiz1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
