// Command adminctl bootstraps an administrator account. Registration over
// HTTP always creates regular users, so a fresh deployment needs this tool
// once to get the first admin in place.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/quizhub/internal/server/auth"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter admin email")

	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}

	fmt.Print("Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	user, err := m.Users(db).Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Admin created, id=%s\n", user.ID)
	return nil
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
