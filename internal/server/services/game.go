package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/quizhub/internal/common"
	sc "github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
)

// Seams for testing the AWS SDK calls.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// GameService owns the quiz catalogue. Creation and deletion are admin-only;
// reads are open to any caller the transport lets through. Icons live in an
// S3-compatible bucket and move via presigned URLs, the server never proxies
// the bytes.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *GameService {
	return &GameService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// requireAdmin loads the acting user and checks the admin flag. A failed
// load of the acting id is an internal error, never a silent allow.
func (s *GameService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.repomanager.Users(s.db).GetByID(ctx, actorID)
	if err != nil {
		return common.ErrorInternal
	}
	if !actor.IsAdmin {
		return common.ErrorForbidden
	}
	return nil
}

// Create inserts a new game. Admin-only; a rejected attempt never touches
// the games table.
func (s *GameService) Create(ctx context.Context, actorID string, game *models.Game) (*models.Game, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Games(s.db).Create(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("error creating game: %w", err)
	}
	return created, nil
}

// GetByID fetches a single game.
func (s *GameService) GetByID(ctx context.Context, id string) (*models.Game, error) {
	return s.repomanager.Games(s.db).GetByID(ctx, id)
}

// List returns all games in menu order.
func (s *GameService) List(ctx context.Context) ([]*models.Game, error) {
	return s.repomanager.Games(s.db).List(ctx)
}

// Delete removes a game. The target is loaded first so a missing game reads
// as NotFound even for admins; a non-admin acting on an existing game reads
// as Forbidden.
func (s *GameService) Delete(ctx context.Context, actorID, id string) error {
	repo := s.repomanager.Games(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	return repo.Delete(ctx, id)
}

func iconStorageKey(gameID string) string {
	d := time.Now()
	return fmt.Sprintf("icons/%d/%d/%s/%v", d.Year(), d.Month(), gameID, uuid.New())
}

func (s *GameService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// IconUploadURL returns a presigned PUT URL for the game's icon and records
// the object key on the game row. Admin-only; the game must exist.
func (s *GameService) IconUploadURL(ctx context.Context, actorID, gameID string) (string, error) {
	repo := s.repomanager.Games(s.db)

	if _, err := repo.GetByID(ctx, gameID); err != nil {
		return "", err
	}

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := iconStorageKey(gameID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := repo.UpdateIcon(ctx, gameID, key); err != nil {
		return "", err
	}

	return req.URL, nil
}

// IconDownloadURL resolves the stored icon key into a presigned GET URL.
// Games without an icon yield NotFound.
func (s *GameService) IconDownloadURL(ctx context.Context, gameID string) (string, error) {
	game, err := s.repomanager.Games(s.db).GetByID(ctx, gameID)
	if err != nil {
		return "", err
	}
	if game.Icon == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &game.Icon,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
