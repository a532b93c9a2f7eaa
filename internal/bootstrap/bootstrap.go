// Package bootstrap wires configuration, stores and services into an application shared by
// the API server and blogctl.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/anonto42/quillpost/pkg/config"
	"github.com/anonto42/quillpost/pkg/firebase"
	"gorm.io/gorm"
)

// Services is the service layer over one database.
type Services struct {
	Sessions     *services.SessionService
	Accounts     *services.AccountService
	Feed         *services.FeedService
	Posts        *services.PostService
	Interactions *services.InteractionService
}

// NewServices builds every service on top of db, the session store and the identity provider.
func NewServices(cfg *config.Config, db *gorm.DB, store repositories.SessionRepository, identity services.IdentityProvider) *Services {
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)

	sessions := services.NewSessionService(cfg.JWTSecret, cfg.SessionTTL, cfg.AuthCodeTTL, store,
		repositories.NewPostgresProfileRepository(db))
	feed := services.NewFeedService(postRepo, bookmarkRepo)
	return &Services{
		Sessions:     sessions,
		Accounts:     services.NewAccountService(db, identity, sessions),
		Feed:         feed,
		Posts:        services.NewPostService(postRepo, feed),
		Interactions: services.NewInteractionService(postRepo, likeRepo, bookmarkRepo, commentRepo, feed),
	}
}

// App owns the open connections.
type App struct {
	*Services
	Config *config.Config
	DB     *config.DB

	mongoSessions *repositories.MongoSessionRepository
}

// New connects to the stores, picks the identity provider and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	app := &App{Config: cfg, DB: db}

	var store repositories.SessionRepository
	if db.Mongo != nil {
		app.mongoSessions = repositories.NewMongoSessionRepository(db.Mongo.Database(cfg.MongoDatabase))
		store = app.mongoSessions
	} else {
		store = repositories.NewMemorySessionRepository()
	}

	identity, err := newIdentityProvider(ctx, cfg, db.Postgres)
	if err != nil {
		db.CloseDB()
		return nil, err
	}

	app.Services = NewServices(cfg, db.Postgres, store, identity)
	return app, nil
}

func newIdentityProvider(ctx context.Context, cfg *config.Config, db *gorm.DB) (services.IdentityProvider, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		log.Println("Using Firebase identity provider.")
		return services.NewFirebaseIdentityProvider(fb.AuthClient), nil
	case config.AuthProviderLocal:
		log.Println("Using local identity provider.")
		return services.NewLocalIdentityProvider(repositories.NewPostgresIdentityRepository(db), 0), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}
}

// Migrate brings the relational schema and the session indexes up to date.
func (a *App) Migrate(ctx context.Context) error {
	if err := repositories.AutoMigrate(a.DB.Postgres.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	if a.mongoSessions != nil {
		if err := a.mongoSessions.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create session indexes: %w", err)
		}
		log.Println("MongoDB session indexes ensured.")
	}
	return nil
}

func (a *App) Close() {
	a.DB.CloseDB()
}
