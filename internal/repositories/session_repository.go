package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anonto42/quillpost/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepository keeps sign-out revocations and one-time auth codes.
type SessionRepository interface {
	RevokeSession(ctx context.Context, revoked *models.RevokedSession) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
	CreateAuthCode(ctx context.Context, code *models.AuthCode) error
	ConsumeAuthCode(ctx context.Context, code string) (*models.AuthCode, error)
	DeleteAuthCodesByUser(ctx context.Context, userID string) error
}

// MongoSessionRepository implements SessionRepository for MongoDB. Expired documents are
// reaped by TTL indexes; reads also check expires_at because TTL deletion lags.
type MongoSessionRepository struct {
	revoked *mongo.Collection
	codes   *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoSessionRepository
func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{
		revoked: db.Collection("revoked_sessions"),
		codes:   db.Collection("auth_codes"),
	}
}

// EnsureIndexes creates the unique lookup and TTL indexes for both collections.
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	ttl := options.Index().SetExpireAfterSeconds(0)
	if _, err := r.revoked.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_token_id")},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: ttl.SetName("ttl_expires_at")},
	}); err != nil {
		return err
	}
	_, err := r.codes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_code")},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("idx_user_id")},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at")},
	})
	return err
}

func (r *MongoSessionRepository) RevokeSession(ctx context.Context, revoked *models.RevokedSession) error {
	_, err := r.revoked.UpdateOne(ctx,
		bson.M{"token_id": revoked.TokenID},
		bson.M{"$setOnInsert": revoked},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoSessionRepository) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := r.revoked.CountDocuments(ctx, bson.M{"token_id": tokenID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoSessionRepository) CreateAuthCode(ctx context.Context, code *models.AuthCode) error {
	_, err := r.codes.InsertOne(ctx, code)
	return err
}

// ConsumeAuthCode deletes and returns the code in one step so it can be used at most once.
func (r *MongoSessionRepository) ConsumeAuthCode(ctx context.Context, code string) (*models.AuthCode, error) {
	var authCode models.AuthCode
	err := r.codes.FindOneAndDelete(ctx, bson.M{
		"code":       code,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&authCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAuthCodeNotFound
		}
		return nil, err
	}
	return &authCode, nil
}

// DeleteAuthCodesByUser drops every outstanding code minted for the user.
func (r *MongoSessionRepository) DeleteAuthCodesByUser(ctx context.Context, userID string) error {
	_, err := r.codes.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// MemorySessionRepository is the single-process SessionRepository used when no MongoDB is
// configured.
type MemorySessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	codes   map[string]models.AuthCode
	now     func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		revoked: make(map[string]time.Time),
		codes:   make(map[string]models.AuthCode),
		now:     time.Now,
	}
}

func (r *MemorySessionRepository) RevokeSession(_ context.Context, revoked *models.RevokedSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	r.revoked[revoked.TokenID] = revoked.ExpiresAt
	return nil
}

func (r *MemorySessionRepository) IsSessionRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func (r *MemorySessionRepository) CreateAuthCode(_ context.Context, code *models.AuthCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	r.codes[code.Code] = *code
	return nil
}

func (r *MemorySessionRepository) ConsumeAuthCode(_ context.Context, code string) (*models.AuthCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	authCode, ok := r.codes[code]
	if !ok {
		return nil, ErrAuthCodeNotFound
	}
	delete(r.codes, code)
	if !authCode.ExpiresAt.After(r.now()) {
		return nil, ErrAuthCodeNotFound
	}
	return &authCode, nil
}

func (r *MemorySessionRepository) DeleteAuthCodesByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c, ac := range r.codes {
		if ac.UserID == userID {
			delete(r.codes, c)
		}
	}
	return nil
}

// purgeLocked drops expired entries, standing in for the TTL indexes.
func (r *MemorySessionRepository) purgeLocked() {
	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	for c, ac := range r.codes {
		if !ac.ExpiresAt.After(now) {
			delete(r.codes, c)
		}
	}
}
