package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmledger/internal/domain/models"
	"github.com/mamadbah2/farmledger/internal/service/access"
	"github.com/mamadbah2/farmledger/internal/service/archive"
)

const (
	archivesCollection = "milk_archives"
	sessionsCollection = "sessions"
	dashboardSessionID = "dashboard"
)

var (
	_ archive.Store       = (*MongoDBRepository)(nil)
	_ access.SessionStore = (*MongoDBRepository)(nil)
)

// MongoDBRepository stores yearly milk archives and the dashboard session.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// SaveYearlyArchive appends an archive document. Archives for the same year
// are not merged.
func (r *MongoDBRepository) SaveYearlyArchive(ctx context.Context, a models.YearlyArchive) error {
	if _, err := r.collection(archivesCollection).InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to insert yearly archive %d: %w", a.Year, err)
	}
	return nil
}

// ListYearlyArchives returns every stored archive in creation order.
func (r *MongoDBRepository) ListYearlyArchives(ctx context.Context) ([]models.YearlyArchive, error) {
	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: 1}})
	cursor, err := r.collection(archivesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly archives: %w", err)
	}

	var archives []models.YearlyArchive
	if err := cursor.All(ctx, &archives); err != nil {
		return nil, fmt.Errorf("failed to decode yearly archives: %w", err)
	}
	return archives, nil
}

// LoadSession returns the persisted dashboard session, or nil when signed out.
func (r *MongoDBRepository) LoadSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := r.collection(sessionsCollection).FindOne(ctx, bson.M{"_id": dashboardSessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// SaveSession upserts the dashboard session document.
func (r *MongoDBRepository) SaveSession(ctx context.Context, session models.Session) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(sessionsCollection).ReplaceOne(ctx, bson.M{"_id": dashboardSessionID}, session, opts)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearSession deletes the dashboard session document.
func (r *MongoDBRepository) ClearSession(ctx context.Context) error {
	if _, err := r.collection(sessionsCollection).DeleteOne(ctx, bson.M{"_id": dashboardSessionID}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
