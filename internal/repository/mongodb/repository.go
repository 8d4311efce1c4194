package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
)

// ErrNotFound indicates the requested record does not exist for that owner.
var ErrNotFound = errors.New("record not found")

// Repository defines the persistence operations the services need. Records
// are append-only: created once, read in bulk, deleted wholesale.
type Repository interface {
	InsertRecord(ctx context.Context, record models.FinancialRecord) (models.FinancialRecord, error)
	ListRecords(ctx context.Context, ownerID string) ([]models.FinancialRecord, error)
	DeleteRecord(ctx context.Context, ownerID, id string) error
	SaveSnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// MongoDBRepository implements Repository on top of MongoDB.
type MongoDBRepository struct {
	client        *mongo.Client
	dbName        string
	recordsColl   string
	snapshotsColl string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:        client,
		dbName:        dbName,
		recordsColl:   "financial_records",
		snapshotsColl: "daily_snapshots",
	}, nil
}

// InsertRecord stores the record and returns it with the assigned id.
func (r *MongoDBRepository) InsertRecord(ctx context.Context, record models.FinancialRecord) (models.FinancialRecord, error) {
	record.ID = primitive.NewObjectID().Hex()

	collection := r.client.Database(r.dbName).Collection(r.recordsColl)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return models.FinancialRecord{}, fmt.Errorf("failed to insert record: %w", err)
	}
	return record, nil
}

// ListRecords returns every record belonging to the owner, oldest first.
func (r *MongoDBRepository) ListRecords(ctx context.Context, ownerID string) ([]models.FinancialRecord, error) {
	collection := r.client.Database(r.dbName).Collection(r.recordsColl)

	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.FinancialRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// DeleteRecord removes a single record by id, scoped to its owner.
func (r *MongoDBRepository) DeleteRecord(ctx context.Context, ownerID, id string) error {
	collection := r.client.Database(r.dbName).Collection(r.recordsColl)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSnapshot appends a daily aggregate snapshot.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.snapshotsColl)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
