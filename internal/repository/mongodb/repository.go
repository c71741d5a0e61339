package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

const (
	transactionsCollection = "weight_transactions"
	animalsCollection      = "animals"
)

// MongoDBRepository backs the transaction and entity stores with MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// FindByAnimal returns every weight transaction recorded for the animal.
func (r *MongoDBRepository) FindByAnimal(ctx context.Context, animalID string) ([]models.WeightRecord, error) {
	cursor, err := r.transactions().Find(ctx, bson.M{"animal_id": animalID})
	if err != nil {
		return nil, fmt.Errorf("find transactions for animal %s: %w", animalID, err)
	}

	var records []models.WeightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode transactions for animal %s: %w", animalID, err)
	}
	return records, nil
}

// FindLatest returns up to limit of the animal's most recent transactions,
// newest first.
func (r *MongoDBRepository) FindLatest(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.transactions().Find(ctx, bson.M{"animal_id": animalID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find latest transactions for animal %s: %w", animalID, err)
	}

	var records []models.WeightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode latest transactions for animal %s: %w", animalID, err)
	}
	return records, nil
}

// FindInDateRange returns all of a tenant's transactions inside the inclusive
// date range.
func (r *MongoDBRepository) FindInDateRange(ctx context.Context, tenantID string, rng models.DateRange) ([]models.WeightRecord, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"timestamp": bson.M{"$gte": rng.Start, "$lte": rng.End},
	}

	cursor, err := r.transactions().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find transactions in range for tenant %s: %w", tenantID, err)
	}

	var records []models.WeightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode transactions in range for tenant %s: %w", tenantID, err)
	}
	return records, nil
}

// Insert persists a new weight transaction.
func (r *MongoDBRepository) Insert(ctx context.Context, record models.WeightRecord) error {
	if _, err := r.transactions().InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert weight transaction: %w", err)
	}
	return nil
}

// FindWithTargetWeight returns the tenant's animals that have a positive
// target weight configured, optionally narrowed by species and group.
func (r *MongoDBRepository) FindWithTargetWeight(ctx context.Context, tenantID string, filters models.AnimalFilters) ([]models.AnimalProfile, error) {
	filter := bson.M{
		"tenant_id":        tenantID,
		"target_weight_kg": bson.M{"$gt": 0},
	}
	if filters.Species != "" {
		filter["species"] = filters.Species
	}
	if filters.Group != "" {
		filter["group_id"] = filters.Group
	}

	cursor, err := r.animals().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find animals with target weight for tenant %s: %w", tenantID, err)
	}

	var profiles []models.AnimalProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode animals with target weight for tenant %s: %w", tenantID, err)
	}
	return profiles, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) transactions() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(transactionsCollection)
}

func (r *MongoDBRepository) animals() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(animalsCollection)
}
