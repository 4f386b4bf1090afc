package repository

import (
	"context"

	"peacemaker/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisRepo handles MongoDB operations for analysis history
type AnalysisRepo interface {
	Save(ctx context.Context, analysis *model.Analysis) error
	GetByID(ctx context.Context, id string) (*model.Analysis, error)
	List(ctx context.Context, scaleName string, limit int64) ([]model.Analysis, error)
}

type analysisRepo struct {
	collection *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		collection: db.Collection("analyses"),
	}
}

func (r *analysisRepo) Save(ctx context.Context, analysis *model.Analysis) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": analysis.ID}, analysis, opts)
	return err
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.Analysis, error) {
	var analysis model.Analysis
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&analysis)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// List returns the newest analyses first, optionally filtered by scale
func (r *analysisRepo) List(ctx context.Context, scaleName string, limit int64) ([]model.Analysis, error) {
	filter := bson.M{}
	if scaleName != "" {
		filter["scale"] = scaleName
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	analyses := []model.Analysis{}
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}
