package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"peacemaker/internal/config"
	"peacemaker/internal/model"
	"peacemaker/internal/repository"
	"peacemaker/internal/scale"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds the analysis history with one reference analysis per scale level so
// the admin history view has data before any real traffic.
func main() {
	cfg := config.Load()
	if !cfg.HistoryEnabled() {
		log.Fatal("MONGO_URI must be set to seed analysis history")
	}

	analyses, err := seedAnalyses(scale.DefaultRegistry(), time.Now().UTC())
	if err != nil {
		log.Fatalf("Failed to build seed data: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewAnalysisRepo(client.Database(cfg.MongoDatabase))
	for _, analysis := range analyses {
		if err := repo.Save(ctx, analysis); err != nil {
			log.Fatalf("Failed to insert analysis: %v", err)
		}
	}

	fmt.Printf("Successfully seeded %d reference analyses into '%s'\n", len(analyses), cfg.MongoDatabase)
}

// seedID is stable per scale level, so reseeding replaces rows instead of adding them
func seedID(scaleName string, level int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(scaleName+":"+strconv.Itoa(level))).String()
}

func seedAnalyses(reg *scale.Registry, now time.Time) ([]*model.Analysis, error) {
	var out []*model.Analysis
	for _, desc := range reg.All() {
		for i, level := range desc.Levels {
			band, err := desc.Classify(level.Level)
			if err != nil {
				return nil, fmt.Errorf("level %d of %s is not classifiable: %w", level.Level, desc.Name, err)
			}

			var topic string
			if desc.RequiresTopic {
				topic = model.ControversialTopics[i%len(model.ControversialTopics)]
			}

			out = append(out, &model.Analysis{
				ID:    seedID(desc.Name, level.Level),
				Scale: desc.Name,
				Topic: topic,
				Text:  level.Example,
				Result: model.ScoreResult{
					Score:           level.Level,
					Explanation:     level.Description,
					Category:        band.Category,
					ImprovementTips: []string{},
				},
				Reason:    "seed",
				CreatedAt: now,
			})
		}
	}
	return out, nil
}
