package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"leasely/models"
)

// AnalyticsRecorder receives a search event after each search. Recording is
// fire-and-forget: a failure to log must never fail the search.
type AnalyticsRecorder interface {
	Record(event models.SearchEvent)
}

// MongoAnalyticsRecorder persists search events to a mongo collection from
// a background goroutine.
type MongoAnalyticsRecorder struct {
	Coll   *mongo.Collection
	Logger *zap.Logger
}

func NewMongoAnalyticsRecorder(coll *mongo.Collection, logger *zap.Logger) *MongoAnalyticsRecorder {
	return &MongoAnalyticsRecorder{Coll: coll, Logger: logger}
}

func (r *MongoAnalyticsRecorder) Record(event models.SearchEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := r.Coll.InsertOne(ctx, event); err != nil && r.Logger != nil {
			r.Logger.Warn("failed to record search event", zap.Error(err))
		}
	}()
}

// NoopAnalytics discards events; used when analytics is disabled and in
// tests.
type NoopAnalytics struct{}

func (NoopAnalytics) Record(models.SearchEvent) {}
