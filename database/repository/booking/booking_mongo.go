package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"leasely/database"
	"leasely/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the "leasely"
// database.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("leasely").Collection("bookings")
	return &MongoBookingRepo{coll: coll}
}

func (r *MongoBookingRepo) BookingsForSpaces(ctx context.Context, spaceIDs []string, start, end time.Time) ([]models.BookingInterval, error) {
	if len(spaceIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Inclusive overlap: startDate <= end AND endDate >= start.
	filter := bson.M{
		"spaceId":   bson.M{"$in": spaceIDs},
		"startDate": bson.M{"$lte": end},
		"endDate":   bson.M{"$gte": start},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.BookingInterval
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
