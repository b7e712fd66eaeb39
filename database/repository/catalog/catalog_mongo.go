package catalogRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"leasely/database"
	"leasely/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	centres   *mongo.Collection
	casual    *mongo.Collection
	vacant    *mongo.Collection
	thirdLine *mongo.Collection
}

// NewMongoCatalogRepo creates a CatalogRepository backed by the "leasely"
// database.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("leasely")
	return &MongoCatalogRepo{
		centres:   db.Collection("centres"),
		casual:    db.Collection("casual_sites"),
		vacant:    db.Collection("vacant_shops"),
		thirdLine: db.Collection("third_line_assets"),
	}
}

func (r *MongoCatalogRepo) ListCentresByName(ctx context.Context, phrase, state string) ([]models.Centre, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if phrase != "" {
		pattern := regexp.QuoteMeta(phrase)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"suburb": bson.M{"$regex": pattern, "$options": "i"}},
			{"city": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if state != "" {
		filter["state"] = state
	}

	cursor, err := r.centres.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list centres by name: %w", err)
	}
	defer cursor.Close(ctx)

	var centres []models.Centre
	if err := cursor.All(ctx, &centres); err != nil {
		return nil, fmt.Errorf("failed to decode centres: %w", err)
	}
	return centres, nil
}

func (r *MongoCatalogRepo) ListCentresByIDs(ctx context.Context, ids []string) ([]models.Centre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.centres.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list centres by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var centres []models.Centre
	if err := cursor.All(ctx, &centres); err != nil {
		return nil, fmt.Errorf("failed to decode centres: %w", err)
	}
	return centres, nil
}

func (r *MongoCatalogRepo) AllCentres(ctx context.Context) ([]models.Centre, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.centres.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list centres: %w", err)
	}
	defer cursor.Close(ctx)

	var centres []models.Centre
	if err := cursor.All(ctx, &centres); err != nil {
		return nil, fmt.Errorf("failed to decode centres: %w", err)
	}
	return centres, nil
}

func (r *MongoCatalogRepo) ListSpacesByCentre(ctx context.Context, centreID string, asset models.AssetType) ([]models.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"centreId": centreID}
	switch asset {
	case models.AssetVacantShop:
		return r.findVacant(ctx, filter)
	case models.AssetThirdLine:
		return r.findThirdLine(ctx, filter)
	default:
		return r.findCasual(ctx, filter)
	}
}

func (r *MongoCatalogRepo) SearchSpacesByText(ctx context.Context, text, categoryID, state string) ([]models.Space, error) {
	if text == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pattern := regexp.QuoteMeta(text)
	filter := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"shopNumber": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}
	if state != "" {
		filter["state"] = state
	}
	if categoryID != "" {
		filter["$and"] = []bson.M{{
			"$or": []bson.M{
				{"approved.allApproved": true},
				{"approved.ids": categoryID},
			},
		}}
	}

	casual, err := r.findCasual(ctx, filter)
	if err != nil {
		return nil, err
	}
	vacant, err := r.findVacant(ctx, filter)
	if err != nil {
		return nil, err
	}
	spaces := append(casual, vacant...)
	return spaces, nil
}

func (r *MongoCatalogRepo) ApprovedCategoryIDs(ctx context.Context, spaceID string) (models.CategoryPolicy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Approved models.CategoryPolicy `bson:"approved"`
	}
	filter := bson.M{"id": spaceID}
	err := r.casual.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		err = r.vacant.FindOne(ctx, filter).Decode(&doc)
	}
	if err == mongo.ErrNoDocuments {
		// Third-line assets carry no category restrictions.
		return models.CategoryPolicy{AllApproved: true}, nil
	}
	if err != nil {
		return models.CategoryPolicy{}, fmt.Errorf("failed to fetch category policy for space %s: %w", spaceID, err)
	}
	return doc.Approved, nil
}

func (r *MongoCatalogRepo) findCasual(ctx context.Context, filter bson.M) ([]models.Space, error) {
	cursor, err := r.casual.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query casual sites: %w", err)
	}
	defer cursor.Close(ctx)

	var sites []models.CasualSite
	if err := cursor.All(ctx, &sites); err != nil {
		return nil, fmt.Errorf("failed to decode casual sites: %w", err)
	}
	spaces := make([]models.Space, 0, len(sites))
	for _, s := range sites {
		spaces = append(spaces, s)
	}
	return spaces, nil
}

func (r *MongoCatalogRepo) findVacant(ctx context.Context, filter bson.M) ([]models.Space, error) {
	cursor, err := r.vacant.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacant shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.VacantShop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode vacant shops: %w", err)
	}
	spaces := make([]models.Space, 0, len(shops))
	for _, s := range shops {
		spaces = append(spaces, s)
	}
	return spaces, nil
}

func (r *MongoCatalogRepo) findThirdLine(ctx context.Context, filter bson.M) ([]models.Space, error) {
	cursor, err := r.thirdLine.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query third-line assets: %w", err)
	}
	defer cursor.Close(ctx)

	var assets []models.ThirdLineAsset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode third-line assets: %w", err)
	}
	spaces := make([]models.Space, 0, len(assets))
	for _, a := range assets {
		spaces = append(spaces, a)
	}
	return spaces, nil
}
