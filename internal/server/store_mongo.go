package server

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pandorahunt/boxhunt/internal/hunt"
)

// MongoPlaces is the MongoDB-backed hunt.PlaceStore. The places
// collection carries one document per place with box as an optional
// embedded document; RemoveBox maps to a single conditional $unset,
// which MongoDB applies atomically per document.
type MongoPlaces struct {
	places *mongo.Collection
}

func NewMongoPlaces(db *mongo.Database) *MongoPlaces {
	return &MongoPlaces{places: db.Collection("places")}
}

// unavailable tags infrastructure failures so handlers can map them to
// 503 while the log line still carries the cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, hunt.ErrStoreUnavailable)
}

func activeBoxFilter(id int64) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "box", Value: bson.D{{Key: "$exists", Value: true}}},
	}
}

func (s *MongoPlaces) FindNearby(ctx context.Context, q hunt.NearbyQuery) ([]hunt.PlaceSummary, error) {
	// $near sorts by ascending distance server-side.
	filter := bson.D{
		{Key: "location", Value: bson.D{{Key: "$near", Value: bson.D{
			{Key: "$geometry", Value: hunt.NewPoint(q.Lon, q.Lat)},
			{Key: "$maxDistance", Value: q.MaxDistanceMeters},
		}}}},
		{Key: "box", Value: bson.D{{Key: "$exists", Value: true}}},
	}

	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "box", Value: 0}}).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cur, err := s.places.Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("querying nearby places", err)
	}
	defer cur.Close(ctx)

	summaries := []hunt.PlaceSummary{}
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, unavailable("decoding nearby places", err)
	}
	return summaries, nil
}

func (s *MongoPlaces) ActiveQuestion(ctx context.Context, id int64) (hunt.Question, error) {
	var doc struct {
		ID  int64 `bson:"id"`
		Box struct {
			Question string `bson:"question"`
		} `bson:"box"`
	}

	err := s.places.FindOne(ctx, activeBoxFilter(id),
		options.FindOne().SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "box.question", Value: 1},
		}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return hunt.Question{}, hunt.ErrNotFound
	}
	if err != nil {
		return hunt.Question{}, unavailable("fetching box question", err)
	}

	return hunt.Question{ID: doc.ID, Question: doc.Box.Question}, nil
}

func (s *MongoPlaces) ClaimSnapshot(ctx context.Context, id int64) (hunt.ClaimSnapshot, error) {
	var doc struct {
		ID    int64  `bson:"id"`
		Title string `bson:"title"`
		Box   struct {
			Answer string `bson:"answer"`
		} `bson:"box"`
	}

	err := s.places.FindOne(ctx, activeBoxFilter(id),
		options.FindOne().SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "box.answer", Value: 1},
		}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return hunt.ClaimSnapshot{}, hunt.ErrNotFound
	}
	if err != nil {
		return hunt.ClaimSnapshot{}, unavailable("fetching claim snapshot", err)
	}

	return hunt.ClaimSnapshot{ID: doc.ID, Title: doc.Title, Answer: doc.Box.Answer}, nil
}

// RemoveBox is the race-resolving write. The filter re-checks box
// presence at the instant of the mutation; ModifiedCount reports
// whether the filter matched and the $unset applied, in one round
// trip. Concurrent correct claims cannot both observe a modification.
func (s *MongoPlaces) RemoveBox(ctx context.Context, id int64) (bool, error) {
	res, err := s.places.UpdateOne(ctx, activeBoxFilter(id),
		bson.D{{Key: "$unset", Value: bson.D{{Key: "box", Value: ""}}}})
	if err != nil {
		return false, unavailable("removing box", err)
	}
	return res.ModifiedCount == 1, nil
}

// InsertPlaces inserts places that do not exist yet. Existing
// documents are left untouched: reseeding must never resurrect an
// opened box.
func (s *MongoPlaces) InsertPlaces(ctx context.Context, places []hunt.Place) error {
	for _, p := range places {
		_, err := s.places.UpdateOne(ctx,
			bson.D{{Key: "id", Value: p.ID}},
			bson.D{{Key: "$setOnInsert", Value: p}},
			options.Update().SetUpsert(true))
		if err != nil {
			return unavailable(fmt.Sprintf("inserting place %d", p.ID), err)
		}
	}
	return nil
}
