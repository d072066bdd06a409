package store

import (
	"context"
	"log"
	"time"

	"moyo/db"
	"moyo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartStore persists one cart blob per user. Loads degrade to the empty
// state when nothing usable is stored; saves refresh lastUpdated and report
// success as a bool. Operations are idempotent and not transactional with
// each other.
type CartStore interface {
	LoadCart(ctx context.Context, userID string) models.CartState
	SaveCart(ctx context.Context, userID string, state models.CartState) bool
	ClearCart(ctx context.Context, userID string) bool
}

type cartDoc struct {
	UserID      string            `bson:"_id"`
	Items       []models.CartItem `bson:"items"`
	LastUpdated time.Time         `bson:"lastUpdated"`
}

// MongoCartStore keeps cart blobs in the carts collection.
type MongoCartStore struct {
	coll *mongo.Collection
}

func NewMongoCartStore() *MongoCartStore {
	return &MongoCartStore{coll: db.CartCollection}
}

func (s *MongoCartStore) LoadCart(ctx context.Context, userID string) models.CartState {
	var doc cartDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			// Corrupt or unreadable data is not an error; it degrades to empty.
			log.Println("cart store: load failed:", err)
		}
		return models.CartState{Items: []models.CartItem{}}
	}
	if doc.Items == nil {
		doc.Items = []models.CartItem{}
	}
	return models.CartState{Items: doc.Items, LastUpdated: doc.LastUpdated}
}

func (s *MongoCartStore) SaveCart(ctx context.Context, userID string, state models.CartState) bool {
	doc := cartDoc{
		UserID:      userID,
		Items:       state.Items,
		LastUpdated: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": userID}, doc, opts); err != nil {
		log.Println("cart store: save failed:", err)
		return false
	}
	return true
}

func (s *MongoCartStore) ClearCart(ctx context.Context, userID string) bool {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		log.Println("cart store: clear failed:", err)
		return false
	}
	return true
}
