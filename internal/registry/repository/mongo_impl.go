package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

type MongoRepository struct {
	Customers *mongo.Collection
	Lots      *mongo.Collection
	History   *mongo.Collection
	Counters  *mongo.Collection
	Client    *mongo.Client
}

func NewMongoRepository(db *mongo.Database, customersCollection, lotsCollection, historyCollection string) *MongoRepository {
	return &MongoRepository{
		Customers: db.Collection(customersCollection),
		Lots:      db.Collection(lotsCollection),
		History:   db.Collection(historyCollection),
		Counters:  db.Collection(countersCollection),
		Client:    db.Client(),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// 1. Customer code is the reference key and must be unique
	idxCustomerCode := mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_customer_code"),
	}
	// 2. Parent lookups for delete/rename guards
	idxCustomerMain := mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_code_main", Value: 1}},
		Options: options.Index().SetName("idx_customer_code_main").SetSparse(true),
	}
	if _, err := r.Customers.Indexes().CreateMany(ctx, []mongo.IndexModel{idxCustomerCode, idxCustomerMain}); err != nil {
		return fmt.Errorf("customer indexes: %w", err)
	}

	// 3. Lots by customer
	idxLotCustomer := mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_code", Value: 1}},
		Options: options.Index().SetName("idx_lot_customer_code"),
	}
	if _, err := r.Lots.Indexes().CreateOne(ctx, idxLotCustomer); err != nil {
		return fmt.Errorf("lot indexes: %w", err)
	}

	// 4. History: newest first, optionally by kind
	idxHistory := mongo.IndexModel{
		Keys: bson.D{
			{Key: "kind", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_kind_created_at"),
	}
	if _, err := r.History.Indexes().CreateOne(ctx, idxHistory); err != nil {
		return fmt.Errorf("history indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}

// nextID hands out sequential numeric ids per collection, the way
// clients address records (/api/customers/42).
func (r *MongoRepository) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return counter.Seq, nil
}
