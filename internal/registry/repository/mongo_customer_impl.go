package repository

import (
	"context"
	"errors"
	"time"

	"lotadmin/internal/registry/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.Customers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []*model.Customer{}
	for cursor.Next(ctx) {
		var c model.Customer
		if err := cursor.Decode(&c); err != nil {
			return nil, err
		}
		c.Normalize()
		customers = append(customers, &c)
	}
	return customers, cursor.Err()
}

func (r *MongoRepository) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return r.findCustomer(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetCustomerByCode(ctx context.Context, code string) (*model.Customer, error) {
	return r.findCustomer(ctx, bson.M{"customer_code": code})
}

func (r *MongoRepository) findCustomer(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var c model.Customer
	err := r.Customers.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Normalize()
	return &c, nil
}

func (r *MongoRepository) CreateCustomer(ctx context.Context, c *model.Customer) error {
	id, err := r.nextID(ctx, r.Customers.Name())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	c.CustomerID = id
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.Customers.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	c.Normalize()
	return nil
}

func (r *MongoRepository) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"customer_code":           c.CustomerCode,
			"customer_name":           c.CustomerName,
			"customer_inn":            c.CustomerInn,
			"customer_kpp":            c.CustomerKpp,
			"customer_legal_address":  c.CustomerLegalAddress,
			"customer_postal_address": c.CustomerPostalAddress,
			"customer_email":          c.CustomerEmail,
			"is_organization":         c.IsOrganization,
			"updated_at":              c.UpdatedAt,
		},
	}
	if c.CustomerCodeMain != nil {
		update["$set"].(bson.M)["customer_code_main"] = *c.CustomerCodeMain
	} else {
		update["$unset"] = bson.M{"customer_code_main": ""}
	}

	res, err := r.Customers.UpdateOne(ctx, bson.M{"_id": c.CustomerID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	c.Normalize()
	return nil
}

func (r *MongoRepository) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := r.Customers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CountChildCustomers(ctx context.Context, code string) (int64, error) {
	return r.Customers.CountDocuments(ctx, bson.M{"customer_code_main": code})
}
