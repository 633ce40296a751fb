package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lotDocument is the stored shape of a lot; prices are Decimal128 so no
// precision is lost in the database.
type lotDocument struct {
	ID            int64                `bson:"_id"`
	LotName       string               `bson:"lot_name"`
	CustomerCode  string               `bson:"customer_code"`
	Price         primitive.Decimal128 `bson:"price"`
	CurrencyCode  string               `bson:"currency_code"`
	NdsRate       string               `bson:"nds_rate"`
	PlaceDelivery string               `bson:"place_delivery"`
	DateDelivery  time.Time            `bson:"date_delivery"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func newLotDocument(l *model.Lot) (*lotDocument, error) {
	price, err := primitive.ParseDecimal128(l.Price.String())
	if err != nil {
		return nil, fmt.Errorf("price %s: %w", l.Price, err)
	}
	return &lotDocument{
		ID:            l.LotID,
		LotName:       l.LotName,
		CustomerCode:  l.CustomerCode,
		Price:         price,
		CurrencyCode:  l.CurrencyCode,
		NdsRate:       l.NdsRate,
		PlaceDelivery: l.PlaceDelivery,
		DateDelivery:  l.DateDelivery,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

func (d *lotDocument) toLot() (*model.Lot, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, fmt.Errorf("lot %d price: %w", d.ID, err)
	}
	return &model.Lot{
		LotID:         d.ID,
		LotName:       d.LotName,
		CustomerCode:  d.CustomerCode,
		Price:         price,
		CurrencyCode:  d.CurrencyCode,
		NdsRate:       d.NdsRate,
		PlaceDelivery: d.PlaceDelivery,
		DateDelivery:  d.DateDelivery.UTC(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func (r *MongoRepository) ListLots(ctx context.Context) ([]*model.Lot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.Lots.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lots := []*model.Lot{}
	for cursor.Next(ctx) {
		var doc lotDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		lot, err := doc.toLot()
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, cursor.Err()
}

func (r *MongoRepository) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	var doc lotDocument
	err := r.Lots.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toLot()
}

func (r *MongoRepository) CreateLot(ctx context.Context, l *model.Lot) error {
	id, err := r.nextID(ctx, r.Lots.Name())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	l.LotID = id
	l.CreatedAt = now
	l.UpdatedAt = now

	doc, err := newLotDocument(l)
	if err != nil {
		return err
	}
	if _, err := r.Lots.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) UpdateLot(ctx context.Context, l *model.Lot) error {
	l.UpdatedAt = time.Now().UTC()

	doc, err := newLotDocument(l)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"lot_name":       doc.LotName,
			"customer_code":  doc.CustomerCode,
			"price":          doc.Price,
			"currency_code":  doc.CurrencyCode,
			"nds_rate":       doc.NdsRate,
			"place_delivery": doc.PlaceDelivery,
			"date_delivery":  doc.DateDelivery,
			"updated_at":     doc.UpdatedAt,
		},
	}

	res, err := r.Lots.UpdateOne(ctx, bson.M{"_id": l.LotID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteLot(ctx context.Context, id int64) error {
	res, err := r.Lots.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CountLotsByCustomer(ctx context.Context, code string) (int64, error) {
	return r.Lots.CountDocuments(ctx, bson.M{"customer_code": code})
}
