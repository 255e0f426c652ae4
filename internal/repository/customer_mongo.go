package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoCustomersCollection = "customers"
	mongoCountersCollection  = "counters"
	mongoEmailActiveIndex    = "email_active"
	mongoPhoneActiveIndex    = "phone_active"
)

type mongoCounter struct {
	Seq int `bson:"seq"`
}

type mongoCustomerRepository struct {
	customers *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoCustomerRepository builds mongo CustomerRepository
func NewMongoCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{
		customers: db.Collection(mongoCustomersCollection),
		counters:  db.Collection(mongoCountersCollection),
	}
}

// EnsureMongoCustomerIndexes creates unique indexes for email and phone of active customers
func EnsureMongoCustomerIndexes(ctx context.Context, db *mongo.Database) error {
	activeOnly := bson.M{"disabled": false}
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(mongoEmailActiveIndex).SetUnique(true).SetPartialFilterExpression(activeOnly),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName(mongoPhoneActiveIndex).SetUnique(true).SetPartialFilterExpression(activeOnly),
		},
		{
			Keys:    bson.D{{Key: "country", Value: 1}},
			Options: options.Index().SetName("country"),
		},
	}

	_, err := db.Collection(mongoCustomersCollection).Indexes().CreateMany(ctx, models)
	return err
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	var c model.Customer
	if err := r.customers.FindOne(ctx, bson.M{"_id": id, "disabled": false}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	return r.find(ctx, bson.M{"disabled": false})
}

func (r *mongoCustomerRepository) FindByCountry(ctx context.Context, country int16) ([]*model.Customer, error) {
	return r.find(ctx, bson.M{"country": country, "disabled": false})
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) (bool, error) {
	if _, err := r.customers.InsertOne(ctx, c); err != nil {
		return false, r.duplicateKey(err)
	}
	return true, nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, upd *model.CustomerUpdate) (bool, error) {
	set := bson.M{
		"country": upd.Country,
		"demonym": upd.Demonym,
	}

	if upd.Email != nil {
		set["email"] = *upd.Email
	}

	if upd.Address != nil {
		set["address"] = *upd.Address
	}

	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}

	res, err := r.customers.UpdateOne(ctx, bson.M{"_id": upd.ID, "disabled": false}, bson.M{"$set": set})
	if err != nil {
		return false, r.duplicateKey(err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoCustomerRepository) DisableByID(ctx context.Context, id int) (bool, error) {
	res, err := r.customers.UpdateOne(ctx, bson.M{"_id": id, "disabled": false}, bson.M{"$set": bson.M{"disabled": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id int) (bool, error) {
	res, err := r.customers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoCustomerRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	return r.exists(ctx, bson.M{"email": email, "_id": bson.M{"$ne": excludeID}, "disabled": false})
}

func (r *mongoCustomerRepository) PhoneExists(ctx context.Context, phone string, excludeID int) (bool, error) {
	return r.exists(ctx, bson.M{"phone": phone, "_id": bson.M{"$ne": excludeID}, "disabled": false})
}

func (r *mongoCustomerRepository) NextID(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter mongoCounter
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": mongoCustomersCollection}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *mongoCustomerRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.customers.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoCustomerRepository) find(ctx context.Context, filter bson.M) ([]*model.Customer, error) {
	cursor, err := r.customers.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) duplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, mongoEmailActiveIndex):
		return apperrors.ErrDuplicateEmail.Wrap(err)
	case strings.Contains(msg, mongoPhoneActiveIndex):
		return apperrors.ErrDuplicatePhone.Wrap(err)
	default:
		return err
	}
}
