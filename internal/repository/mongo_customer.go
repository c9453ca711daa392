// internal/repository/mongo_customer.go
package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
)

const customerCollection = "customers"

// uniqueCustomerFields are the fields backed by unique indexes; used to
// attribute a duplicate-key error to the colliding field.
var uniqueCustomerFields = []string{"gstin", "dlNo"}

type MongoCustomerRepository struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{coll: db.Collection(customerCollection)}
}

func buildCustomerFilter(f CustomerFilter) bson.M {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = bson.M{"$regex": f.Name, "$options": "i"}
	}
	if f.Contact != "" {
		filter["contact"] = bson.M{"$regex": f.Contact, "$options": "i"}
	}
	if f.DlNo != "" {
		filter["dlNo"] = bson.M{"$regex": f.DlNo, "$options": "i"}
	}
	if f.GSTIN != "" {
		filter["gstin"] = bson.M{"$regex": f.GSTIN, "$options": "i"}
	}
	return filter
}

// mapDuplicateKey converts a mongo duplicate-key error into a ConflictError
// naming the unique field that collided. The index name ("gstin_1", "dlNo_1")
// appears in the driver's error message.
func mapDuplicateKey(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	message := err.Error()
	for _, field := range uniqueCustomerFields {
		if strings.Contains(message, field+"_1") || strings.Contains(message, field+":") {
			return ConflictError{Field: field}
		}
	}
	return ConflictError{Field: "unknown"}
}

func (r *MongoCustomerRepository) Insert(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, customer)
	if err != nil {
		return mapDuplicateKey(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		customer.ID = oid
	}
	return nil
}

func (r *MongoCustomerRepository) Find(ctx context.Context, filter CustomerFilter, opts ListOptions) ([]models.Customer, error) {
	findOpts := options.Find().SetSort(sortStage(opts))
	if opts.Limit > 0 {
		findOpts.SetSkip(int64(opts.Skip())).SetLimit(int64(opts.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildCustomerFilter(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

func (r *MongoCustomerRepository) Count(ctx context.Context, filter CustomerFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, buildCustomerFilter(filter))
}

func (r *MongoCustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var customer models.Customer
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *MongoCustomerRepository) FindByDlNo(ctx context.Context, dlNo string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"dlNo": strings.ToUpper(dlNo)}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *MongoCustomerRepository) UpdateByID(ctx context.Context, id string, set map[string]interface{}) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{}
	for k, v := range set {
		update[k] = v
	}
	update["updatedAt"] = time.Now()

	var customer models.Customer
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapDuplicateKey(err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepository) DeleteByID(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var customer models.Customer
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
