// internal/repository/mongo_medicine.go
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
)

const medicineCollection = "medicines"

type MongoMedicineRepository struct {
	coll *mongo.Collection
}

func NewMongoMedicineRepository(db *mongo.Database) *MongoMedicineRepository {
	return &MongoMedicineRepository{coll: db.Collection(medicineCollection)}
}

func buildMedicineFilter(f MedicineFilter) bson.M {
	filter := bson.M{}

	if f.Name != "" {
		filter["name"] = bson.M{"$regex": f.Name, "$options": "i"}
	}
	if f.PackagingType != "" {
		filter["packagingType"] = f.PackagingType
	}

	expiry := bson.M{}
	if f.ExpiresBefore != nil {
		expiry["$lt"] = *f.ExpiresBefore
	}
	if f.ExpiresOnOrAfter != nil {
		expiry["$gte"] = *f.ExpiresOnOrAfter
	}
	if f.ExpiresOnOrBefore != nil {
		expiry["$lte"] = *f.ExpiresOnOrBefore
	}
	if len(expiry) > 0 {
		filter["expiryDate"] = expiry
	}

	if f.QuantityBelow != nil {
		filter["quantity"] = bson.M{"$lt": *f.QuantityBelow}
	}

	return filter
}

func sortStage(opts ListOptions) bson.D {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := 1
	if opts.Descending() {
		order = -1
	}
	return bson.D{{Key: sortBy, Value: order}}
}

func (r *MongoMedicineRepository) Insert(ctx context.Context, medicine *models.Medicine) error {
	now := time.Now()
	medicine.CreatedAt = now
	medicine.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, medicine)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		medicine.ID = oid
	}
	return nil
}

func (r *MongoMedicineRepository) Find(ctx context.Context, filter MedicineFilter, opts ListOptions) ([]models.Medicine, error) {
	findOpts := options.Find().SetSort(sortStage(opts))
	if opts.Limit > 0 {
		findOpts.SetSkip(int64(opts.Skip())).SetLimit(int64(opts.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildMedicineFilter(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medicines []models.Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, err
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}
	return medicines, nil
}

func (r *MongoMedicineRepository) Count(ctx context.Context, filter MedicineFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, buildMedicineFilter(filter))
}

func (r *MongoMedicineRepository) FindByID(ctx context.Context, id string) (*models.Medicine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var medicine models.Medicine
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&medicine)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *MongoMedicineRepository) UpdateByID(ctx context.Context, id string, set map[string]interface{}) (*models.Medicine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{}
	for k, v := range set {
		update[k] = v
	}
	update["updatedAt"] = time.Now()

	var medicine models.Medicine
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&medicine)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *MongoMedicineRepository) DeleteByID(ctx context.Context, id string) (*models.Medicine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var medicine models.Medicine
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&medicine)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *MongoMedicineRepository) FindSummaries(ctx context.Context, filter MedicineFilter, opts ListOptions) ([]models.MedicineSummary, error) {
	findOpts := options.Find().
		SetSort(sortStage(opts)).
		SetProjection(bson.M{
			"_id":          0,
			"name":         1,
			"expiryDate":   1,
			"quantity":     1,
			"mrp":          1,
			"manufacturer": 1,
		})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildMedicineFilter(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.MedicineSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.MedicineSummary{}
	}
	return summaries, nil
}

func (r *MongoMedicineRepository) Totals(ctx context.Context) (InventoryTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalQuantity": bson.M{"$sum": "$quantity"},
			"totalValue":    bson.M{"$sum": bson.M{"$multiply": bson.A{"$mrp", "$quantity"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return InventoryTotals{}, err
	}
	defer cursor.Close(ctx)

	var results []InventoryTotals
	if err := cursor.All(ctx, &results); err != nil {
		return InventoryTotals{}, err
	}
	if len(results) == 0 {
		return InventoryTotals{}, nil
	}
	return results[0], nil
}
