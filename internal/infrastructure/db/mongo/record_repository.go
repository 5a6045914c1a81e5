package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

const collectionRecords = "records"

// RecordRepository implements ports.RecordRepository using MongoDB.
type RecordRepository struct {
	col *mongo.Collection
	now func() time.Time
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{col: db.Collection(collectionRecords), now: time.Now}
}

var _ ports.RecordRepository = (*RecordRepository)(nil)

type mongoRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Date      string             `bson:"date"`
	Totals    map[string]float64 `bson:"totals"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mr mongoRecord) toDomain() domain.Record {
	totals := make(domain.Totals, len(mr.Totals))
	for k, v := range mr.Totals {
		totals[k] = v
	}
	return domain.Record{
		ID:        mr.ID.Hex(),
		Date:      mr.Date,
		Totals:    totals,
		CreatedAt: mr.CreatedAt,
		UpdatedAt: mr.UpdatedAt,
	}
}

// Upsert sets the totals of the record for date as a whole, inserting the
// record when the date has none yet.
func (r *RecordRepository) Upsert(ctx context.Context, date string, totals domain.Totals) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now().UTC()
	update := bson.M{
		"$set":         bson.M{"totals": map[string]float64(totals), "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var mr mongoRecord
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"date": date}, update, opts).Decode(&mr); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}
	rec := mr.toDomain()
	return &rec, nil
}

func (r *RecordRepository) FindByDate(ctx context.Context, date string) (*domain.Record, error) {
	return r.findOne(ctx, bson.M{"date": date})
}

func (r *RecordRepository) FindByID(ctx context.Context, id string) (*domain.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *RecordRepository) findOne(ctx context.Context, filter bson.M) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRecord
	if err := r.col.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	rec := mr.toDomain()
	return &rec, nil
}

// ListAll returns every record sorted ascending by date. Zero-padded dates
// sort correctly as strings.
func (r *RecordRepository) ListAll(ctx context.Context) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	out := make([]domain.Record, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// EnsureIndexes enforces one record per date.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
