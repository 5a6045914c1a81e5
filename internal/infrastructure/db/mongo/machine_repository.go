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

const collectionMachines = "machines"

type MachineRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMachineRepository(db *mongo.Database) *MachineRepository {
	return &MachineRepository{col: db.Collection(collectionMachines), now: time.Now}
}

type mongoIngredient struct {
	Name     string  `bson:"name"`
	Quantity float64 `bson:"quantity"`
}

type mongoMachine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Code        string             `bson:"code"`
	Model       string             `bson:"model"`
	Location    string             `bson:"location"`
	IsSelected  bool               `bson:"is_selected"`
	Ingredients []mongoIngredient  `bson:"ingredients"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoMachine(m *domain.Machine) mongoMachine {
	ings := make([]mongoIngredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ings[i] = mongoIngredient{Name: ing.Name, Quantity: ing.Quantity}
	}
	return mongoMachine{
		Code:        m.Code,
		Model:       m.Model,
		Location:    m.Location,
		IsSelected:  m.IsSelected,
		Ingredients: ings,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (mm mongoMachine) toDomain() domain.Machine {
	ings := make([]domain.Ingredient, len(mm.Ingredients))
	for i, ing := range mm.Ingredients {
		ings[i] = domain.Ingredient{Name: ing.Name, Quantity: ing.Quantity}
	}
	return domain.Machine{
		ID:          mm.ID.Hex(),
		Code:        mm.Code,
		Model:       mm.Model,
		Location:    mm.Location,
		IsSelected:  mm.IsSelected,
		Ingredients: ings,
		CreatedAt:   mm.CreatedAt,
		UpdatedAt:   mm.UpdatedAt,
	}
}

// machineID parses a hex id; malformed ids cannot exist, so they read as not found.
func machineID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrMachineNotFound
	}
	return oid, nil
}

// List returns machines matching the filter, sorted by code.
func (r *MachineRepository) List(ctx context.Context, f ports.MachineFilter) ([]domain.Machine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.SelectedOnly {
		filter["is_selected"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find machines: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMachine
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode machines: %w", err)
	}

	out := make([]domain.Machine, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *MachineRepository) FindByID(ctx context.Context, id string) (*domain.Machine, error) {
	oid, err := machineID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMachine
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("find machine: %w", err)
	}
	m := mm.toDomain()
	return &m, nil
}

// Create inserts a new machine document.
func (r *MachineRepository) Create(ctx context.Context, m *domain.Machine) (*domain.Machine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoMachine(m))
	if err != nil {
		return nil, fmt.Errorf("insert machine: %w", err)
	}

	created := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MachineRepository) InsertMany(ctx context.Context, machines []domain.Machine) (int, error) {
	if len(machines) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs := make([]interface{}, len(machines))
	for i := range machines {
		docs[i] = toMongoMachine(&machines[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if res != nil && err != nil {
		return len(res.InsertedIDs), fmt.Errorf("insert machines: %w", err)
	}
	if err != nil {
		return 0, fmt.Errorf("insert machines: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *MachineRepository) UpdateDetails(ctx context.Context, id string, d ports.MachineDetails) error {
	return r.updateOne(ctx, id, bson.M{
		"code":     d.Code,
		"model":    d.Model,
		"location": d.Location,
	})
}

func (r *MachineRepository) UpdateIngredients(ctx context.Context, id string, ingredients []domain.Ingredient) error {
	ings := make([]mongoIngredient, len(ingredients))
	for i, ing := range ingredients {
		ings[i] = mongoIngredient{Name: ing.Name, Quantity: ing.Quantity}
	}
	return r.updateOne(ctx, id, bson.M{"ingredients": ings})
}

func (r *MachineRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	oid, err := machineID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = r.now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMachineNotFound
	}
	return nil
}

// ToggleSelected negates is_selected in a single pipeline update so two
// toggles never read the same old value.
func (r *MachineRepository) ToggleSelected(ctx context.Context, id string) (bool, error) {
	oid, err := machineID(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_selected", Value: bson.D{{Key: "$not", Value: bson.A{"$is_selected"}}}},
			{Key: "updated_at", Value: r.now().UTC()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mm mongoMachine
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrMachineNotFound
		}
		return false, fmt.Errorf("toggle machine: %w", err)
	}
	return mm.IsSelected, nil
}

func (r *MachineRepository) Delete(ctx context.Context, id string) error {
	oid, err := machineID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete machine: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMachineNotFound
	}
	return nil
}

func (r *MachineRepository) UnselectAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"is_selected": true},
		bson.M{"$set": bson.M{"is_selected": false, "updated_at": r.now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("unselect machines: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MachineRepository) ZeroQuantities(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// $[] requires the array to exist.
	res, err := r.col.UpdateMany(ctx,
		bson.M{"ingredients.0": bson.M{"$exists": true}},
		bson.M{"$set": bson.M{"ingredients.$[].quantity": 0, "updated_at": r.now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("zero quantities: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the indexes used by listings and the selected filter.
func (r *MachineRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}},
		{Keys: bson.D{{Key: "is_selected", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
