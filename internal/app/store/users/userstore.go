package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/campushub/internal/app/system/normalize"
	"github.com/campushub/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "manager"|"teacher"|"student"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// PasswordHash must already be hashed; see authutil.HashPassword.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Department = normalize.Department(u.Department)
	if u.Status == "" {
		u.Status = "active"
	}
	u.Status = normalize.Status(u.Status)

	switch u.Role {
	case models.RoleManager, models.RoleTeacher, models.RoleStudent:
	default:
		return models.User{}, errBadRole
	}
	switch u.Status {
	case "active", "disabled":
	default:
		return models.User{}, errBadStatus
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetPassword replaces a user's password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		},
	})
	return err
}

// SetStatus flips a user between active and disabled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	switch status {
	case "active", "disabled":
	default:
		return errBadStatus
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	})
	return err
}

// ListByRole returns active users with the given role, sorted by folded
// name for stable display order.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"role": normalize.Role(role), "status": "active"},
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListFilter narrows List. Zero values mean "any".
type ListFilter struct {
	Role   string // manager | teacher | student
	Status string // active | disabled
	Search string // name or email prefix
}

// List returns users matching the filter, sorted by folded name. Search
// matches a case-folded prefix of the full name or a lowercase prefix of
// the email, same as the indexed range scans used elsewhere.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.User, error) {
	filter := bson.M{}
	if r := normalize.Role(f.Role); r != "" {
		filter["role"] = r
	}
	if st := normalize.Status(f.Status); st == "active" || st == "disabled" {
		filter["status"] = st
	}
	if q := normalize.Name(f.Search); q != "" {
		qFold := text.Fold(q)
		qEmail := normalize.Email(q)
		filter["$or"] = []bson.M{
			{"full_name_ci": bson.M{"$gte": qFold, "$lt": qFold + "￿"}},
			{"email": bson.M{"$gte": qEmail, "$lt": qEmail + "￿"}},
		}
	}

	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole returns how many active accounts hold each role.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, role := range []string{models.RoleManager, models.RoleTeacher, models.RoleStudent} {
		n, err := s.c.CountDocuments(ctx, bson.M{"role": role, "status": "active"})
		if err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, nil
}
