package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leanios/access-gate/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository on the profiles collection.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

type profileDoc struct {
	ID         string    `bson:"_id"`
	Email      string    `bson:"email"`
	FirstName  string    `bson:"first_name,omitempty"`
	LastName   string    `bson:"last_name,omitempty"`
	Role       string    `bson:"role"`
	IsDisabled bool      `bson:"is_disabled"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// accessDoc is the projection read on every admin-gated request.
type accessDoc struct {
	Role       string `bson:"role"`
	IsDisabled bool   `bson:"is_disabled"`
}

// FindAccess reads role and is_disabled for id. Documents whose fields have
// the wrong BSON type or an unknown role are reported as ErrMalformedProfile.
func (r *ProfileRepository) FindAccess(ctx context.Context, id string) (domain.Access, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"role": 1, "is_disabled": 1})
	res := r.col.FindOne(ctx, bson.M{"_id": id}, opts)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Access{}, domain.ErrProfileNotFound
		}
		return domain.Access{}, fmt.Errorf("find profile: %w", err)
	}

	var doc accessDoc
	if err := res.Decode(&doc); err != nil {
		return domain.Access{}, fmt.Errorf("%w: %v", domain.ErrMalformedProfile, err)
	}
	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		return domain.Access{}, err
	}
	return domain.Access{Role: role, Disabled: doc.IsDisabled}, nil
}

// List returns all profiles, newest first. Profiles that cannot be mapped
// are reported as an error rather than skipped.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer cur.Close(ctx)

	profiles := make([]*domain.Profile, 0)
	for cur.Next(ctx) {
		var doc profileDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedProfile, err)
		}
		p, err := toProfile(doc)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

// SetRole updates the role of id.
func (r *ProfileRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	return r.update(ctx, id, bson.M{"role": string(role)})
}

// SetDisabled updates the disabled flag of id.
func (r *ProfileRepository) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return r.update(ctx, id, bson.M{"is_disabled": disabled})
}

// Delete removes the profile of id.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) update(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the admin listing.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}

func toProfile(doc profileDoc) (*domain.Profile, error) {
	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", doc.ID, err)
	}
	return &domain.Profile{
		ID:        doc.ID,
		Email:     doc.Email,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Role:      role,
		Disabled:  doc.IsDisabled,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
