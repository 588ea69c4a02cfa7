package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnit/internal/domain"
	"learnit/internal/repository"
)

type postDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	URL         string             `bson:"url"`
	Status      string             `bson:"status"`
	User        primitive.ObjectID `bson:"user"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d postDocument) toDomain() *domain.Post {
	return &domain.Post{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		Status:      d.Status,
		OwnerID:     d.User.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ownedFilter matches a post by id and owner. Ids that are not valid
// ObjectIDs cannot match anything and report ErrNotFound.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return bson.M{"_id": oid, "user": owner}, nil
}

func replaceUpdate(changes domain.PostChanges, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"title":       changes.Title,
		"description": changes.Description,
		"url":         changes.URL,
		"status":      changes.Status,
		"updatedAt":   now,
	}}
}

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

func (r *PostRepository) Init(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create posts index: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	owner, err := primitive.ObjectIDFromHex(post.OwnerID)
	if err != nil {
		return "", fmt.Errorf("invalid owner id %q: %w", post.OwnerID, err)
	}

	now := time.Now().UTC()
	doc := postDocument{
		ID:          primitive.NewObjectID(),
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL,
		Status:      post.Status,
		User:        owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo insert post: %w", err)
	}

	post.ID = doc.ID.Hex()
	post.CreatedAt = now
	post.UpdatedAt = now
	return post.ID, nil
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []domain.Post{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, *doc.toDomain())
	}
	return posts, nil
}

// UpdateOwned relies on findOneAndUpdate, which checks the filter and applies
// the update as one server-side operation.
func (r *PostRepository) UpdateOwned(ctx context.Context, id, ownerID string, changes domain.PostChanges) (*domain.Post, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDocument
	err = r.col.FindOneAndUpdate(ctx, filter, replaceUpdate(changes, time.Now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("mongo update post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Post, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("mongo delete post: %w", err)
	}
	return doc.toDomain(), nil
}
