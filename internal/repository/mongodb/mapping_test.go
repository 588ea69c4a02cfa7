package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"learnit/internal/domain"
	"learnit/internal/repository"
)

func TestOwnedFilter(t *testing.T) {
	id := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	filter, err := ownedFilter(id.Hex(), owner.Hex())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": id, "user": owner}, filter)

	_, err = ownedFilter("not-an-object-id", owner.Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = ownedFilter(id.Hex(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReplaceUpdate(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	update := replaceUpdate(domain.PostChanges{Title: "t", URL: "https://u", Status: domain.PostStatusToLearn}, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "t", set["title"])
	assert.Equal(t, "", set["description"])
	assert.Equal(t, "https://u", set["url"])
	assert.Equal(t, domain.PostStatusToLearn, set["status"])
	assert.Equal(t, now, set["updatedAt"])
	assert.NotContains(t, set, "user")
}

func TestDocumentRoundTrip(t *testing.T) {
	owner := primitive.NewObjectID()
	doc := postDocument{
		ID:          primitive.NewObjectID(),
		Title:       "Learn Go",
		Description: "d",
		URL:         "https://go.dev",
		Status:      domain.PostStatusLearning,
		User:        owner,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, owner, fields["user"])
	assert.Contains(t, fields, "createdAt")

	post := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), post.ID)
	assert.Equal(t, owner.Hex(), post.OwnerID)
	assert.Equal(t, "Learn Go", post.Title)
	assert.Equal(t, doc.UpdatedAt, post.UpdatedAt)

	user := userDocument{ID: owner, Username: "alice", Password: "$argon2id$..."}.toDomain()
	assert.Equal(t, owner.Hex(), user.ID)
	assert.Equal(t, "$argon2id$...", user.PasswordHash)
}
