package list

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo works on the lists array of documents in the users collection.
type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database, collection string) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection(collection),
	}
}

// GetLists returns an empty slice, not an error, when the user is absent.
func (r *MongoRepo) GetLists(ctx context.Context, username string) ([]List, error) {
	var doc struct {
		Lists []List `bson:"lists"`
	}

	err := r.collection.FindOne(
		ctx,
		bson.M{"username": username},
		options.FindOne().SetProjection(bson.M{"_id": 0, "lists": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	if doc.Lists == nil {
		return []List{}, nil
	}
	return doc.Lists, nil
}

func (r *MongoRepo) AddList(ctx context.Context, username, name string) (bool, error) {
	return r.update(ctx,
		bson.M{"username": username},
		bson.M{"$push": bson.M{"lists": List{Name: name, Movies: make([]Movie, 0)}}},
	)
}

// DeleteList pulls every list with the given name.
func (r *MongoRepo) DeleteList(ctx context.Context, username, name string) (bool, error) {
	return r.update(ctx,
		bson.M{"username": username},
		bson.M{"$pull": bson.M{"lists": bson.M{"name": name}}},
	)
}

// RenameList renames the first list matching oldName.
func (r *MongoRepo) RenameList(ctx context.Context, username, oldName, newName string) (bool, error) {
	return r.update(ctx,
		bson.M{"username": username, "lists.name": oldName},
		bson.M{"$set": bson.M{"lists.$.name": newName}},
	)
}

func (r *MongoRepo) AddMovie(ctx context.Context, username, listName string, movie Movie) (bool, error) {
	return r.update(ctx,
		bson.M{"username": username, "lists.name": listName},
		bson.M{"$push": bson.M{"lists.$.movies": movie}},
	)
}

// RemoveMovie pulls every entry with movieID from the first list matching listName.
func (r *MongoRepo) RemoveMovie(ctx context.Context, username, listName, movieID string) (bool, error) {
	return r.update(ctx,
		bson.M{"username": username, "lists.name": listName},
		bson.M{"$pull": bson.M{"lists.$.movies": bson.M{"movie_id": movieID}}},
	)
}

// UpdateMovieRating sets the rating on every movie with movieID inside every
// list named listName. Colliding names or ids are all updated at once.
func (r *MongoRepo) UpdateMovieRating(ctx context.Context, username, listName, movieID string, rating float64) (bool, error) {
	filter := bson.M{
		"username":              username,
		"lists.name":            listName,
		"lists.movies.movie_id": movieID,
	}
	update := bson.M{
		"$set": bson.M{"lists.$[listElem].movies.$[movieElem].rating": rating},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"listElem.name": listName},
			bson.M{"movieElem.movie_id": movieID},
		},
	})

	return r.update(ctx, filter, update, opts)
}

func (r *MongoRepo) update(ctx context.Context, filter, update bson.M, opts ...*options.UpdateOptions) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return false, fmt.Errorf("failed to update lists: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
