package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/resmedx/noticeboard/internal/models"
)

// NoticeStore handles notice metadata CRUD in MongoDB.
type NoticeStore struct {
	col *mongo.Collection
}

func NewNoticeStore(db *mongo.Database) *NoticeStore {
	return &NoticeStore{col: db.Collection("notices")}
}

func (s *NoticeStore) Insert(ctx context.Context, n *models.Notice) (string, error) {
	n.UploadedAt = time.Now()
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return "", fmt.Errorf("insert notice: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	n.ID = oid
	return oid.Hex(), nil
}

// List returns every notice. No pagination; the collection is small.
func (s *NoticeStore) List(ctx context.Context) ([]models.Notice, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer cur.Close(ctx)

	var notices []models.Notice
	if err := cur.All(ctx, &notices); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}
	return notices, nil
}

func (s *NoticeStore) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var n models.Notice
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return &n, nil
}

// GetByFileName looks a notice up by its generated blob name.
func (s *NoticeStore) GetByFileName(ctx context.Context, fileName string) (*models.Notice, error) {
	var n models.Notice
	if err := s.col.FindOne(ctx, bson.M{"fileName": fileName}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return &n, nil
}

// UpdateOriginalName changes the display filename of a notice.
func (s *NoticeStore) UpdateOriginalName(ctx context.Context, id, originalName string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"originalName": originalName}})
	if err != nil {
		return fmt.Errorf("update notice: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NoticeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
