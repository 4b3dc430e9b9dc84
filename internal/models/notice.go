package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notice is the metadata record for one uploaded PDF, stored in the
// notices collection. FileName is the generated name of the blob on
// disk (or in the bucket); OriginalName is what the client uploaded.
type Notice struct {
	ID           primitive.ObjectID `json:"id"           bson:"_id,omitempty"`
	Title        string             `json:"title"        bson:"title"`
	OriginalName string             `json:"originalName" bson:"originalName"`
	FileName     string             `json:"fileName"     bson:"fileName"`
	FilePath     string             `json:"filePath"     bson:"filePath"`
	UploadedAt   time.Time          `json:"uploadedAt"   bson:"uploadedAt"`
}

// UpdateNoticeRequest is the JSON body for PATCH /api/v1/notices/{id}.
type UpdateNoticeRequest struct {
	OriginalName string `json:"originalName"`
}
