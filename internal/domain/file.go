package domain

import "time"

// File records an uploaded object (doctor profile photo) stored in S3.
type File struct {
	FileID      string     `json:"id" dynamodbav:"file_id"`
	OwnerID     string     `json:"owner_id" dynamodbav:"owner_id"`
	Key         string     `json:"key" dynamodbav:"s3_key"`
	ContentType string     `json:"content_type" dynamodbav:"content_type"`
	Size        int64      `json:"size" dynamodbav:"size"`
	URL         string     `json:"url" dynamodbav:"url"`
	Enable      int        `json:"enable" dynamodbav:"enable"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
}
