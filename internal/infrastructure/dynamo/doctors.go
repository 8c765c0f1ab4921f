package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// DoctorRepo provides typed DynamoDB operations for the doctors table.
type DoctorRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDoctorRepo(client *dynamodb.Client, tableName string) *DoctorRepo {
	return &DoctorRepo{client: client, tableName: tableName}
}

func (r *DoctorRepo) Put(ctx context.Context, d *domain.Doctor) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal doctor: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DoctorRepo) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("doctor_id", doctorID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("doctor not found: %w", domain.ErrNotFound)
	}
	var d domain.Doctor
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepo) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

func (r *DoctorRepo) GetBySlug(ctx context.Context, slug string) (*domain.Doctor, error) {
	return r.queryGSI(ctx, "slug-index", "slug", slug)
}

// List returns enabled doctors, optionally filtered by specialty.
func (r *DoctorRepo) List(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("enable = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberN{Value: "1"},
		},
	}
	if specialty != "" {
		input.FilterExpression = aws.String("enable = :t AND specialty = :s")
		input.ExpressionAttributeValues[":s"] = &types.AttributeValueMemberS{Value: specialty}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var doctors []domain.Doctor
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, doctorID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("doctor_id", doctorID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *DoctorRepo) SoftDelete(ctx context.Context, doctorID string) error {
	now := time.Now().UTC()
	return r.Update(ctx, doctorID, map[string]interface{}{"enable": 0, "deleted_at": now.Format(time.RFC3339)})
}

func (r *DoctorRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Doctor, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("doctor not found: %w", domain.ErrNotFound)
	}
	var d domain.Doctor
	if err := attributevalue.UnmarshalMap(out.Items[0], &d); err != nil {
		return nil, err
	}
	return &d, nil
}
