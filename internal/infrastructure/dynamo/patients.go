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

// PatientRepo provides typed DynamoDB operations for the patients table.
type PatientRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPatientRepo(client *dynamodb.Client, tableName string) *PatientRepo {
	return &PatientRepo{client: client, tableName: tableName}
}

func (r *PatientRepo) Put(ctx context.Context, p *domain.Patient) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal patient: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PatientRepo) Get(ctx context.Context, patientID string) (*domain.Patient, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("patient_id", patientID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("patient not found: %w", domain.ErrNotFound)
	}
	var p domain.Patient
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) GetByPhone(ctx context.Context, phone string) (*domain.Patient, error) {
	return r.queryGSI(ctx, "phone-index", "phone", phone)
}

func (r *PatientRepo) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

func (r *PatientRepo) Update(ctx context.Context, patientID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("patient_id", patientID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *PatientRepo) SoftDelete(ctx context.Context, patientID string) error {
	now := time.Now().UTC()
	return r.Update(ctx, patientID, map[string]interface{}{"enable": 0, "deleted_at": now.Format(time.RFC3339)})
}

func (r *PatientRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Patient, error) {
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
		return nil, fmt.Errorf("patient not found: %w", domain.ErrNotFound)
	}
	var p domain.Patient
	if err := attributevalue.UnmarshalMap(out.Items[0], &p); err != nil {
		return nil, err
	}
	return &p, nil
}
