package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// PrescriptionRepo provides typed DynamoDB operations for the prescriptions table.
type PrescriptionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPrescriptionRepo(client *dynamodb.Client, tableName string) *PrescriptionRepo {
	return &PrescriptionRepo{client: client, tableName: tableName}
}

func (r *PrescriptionRepo) Put(ctx context.Context, p *domain.Prescription) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal prescription: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PrescriptionRepo) Get(ctx context.Context, prescriptionID string) (*domain.Prescription, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("prescription_id", prescriptionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("prescription not found: %w", domain.ErrNotFound)
	}
	var p domain.Prescription
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionRepo) ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return r.queryIndex(ctx, "patient_id-index", "patient_id", patientID)
}

func (r *PrescriptionRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]domain.Prescription, error) {
	return r.queryIndex(ctx, "appointment_id-index", "appointment_id", appointmentID)
}

func (r *PrescriptionRepo) queryIndex(ctx context.Context, index, attr, value string) ([]domain.Prescription, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var list []domain.Prescription
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &list); err != nil {
		return nil, err
	}
	return list, nil
}
