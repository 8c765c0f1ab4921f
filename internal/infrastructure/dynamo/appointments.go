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

// AppointmentRepo provides typed DynamoDB operations for the appointments table.
// GSIs: patient_id-date-index (hash patient_id, range date),
// doctor_id-date-index (hash doctor_id, range date).
type AppointmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAppointmentRepo(client *dynamodb.Client, tableName string) *AppointmentRepo {
	return &AppointmentRepo{client: client, tableName: tableName}
}

func (r *AppointmentRepo) Put(ctx context.Context, a *domain.Appointment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal appointment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AppointmentRepo) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("appointment_id", appointmentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("appointment not found: %w", domain.ErrNotFound)
	}
	var a domain.Appointment
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return r.queryIndex(ctx, "patient_id-date-index", "patient_id", patientID, "")
}

// ListByDoctor returns a doctor's appointments, optionally restricted to one date.
func (r *AppointmentRepo) ListByDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error) {
	return r.queryIndex(ctx, "doctor_id-date-index", "doctor_id", doctorID, date)
}

// FindBooked returns the booked appointment occupying the given doctor slot,
// or ErrNotFound when the slot is free.
func (r *AppointmentRepo) FindBooked(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("doctor_id-date-index"),
		KeyConditionExpression: aws.String("doctor_id = :d AND #dt = :date"),
		FilterExpression:       aws.String("slot = :slot AND #st = :booked"),
		ExpressionAttributeNames: map[string]string{
			"#dt": "date",
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d":      &types.AttributeValueMemberS{Value: doctorID},
			":date":   &types.AttributeValueMemberS{Value: date},
			":slot":   &types.AttributeValueMemberS{Value: slot},
			":booked": &types.AttributeValueMemberS{Value: domain.AppointmentBooked},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("appointment not found: %w", domain.ErrNotFound)
	}
	var a domain.Appointment
	if err := attributevalue.UnmarshalMap(out.Items[0], &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("appointment_id", appointmentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AppointmentRepo) queryIndex(ctx context.Context, index, attr, value, date string) ([]domain.Appointment, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		ScanIndexForward:          aws.Bool(false), // newest first
	}
	if date != "" {
		input.KeyConditionExpression = aws.String("#a = :v AND #dt = :date")
		input.ExpressionAttributeNames["#dt"] = "date"
		input.ExpressionAttributeValues[":date"] = &types.AttributeValueMemberS{Value: date}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var appts []domain.Appointment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
