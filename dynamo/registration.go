package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/Adaptare-Software/workshop-registration/slices"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var _ registration.Repository = &DB{}

type registrationDynamo struct {
	PK     string
	SK     string
	GSI1PK string
	GSI1SK string

	ID            string           `dynamodbav:"id"`
	CreatedAt     time.Time        `dynamodbav:"created_at"`
	Name          string           `dynamodbav:"name"`
	Email         string           `dynamodbav:"email"`
	Phone         string           `dynamodbav:"phone"`
	TaxID         string           `dynamodbav:"cpf_cnpj"`
	PaymentMethod pricing.Method   `dynamodbav:"payment_method"`
	Installments  int              `dynamodbav:"installments"`
	Category      pricing.Category `dynamodbav:"ticket_type"`
	Amount        float64          `dynamodbav:"amount"`
	IsSent        bool             `dynamodbav:"is_sent"`
	IsPaid        bool             `dynamodbav:"is_paid"`
}

const (
	registrationEntityName = "REGISTRATION"

	// Fixed width so GSI1SK sorts lexicographically by time.
	sortableTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

func registrationPK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationSK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationGSI1SK(createdAt time.Time, id string) string {
	return fmt.Sprintf("%s#%s#%s", registrationEntityName, createdAt.UTC().Format(sortableTimeLayout), id)
}

func registrationToDynamo(reg registration.Registration) registrationDynamo {
	return registrationDynamo{
		PK:            registrationPK(reg.ID),
		SK:            registrationSK(reg.ID),
		GSI1PK:        registrationEntityName,
		GSI1SK:        registrationGSI1SK(reg.CreatedAt, reg.ID),
		ID:            reg.ID,
		CreatedAt:     reg.CreatedAt,
		Name:          reg.Name,
		Email:         reg.Email,
		Phone:         reg.Phone,
		TaxID:         reg.TaxID,
		PaymentMethod: reg.PaymentMethod,
		Installments:  reg.Installments,
		Category:      reg.Category,
		Amount:        reg.Amount,
		IsSent:        reg.IsSent,
		IsPaid:        reg.IsPaid,
	}
}

func dynamoToRegistration(dynReg registrationDynamo) registration.Registration {
	return registration.Registration{
		ID:            dynReg.ID,
		CreatedAt:     dynReg.CreatedAt,
		Name:          dynReg.Name,
		Email:         dynReg.Email,
		Phone:         dynReg.Phone,
		TaxID:         dynReg.TaxID,
		Category:      dynReg.Category,
		PaymentMethod: dynReg.PaymentMethod,
		Installments:  dynReg.Installments,
		Amount:        dynReg.Amount,
		IsSent:        dynReg.IsSent,
		IsPaid:        dynReg.IsPaid,
	}
}

// CreateRegistration assigns the id and returns the stored row.
func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) (created registration.Registration, err error) {
	ctx, span := d.startSpan(ctx, "dynamo.CreateRegistration")
	defer func() { endSpan(span, err) }()

	reg.ID = uuid.NewString()
	reg.CreatedAt = reg.CreatedAt.UTC()
	span.SetAttributes(attribute.String("registration.id", reg.ID))

	dynamoReg := registrationToDynamo(reg)

	item, err := attributevalue.MarshalMap(dynamoReg)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError("Failed to translate registration to dynamo model", err)
	}

	expr := exprMustBuild(expression.NewBuilder().WithCondition(newEntityConditional()))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condCheckFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailedErr) {
			return registration.Registration{}, registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		}
		return registration.Registration{}, registration.NewFailedToWriteError("Failed PutItem call", err)
	}

	return reg, nil
}

// GetRegistrations pages through all registrations, newest first.
func (d *DB) GetRegistrations(ctx context.Context, limit int32, cursor *string) (resp registration.GetRegistrationsResponse, err error) {
	ctx, span := d.startSpan(ctx, "dynamo.GetRegistrations")
	defer func() { endSpan(span, err) }()

	keyCond := expression.Key("GSI1PK").Equal(expression.Value(registrationEntityName)).
		And(expression.Key("GSI1SK").BeginsWith(registrationEntityName))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to build registrations query", err)
	}

	var startKey map[string]types.AttributeValue
	if cursor != nil {
		startKey, err = decodeCursor(*cursor)
		if err != nil {
			return registration.GetRegistrationsResponse{}, registration.NewInvalidCursorError("Invalid cursor", err)
		}
	}

	result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		IndexName:                 aws.String(gsi1),
		TableName:                 aws.String(d.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		// Newest registration first
		ScanIndexForward: aws.Bool(false),
		// Fetch 1 more than limit to check if there is another page or not
		Limit:             aws.Int32(limit + 1),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to fetch registrations from dynamo", err)
	}

	var dynamoItems []registrationDynamo
	err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
	if err != nil {
		return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to unmarshal dynamo registrations", err)
	}

	hasNextPage := len(dynamoItems) > int(limit)

	var newCursor *string
	if hasNextPage && len(result.LastEvaluatedKey) > 0 {
		// Can't use LastEvalKey directly because we grabbed an extra item to check for next page
		lastItemGivenToUser := result.Items[len(result.Items)-2]
		c, encErr := encodeCursor(keyOf(result.LastEvaluatedKey, lastItemGivenToUser))
		if encErr != nil {
			return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to make cursor from last evaluated key", encErr)
		}
		newCursor = &c
	}

	span.SetAttributes(attribute.Int("registration.count", min(int(limit), len(dynamoItems))))

	return registration.GetRegistrationsResponse{
		Data: slices.Map(dynamoItems, func(v registrationDynamo) registration.Registration {
			return dynamoToRegistration(v)
		})[:min(int(limit), len(dynamoItems))],
		Cursor:      newCursor,
		HasNextPage: hasNextPage,
	}, nil
}

// UpdateRegistrationFlag writes a single boolean attribute. Concurrent
// writers are not versioned; the last one wins.
func (d *DB) UpdateRegistrationFlag(ctx context.Context, id string, flag registration.Flag, value bool) (err error) {
	ctx, span := d.startSpan(ctx, "dynamo.UpdateRegistrationFlag")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("registration.id", id),
		attribute.String("registration.flag", string(flag)),
		attribute.Bool("registration.flag_value", value),
	)

	if _, err := registration.ParseFlag(string(flag)); err != nil {
		return err
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(existingEntityConditional()).
		WithUpdate(expression.Set(expression.Name(string(flag)), expression.Value(value))))

	_, err = d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registrationPK(id)},
			"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
		},
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condCheckFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailedErr) {
			return registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q does not exist", id), err)
		}
		return registration.NewFailedToWriteError("Failed UpdateItem call", err)
	}

	return nil
}
