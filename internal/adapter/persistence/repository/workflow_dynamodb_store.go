package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultJobsTableName           = "jobs"
	defaultVisitsTableName         = "visits"
	defaultEstimatesTableName      = "estimates"
	defaultInvoicesTableName       = "invoices"
	defaultInvoiceSourcesTableName = "invoice_sources"
)

// DynamoAPI is the part of the DynamoDB client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// WorkflowDynamoStore persists jobs, visits, estimates and invoices in DynamoDB.
//
// Table requirements:
//   - one table per entity type, PK: id (string)
//   - invoice_sources, PK: source_key (string), one row per converted estimate
//
// Account scoping and optimistic concurrency are both expressed as
// condition expressions, so every write is a single conditional request.

type WorkflowDynamoStore struct {
	ddb          DynamoAPI
	tables       map[entities.EntityType]string
	sourcesTable string
	now          func() time.Time
}

var _ interfaces.IWorkflowStore = (*WorkflowDynamoStore)(nil)

func NewWorkflowDynamoStore(ddb DynamoAPI) *WorkflowDynamoStore {
	return &WorkflowDynamoStore{
		ddb: ddb,
		tables: map[entities.EntityType]string{
			entities.EntityJob:      getenvDefault("JOBS_TABLE", defaultJobsTableName),
			entities.EntityVisit:    getenvDefault("VISITS_TABLE", defaultVisitsTableName),
			entities.EntityEstimate: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
			entities.EntityInvoice:  getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		},
		sourcesTable: getenvDefault("INVOICE_SOURCES_TABLE", defaultInvoiceSourcesTableName),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (r *WorkflowDynamoStore) table(entityType entities.EntityType) (string, error) {
	name, ok := r.tables[entityType]
	if !ok {
		return "", fmt.Errorf("unsupported entity type %q", entityType)
	}
	return name, nil
}

func (r *WorkflowDynamoStore) LoadScoped(ctx context.Context, entityType entities.EntityType, id, accountID string) (entities.Entity, error) {
	table, err := r.table(entityType)
	if err != nil {
		return nil, err
	}
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	e, err := unmarshalEntity(entityType, out.Item)
	if err != nil {
		return nil, err
	}
	if e.GetAccountID() != accountID {
		return nil, nil
	}
	return e, nil
}

func (r *WorkflowDynamoStore) WriteScoped(ctx context.Context, entityType entities.EntityType, id, accountID string, expected entities.Status, patch entities.Patch) (entities.Entity, error) {
	table, err := r.table(entityType)
	if err != nil {
		return nil, err
	}
	if patch.UpdatedAt.IsZero() {
		patch.UpdatedAt = r.now()
	}
	updateExpr, values, names, err := patchUpdate(entityType, patch)
	if err != nil {
		return nil, err
	}
	values[":account_id"] = &types.AttributeValueMemberS{Value: accountID}
	values[":expected"] = &types.AttributeValueMemberS{Value: string(expected)}

	condition := "attribute_exists(#id) AND #account_id = :account_id AND #status = :expected"
	if patch.ExpectedPaidCents != nil {
		if entityType != entities.EntityInvoice {
			return nil, interfaces.ErrConflictDetected
		}
		condition += " AND #paid_cents = :expected_paid"
		names["#paid_cents"] = "paid_cents"
		values[":expected_paid"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*patch.ExpectedPaidCents, 10)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames: mergeNames(names, map[string]string{
			"#id":         "id",
			"#account_id": "account_id",
			"#status":     "status",
		}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, interfaces.ErrConflictDetected
		}
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, interfaces.ErrConflictDetected
	}
	return unmarshalEntity(entityType, out.Attributes)
}

// InsertScoped writes a new record. Invoices created from an estimate also
// reserve their source in the same transaction, which is what keeps
// conversion to one invoice per estimate.
func (r *WorkflowDynamoStore) InsertScoped(ctx context.Context, record entities.Entity) error {
	if record == nil || record.GetID() == "" || record.GetAccountID() == "" {
		return errors.New("record needs an id and an account id")
	}
	table, err := r.table(record.EntityType())
	if err != nil {
		return err
	}
	av, err := marshalEntity(record)
	if err != nil {
		return err
	}
	put := &types.Put{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}

	inv, isInvoice := record.(entities.Invoice)
	if !isInvoice || inv.SourceEstimateID == nil {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                put.TableName,
			Item:                     put.Item,
			ConditionExpression:      put.ConditionExpression,
			ExpressionAttributeNames: put.ExpressionAttributeNames,
		})
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %s %s", interfaces.ErrUniqueViolation, record.EntityType(), record.GetID())
		}
		return err
	}

	guard, err := attributevalue.MarshalMap(invoiceSourceItem{
		Key:       sourceKey(inv.AccountID, *inv.SourceEstimateID),
		InvoiceID: inv.ID,
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.sourcesTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#source_key)"),
				ExpressionAttributeNames: map[string]string{"#source_key": "source_key"},
			}},
			{Put: put},
		},
	})
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) && hasConditionalFailure(tce) {
		return fmt.Errorf("%w: invoice for estimate %s", interfaces.ErrUniqueViolation, *inv.SourceEstimateID)
	}
	return err
}

func (r *WorkflowDynamoStore) FindInvoiceBySourceEstimate(ctx context.Context, accountID, estimateID string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.sourcesTable),
		Key: map[string]types.AttributeValue{
			"source_key": &types.AttributeValueMemberS{Value: sourceKey(accountID, estimateID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}
	var guard invoiceSourceItem
	if err := attributevalue.UnmarshalMap(out.Item, &guard); err != nil {
		return entities.Invoice{}, err
	}

	e, err := r.LoadScoped(ctx, entities.EntityInvoice, guard.InvoiceID, accountID)
	if err != nil || e == nil {
		return entities.Invoice{}, err
	}
	return e.(entities.Invoice), nil
}

func hasConditionalFailure(tce *types.TransactionCanceledException) bool {
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	// Some emulators omit reasons; a cancelled conditional put is the only
	// cancellation this transaction can produce.
	return len(tce.CancellationReasons) == 0
}

func marshalEntity(e entities.Entity) (map[string]types.AttributeValue, error) {
	switch v := e.(type) {
	case entities.Job:
		return attributevalue.MarshalMap(toJobItem(v))
	case entities.Visit:
		return attributevalue.MarshalMap(toVisitItem(v))
	case entities.Estimate:
		return attributevalue.MarshalMap(toEstimateItem(v))
	case entities.Invoice:
		return attributevalue.MarshalMap(toInvoiceItem(v))
	}
	return nil, fmt.Errorf("unsupported entity %T", e)
}

func unmarshalEntity(entityType entities.EntityType, av map[string]types.AttributeValue) (entities.Entity, error) {
	switch entityType {
	case entities.EntityJob:
		var it jobItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		return fromJobItem(it), nil
	case entities.EntityVisit:
		var it visitItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		return fromVisitItem(it), nil
	case entities.EntityEstimate:
		var it estimateItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		return fromEstimateItem(it), nil
	case entities.EntityInvoice:
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		return fromInvoiceItem(it), nil
	}
	return nil, fmt.Errorf("unsupported entity type %q", entityType)
}

// patchUpdate builds the SET expression for the patch fields that exist on
// the entity's table.
func patchUpdate(entityType entities.EntityType, p entities.Patch) (string, map[string]types.AttributeValue, map[string]string, error) {
	var sets []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}

	set := func(attr string, v types.AttributeValue) {
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
		names["#"+attr] = attr
		values[":"+attr] = v
	}
	str := func(s string) types.AttributeValue { return &types.AttributeValueMemberS{Value: s} }
	num := func(n int64) types.AttributeValue {
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
	}

	if p.Status != nil {
		// #status is also used by the condition; the new value gets its own placeholder.
		sets = append(sets, "#status = :status")
		values[":status"] = str(string(*p.Status))
	}
	set("updated_at", str(formatTime(p.UpdatedAt)))

	switch entityType {
	case entities.EntityVisit:
		if p.ArrivedAt != nil {
			set("arrived_at", str(formatTime(*p.ArrivedAt)))
		}
		if p.CompletedAt != nil {
			set("completed_at", str(formatTime(*p.CompletedAt)))
		}
		if p.AssignedUserID != nil {
			set("assigned_user_id", str(*p.AssignedUserID))
		}
		if p.TechNotes != nil {
			set("tech_notes", str(*p.TechNotes))
		}
	case entities.EntityEstimate:
		if p.LineItems != nil {
			av, err := attributevalue.Marshal(p.LineItems)
			if err != nil {
				return "", nil, nil, err
			}
			set("line_items", av)
		}
		if p.TaxRateBps != nil {
			set("tax_rate_bps", num(*p.TaxRateBps))
		}
		if p.SubtotalCents != nil {
			set("subtotal_cents", num(*p.SubtotalCents))
		}
		if p.TaxCents != nil {
			set("tax_cents", num(*p.TaxCents))
		}
		if p.TotalCents != nil {
			set("total_cents", num(*p.TotalCents))
		}
	case entities.EntityInvoice:
		if p.PaidCents != nil {
			set("paid_cents", num(*p.PaidCents))
		}
		if p.DueAt != nil {
			set("due_at", str(formatTime(*p.DueAt)))
		}
	}

	return "SET " + strings.Join(sets, ", "), values, names, nil
}
