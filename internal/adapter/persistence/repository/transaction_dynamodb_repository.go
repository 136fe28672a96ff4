package repository

import (
	"context"
	"time"

	"chapa_billing/internal/domain/entities"
	"chapa_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTransactionsTableName = "transactions"
	transactionsTxRefIndex       = "tx_ref-index"
)

type transactionItem struct {
	ID          string                 `dynamodbav:"id"`
	TxRef       string                 `dynamodbav:"tx_ref"`
	Email       string                 `dynamodbav:"email"`
	FirstName   string                 `dynamodbav:"first_name"`
	LastName    string                 `dynamodbav:"last_name"`
	Amount      float64                `dynamodbav:"amount"`
	Currency    string                 `dynamodbav:"currency"`
	CallbackURL string                 `dynamodbav:"callback_url,omitempty"`
	CheckoutURL string                 `dynamodbav:"checkout_url,omitempty"`
	Status      string                 `dynamodbav:"status"`
	CreatedAt   string                 `dynamodbav:"created_at"`
	UpdatedAt   string                 `dynamodbav:"updated_at"`
	Payload     map[string]interface{} `dynamodbav:"chapa_payload,omitempty"`
	PayloadRaw  string                 `dynamodbav:"chapa_payload_raw,omitempty"`
}

// TransactionDynamoRepository persists Transaction entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: tx_ref-index (PK: tx_ref)

type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, tx entities.Transaction) (entities.Transaction, error) {
	it := toTransactionItem(tx)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	return tx, nil
}

func (r *TransactionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) GetByTxRef(ctx context.Context, txRef string) (entities.Transaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(transactionsTxRefIndex),
		KeyConditionExpression: aws.String("tx_ref = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: txRef},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	if len(out.Items) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) Save(ctx context.Context, tx entities.Transaction) (entities.Transaction, error) {
	it := toTransactionItem(tx)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	return tx, nil
}

func toTransactionItem(tx entities.Transaction) transactionItem {
	return transactionItem{
		ID:          tx.ID,
		TxRef:       tx.TxRef,
		Email:       tx.Email,
		FirstName:   tx.FirstName,
		LastName:    tx.LastName,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		CallbackURL: tx.CallbackURL,
		CheckoutURL: tx.CheckoutURL,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   tx.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Payload:     tx.ChapaPayload,
		PayloadRaw:  string(tx.ChapaPayloadRaw),
	}
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Transaction{
		ID:              it.ID,
		TxRef:           it.TxRef,
		Email:           it.Email,
		FirstName:       it.FirstName,
		LastName:        it.LastName,
		Amount:          it.Amount,
		Currency:        it.Currency,
		CallbackURL:     it.CallbackURL,
		CheckoutURL:     it.CheckoutURL,
		Status:          entities.TransactionStatus(it.Status),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		ChapaPayload:    it.Payload,
		ChapaPayloadRaw: []byte(it.PayloadRaw),
	}
}
