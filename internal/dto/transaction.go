package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to post a business
// transaction. TransactionID is optional; callers that supply one get
// idempotent retries, callers that omit it get a server-generated ID.
type CreateTransactionRequest struct {
	TransactionID *string           `json:"transactionID" binding:"omitempty,max=64"`
	Type          string            `json:"type" binding:"required"`
	Amount        decimal.Decimal   `json:"amount" binding:"required,dpositive"`
	Date          time.Time         `json:"date" binding:"required"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Metadata      map[string]string `json:"metadata"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string            `json:"transactionID"`
	EntityID      string            `json:"entityID"`
	Type          string            `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description,omitempty"`
	Category      string            `json:"category,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
}

// SuggestedAccounts names the two accounts the posting engine resolved for a
// transaction, so callers can show the bookkeeping without a second lookup.
type SuggestedAccounts struct {
	DebitAccountCode  string `json:"debitAccountCode"`
	DebitAccountName  string `json:"debitAccountName"`
	CreditAccountCode string `json:"creditAccountCode"`
	CreditAccountName string `json:"creditAccountName"`
}

// CreateTransactionResponse bundles the stored transaction with the journal
// entry the posting engine derived from it.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Suggested   SuggestedAccounts   `json:"suggested"`
	Journal     EntryResponse       `json:"journal"`
	Created     bool                `json:"created"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		EntityID:      txn.EntityID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		Date:          txn.Date,
		Description:   txn.Description,
		Category:      txn.Category,
		Metadata:      txn.Metadata,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToCreateTransactionResponse converts a posting result to the response DTO.
func ToCreateTransactionResponse(result *domain.PostingResult) CreateTransactionResponse {
	return CreateTransactionResponse{
		Transaction: ToTransactionResponse(&result.Transaction),
		Suggested: SuggestedAccounts{
			DebitAccountCode:  result.DebitAccount.Code,
			DebitAccountName:  result.DebitAccount.Name,
			CreditAccountCode: result.CreditAccount.Code,
			CreditAccountName: result.CreditAccount.Name,
		},
		Journal: ToEntryResponse(&result.Entry),
		Created: result.Created,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of transactions to the list DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
