package dto

import (
	"time"

	"github.com/fintally/fintally_backend/internal/core/domain"
)

// UpsertMappingRequest defines the data needed to create or replace a
// transaction-type mapping.
type UpsertMappingRequest struct {
	TransactionType   string `json:"transactionType" binding:"required"`
	DebitAccountCode  string `json:"debitAccountCode" binding:"required"`
	CreditAccountCode string `json:"creditAccountCode" binding:"required"`
	Description       string `json:"description"`
}

// MappingResponse defines the data returned for a transaction-type mapping.
type MappingResponse struct {
	MappingID         string    `json:"mappingID"`
	EntityID          string    `json:"entityID,omitempty"` // Empty for global defaults
	TransactionType   string    `json:"transactionType"`
	DebitAccountCode  string    `json:"debitAccountCode"`
	CreditAccountCode string    `json:"creditAccountCode"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// ToMappingResponse converts a domain.TransactionTypeMapping to its DTO.
func ToMappingResponse(m *domain.TransactionTypeMapping) MappingResponse {
	return MappingResponse{
		MappingID:         m.MappingID,
		EntityID:          m.EntityID,
		TransactionType:   m.TransactionType,
		DebitAccountCode:  m.DebitAccountCode,
		CreditAccountCode: m.CreditAccountCode,
		Description:       m.Description,
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ListMappingsResponse wraps the list of mappings visible to an entity.
type ListMappingsResponse struct {
	Mappings []MappingResponse `json:"mappings"`
}

// ToListMappingsResponse converts a slice of mappings to the list DTO.
func ToListMappingsResponse(mappings []domain.TransactionTypeMapping) ListMappingsResponse {
	res := make([]MappingResponse, len(mappings))
	for i, m := range mappings {
		res[i] = ToMappingResponse(&m)
	}
	return ListMappingsResponse{Mappings: res}
}
