package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/tva"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds the free text attached to a transaction
const MaxDescriptionLength = 512

// TransactionParams holds the inputs of NewTransaction.
// ID and CreatedAt are generated when left empty.
type TransactionParams struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	TVARate     decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// Transaction is an immutable record of an amount, its tva rate and the
// tax figures derived from them
type Transaction struct {
	id          string
	userID      string
	amount      decimal.Decimal
	tvaRate     decimal.Decimal
	description string
	createdAt   time.Time
	tva         decimal.Decimal
	total       decimal.Decimal
}

// NewTransaction validates the params and derives tva and total through the calculator
func NewTransaction(p TransactionParams) (*Transaction, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperror.ErrValidation)
	}
	if !hasMoneyScale(p.Amount) {
		return nil, fmt.Errorf("%w: amount must have at most %d decimals, got %s", apperror.ErrValidation, tva.Scale, p.Amount.String())
	}
	if !hasMoneyScale(p.TVARate) {
		return nil, fmt.Errorf("%w: tva_rate must have at most %d decimals, got %s", apperror.ErrValidation, tva.Scale, p.TVARate.String())
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", apperror.ErrValidation, MaxDescriptionLength)
	}

	tvaAmount, err := tva.Compute(p.Amount, p.TVARate)
	if err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = Now()
	}

	return &Transaction{
		id:          id,
		userID:      p.UserID,
		amount:      p.Amount,
		tvaRate:     p.TVARate,
		description: p.Description,
		createdAt:   createdAt.UTC(),
		tva:         tvaAmount,
		total:       tva.Total(p.Amount, tvaAmount),
	}, nil
}

func hasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(tva.Scale))
}

func (t *Transaction) ID() string { return t.id }
func (t *Transaction) UserID() string { return t.userID }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) TVARate() decimal.Decimal { return t.tvaRate }
func (t *Transaction) Description() string { return t.description }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) TVA() decimal.Decimal { return t.tva }
func (t *Transaction) Total() decimal.Decimal { return t.total }

// Year is the calendar year of creation, used for time-range queries
func (t *Transaction) Year() int {
	return t.createdAt.Year()
}

// ToResponse renders the transaction for the API
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:          t.id,
		UserID:      t.userID,
		Amount:      t.amount.InexactFloat64(),
		TVARate:     t.tvaRate.InexactFloat64(),
		Description: t.description,
		CreatedAt:   t.createdAt,
		TVA:         t.tva.InexactFloat64(),
		Total:       t.total.InexactFloat64(),
	}
}

// ToDocument renders the transaction for a document store
func (t *Transaction) ToDocument() TransactionDocument {
	r := t.ToResponse()
	return TransactionDocument{
		ID:          r.ID,
		UserID:      r.UserID,
		Amount:      r.Amount,
		TVARate:     r.TVARate,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		TVA:         r.TVA,
		Total:       r.Total,
		Year:        t.Year(),
	}
}

// TransactionDocument is the stored shape of a transaction.
// tva and total are kept for readers of the raw store but are recomputed on load.
type TransactionDocument struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	UserID      string    `json:"user_id" bson:"user_id" db:"user_id"`
	Amount      float64   `json:"amount" bson:"amount" db:"amount"`
	TVARate     float64   `json:"tva_rate" bson:"tva_rate" db:"tva_rate"`
	Description string    `json:"description" bson:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	TVA         float64   `json:"tva" bson:"tva" db:"tva"`
	Total       float64   `json:"total" bson:"total" db:"total"`
	Year        int       `json:"year" bson:"year" db:"year"`
}

// ToTransaction rebuilds the entity from its stored shape
func (d TransactionDocument) ToTransaction() (*Transaction, error) {
	amount, err := tva.FromFloat(d.Amount)
	if err != nil {
		return nil, err
	}
	rate, err := tva.FromFloat(d.TVARate)
	if err != nil {
		return nil, err
	}
	return NewTransaction(TransactionParams{
		ID:          d.ID,
		UserID:      d.UserID,
		Amount:      amount,
		TVARate:     rate,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	})
}

// TVARequest is the body of the tva and transaction endpoints
type TVARequest struct {
	Amount      *float64 `json:"amount" validate:"required,gt=0,money"`
	TVARate     *float64 `json:"tva_rate" validate:"required,gte=0,lte=100,money"`
	Description string   `json:"description" validate:"max=512"`
}

// TVAResponse is returned by the tva calculation endpoint
type TVAResponse struct {
	TVA    float64 `json:"tva"`
	Total  float64 `json:"total"`
	UserID string  `json:"user_id"`
}

// TransactionResponse is the API representation of a persisted transaction
type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	TVARate     float64   `json:"tva_rate"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	TVA         float64   `json:"tva"`
	Total       float64   `json:"total"`
}

// TransactionCreatedEvent is published once a transaction has been saved
type TransactionCreatedEvent struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	TVARate       float64   `json:"tva_rate"`
	TVA           float64   `json:"tva"`
	Total         float64   `json:"total"`
	Year          int       `json:"year"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewTransactionCreatedEvent builds the event payload for t
func NewTransactionCreatedEvent(t *Transaction) TransactionCreatedEvent {
	r := t.ToResponse()
	return TransactionCreatedEvent{
		TransactionID: r.ID,
		UserID:        r.UserID,
		Amount:        r.Amount,
		TVARate:       r.TVARate,
		TVA:           r.TVA,
		Total:         r.Total,
		Year:          t.Year(),
		CreatedAt:     r.CreatedAt,
	}
}
