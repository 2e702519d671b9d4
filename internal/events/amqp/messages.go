package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

// EventTransactionRecorded is the type of the message sent after a write.
const EventTransactionRecorded = "transaction.recorded"

// TransactionRecorded is the JSON body of a transaction.recorded message.
// Amounts travel as decimal strings.
type TransactionRecorded struct {
	Event         string    `json:"event"`
	UserID        uuid.UUID `json:"user_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	Category      string    `json:"category"`
	Period        string    `json:"period"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionRecorded builds the message for txn.
func NewTransactionRecorded(userID uuid.UUID, txn ledger.Transaction) *TransactionRecorded {
	return &TransactionRecorded{
		Event:         EventTransactionRecorded,
		UserID:        userID,
		TransactionID: txn.ID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount.String(),
		Description:   txn.Description,
		Date:          txn.Date.Format(time.DateOnly),
		Category:      txn.Category,
		Period:        ledger.PeriodOf(txn.Date).String(),
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedFromJSON decodes a message body.
func TransactionRecordedFromJSON(data []byte) (*TransactionRecorded, error) {
	var msg TransactionRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
