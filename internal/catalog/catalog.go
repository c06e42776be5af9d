// Package catalog defines the collection names and typed records used by the
// CC Goodies API on top of the schemaless document store.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carmelngoyi/ccgoodies/internal/store"
)

// Reserved collections.
const (
	Users          = "users"
	Orders         = "orders"
	BankingDetails = "userBankingDetails"
)

// Categories are the product collections exposed as CRUD route groups. Each
// one maps 1:1 to a document collection of the same name.
var Categories = []string{
	"products",
	"bakery",
	"beverages",
	"cereals",
	"dairy",
	"fruitsandveggies",
	"poultry",
	"snacks",
	"appliances",
}

// User is the identity record stored in the users collection. Password holds
// the codec-encoded secret at rest, never the plaintext.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// BankingDetail is a payment-method capture tied to a user email. Expiry and
// CVV are accepted on the wire but never persisted.
type BankingDetail struct {
	ID            string    `json:"_id,omitempty"`
	Email         string    `json:"email"`
	Method        string    `json:"method"`
	CardNumber    string    `json:"cardNumber"`
	AccountNumber string    `json:"accountNumber"`
	BankName      string    `json:"bankName"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// ToDocument converts a typed record into a store document.
func ToDocument(v any) (store.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return doc, nil
}

// FromDocument converts a store document into the typed record pointed to by
// v. Unknown document fields are dropped.
func FromDocument(doc store.Document, v any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}
