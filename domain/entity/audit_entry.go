package entity

import "time"

// Audit action types.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// ValidAction reports whether s is a known audit action type.
func ValidAction(s string) bool {
	return s == ActionCreate || s == ActionUpdate || s == ActionDelete
}

// FieldChange records a single tracked field transition on an update.
type FieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// AuditEntry is an immutable record of a completed product mutation.
//
// Actor fields and Brand/SKU are snapshots taken at mutation time, not live
// references; they stay valid after the admin profile or the product
// changes. ProductID is a weak reference and may point at a product that
// has since been deleted.
type AuditEntry struct {
	ID         string                 `json:"id"`
	ActionType string                 `json:"actionType"`
	ProductID  string                 `json:"productId"`
	ActorID    string                 `json:"actorId"`
	ActorName  string                 `json:"actorName"`
	ActorEmail string                 `json:"actorEmail"`
	Brand      string                 `json:"brand"`
	SKU        string                 `json:"sku"`
	Changes    map[string]FieldChange `json:"changes,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
