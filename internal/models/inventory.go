package models

import "time"

const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"

	OperationAdd      = "add"
	OperationSubtract = "subtract"
)

type InventoryItem struct {
	ID        int64     `db:"id" json:"id"`
	Model     string    `db:"model" json:"model"`
	Product   string    `db:"product" json:"product"`
	Condition string    `db:"condition" json:"condition"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Count     int       `db:"count" json:"count"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateInventoryItemRequest carries the stock intake form. Quantity is a
// pointer so an omitted field (defaults to 1) can be told apart from an
// explicit zero (rejected). Count is not accepted from clients at all; new
// items always start at 0.
type CreateInventoryItemRequest struct {
	Model     string `json:"model"`
	Product   string `json:"product"`
	Condition string `json:"condition"`
	Quantity  *int   `json:"quantity"`
}

type AdjustCountRequest struct {
	Operation string `json:"operation"`
	Amount    int    `json:"amount"`
}

type InventoryEvent struct {
	Type      string    `json:"type"`
	ItemID    int64     `json:"item_id"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *CreateInventoryItemRequest) Validate() error {
	var errs FieldErrors

	if r.Model == "" {
		errs.add("model", "is required")
	}
	if r.Product == "" {
		errs.add("product", "is required")
	}
	switch r.Condition {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
	case "":
		errs.add("condition", "is required")
	default:
		errs.add("condition", "must be one of: new, used, refurbished")
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		errs.add("quantity", "must be a positive integer")
	}

	return errs.orNil()
}

func (r *AdjustCountRequest) Validate() error {
	var errs FieldErrors

	if r.Operation != OperationAdd && r.Operation != OperationSubtract {
		errs.add("operation", "must be one of: add, subtract")
	}
	if r.Amount <= 0 {
		errs.add("amount", "must be a positive integer")
	}

	return errs.orNil()
}
