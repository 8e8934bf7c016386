package models

import (
	"errors"
	"testing"
)

func TestCreateInventoryItemRequest_Validate(t *testing.T) {
	five := 5
	zero := 0
	negative := -2

	tests := []struct {
		name      string
		req       CreateInventoryItemRequest
		wantField string
	}{
		{
			name: "valid",
			req:  CreateInventoryItemRequest{Model: "Phone X", Product: "Screen", Condition: ConditionNew, Quantity: &five},
		},
		{
			name: "omitted quantity is valid",
			req:  CreateInventoryItemRequest{Model: "Phone X", Product: "Screen", Condition: ConditionRefurbished},
		},
		{
			name:      "missing model",
			req:       CreateInventoryItemRequest{Product: "Screen", Condition: ConditionNew},
			wantField: "model",
		},
		{
			name:      "missing product",
			req:       CreateInventoryItemRequest{Model: "Phone X", Condition: ConditionUsed},
			wantField: "product",
		},
		{
			name:      "missing condition",
			req:       CreateInventoryItemRequest{Model: "Phone X", Product: "Screen"},
			wantField: "condition",
		},
		{
			name:      "unknown condition",
			req:       CreateInventoryItemRequest{Model: "Phone X", Product: "Screen", Condition: "broken"},
			wantField: "condition",
		},
		{
			name:      "zero quantity",
			req:       CreateInventoryItemRequest{Model: "Phone X", Product: "Screen", Condition: ConditionNew, Quantity: &zero},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			req:       CreateInventoryItemRequest{Model: "Phone X", Product: "Screen", Condition: ConditionNew, Quantity: &negative},
			wantField: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid request, got %v", err)
				}
				return
			}

			var fieldErrs FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}

			found := false
			for _, fe := range fieldErrs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.wantField, fieldErrs)
			}
		})
	}
}

func TestAdjustCountRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AdjustCountRequest
		wantErr bool
	}{
		{"valid add", AdjustCountRequest{Operation: OperationAdd, Amount: 3}, false},
		{"valid subtract", AdjustCountRequest{Operation: OperationSubtract, Amount: 1}, false},
		{"unknown operation", AdjustCountRequest{Operation: "set", Amount: 1}, true},
		{"missing operation", AdjustCountRequest{Amount: 1}, true},
		{"zero amount", AdjustCountRequest{Operation: OperationAdd, Amount: 0}, true},
		{"negative amount", AdjustCountRequest{Operation: OperationSubtract, Amount: -4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
