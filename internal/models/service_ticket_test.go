package models

import (
	"errors"
	"testing"
)

func validCreateServiceTicketRequest() CreateServiceTicketRequest {
	return CreateServiceTicketRequest{
		CustomerName:     "Jane Doe",
		PhoneNumber:      "555-0100",
		DeviceModel:      "Phone X",
		FaultDescription: "cracked screen",
		ServiceDate:      "2024-05-01",
		EstimatedCost:    "149.99",
	}
}

func TestCreateServiceTicketRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateServiceTicketRequest)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(r *CreateServiceTicketRequest) {},
		},
		{
			name:   "zero cost is valid",
			mutate: func(r *CreateServiceTicketRequest) { r.EstimatedCost = "0" },
		},
		{
			name:   "whole number cost is valid",
			mutate: func(r *CreateServiceTicketRequest) { r.EstimatedCost = "150" },
		},
		{
			name:      "missing customer name",
			mutate:    func(r *CreateServiceTicketRequest) { r.CustomerName = "" },
			wantField: "customerName",
		},
		{
			name:      "missing phone number",
			mutate:    func(r *CreateServiceTicketRequest) { r.PhoneNumber = "" },
			wantField: "phoneNumber",
		},
		{
			name:      "missing device model",
			mutate:    func(r *CreateServiceTicketRequest) { r.DeviceModel = "" },
			wantField: "deviceModel",
		},
		{
			name:      "missing fault description",
			mutate:    func(r *CreateServiceTicketRequest) { r.FaultDescription = "" },
			wantField: "faultDescription",
		},
		{
			name:      "missing service date",
			mutate:    func(r *CreateServiceTicketRequest) { r.ServiceDate = "" },
			wantField: "serviceDate",
		},
		{
			name:      "malformed service date",
			mutate:    func(r *CreateServiceTicketRequest) { r.ServiceDate = "01/05/2024" },
			wantField: "serviceDate",
		},
		{
			name:      "missing cost",
			mutate:    func(r *CreateServiceTicketRequest) { r.EstimatedCost = "" },
			wantField: "estimatedCost",
		},
		{
			name:      "non-numeric cost",
			mutate:    func(r *CreateServiceTicketRequest) { r.EstimatedCost = "abc" },
			wantField: "estimatedCost",
		},
		{
			name:      "negative cost",
			mutate:    func(r *CreateServiceTicketRequest) { r.EstimatedCost = "-5.00" },
			wantField: "estimatedCost",
		},
		{
			name:      "too many fractional digits",
			mutate:    func(r *CreateServiceTicketRequest) { r.EstimatedCost = "149.999" },
			wantField: "estimatedCost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateServiceTicketRequest()
			tt.mutate(&req)

			err := req.Validate()
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

func TestCreateServiceTicketRequest_ValidateCollectsAllFields(t *testing.T) {
	req := CreateServiceTicketRequest{}

	err := req.Validate()
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}

	if len(fieldErrs) != 6 {
		t.Errorf("expected 6 field errors for empty request, got %d: %v", len(fieldErrs), fieldErrs)
	}
}

func TestUpdateServiceTicketRequest_Validate(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{StatusCompleted, false},
		{StatusReturned, false},
		{StatusInProgress, true},
		{"", true},
		{"done", true},
	}

	for _, tt := range tests {
		req := UpdateServiceTicketRequest{Status: tt.status}
		err := req.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("status %q: expected error, got nil", tt.status)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("status %q: expected no error, got %v", tt.status, err)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusInProgress, StatusCompleted, StatusReturned} {
		if !ValidStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}
	for _, status := range []string{"", "pending", "IN_PROGRESS"} {
		if ValidStatus(status) {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}
