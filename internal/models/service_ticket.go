package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusReturned   = "returned"
)

// serviceDateLayout is the wire format for service dates. Dates are stored
// as plain strings, not timestamps, so a ticket's service day never shifts
// with the server timezone.
const serviceDateLayout = "2006-01-02"

type ServiceTicket struct {
	ID               int64      `db:"id" json:"id"`
	SerialNumber     string     `db:"serial_number" json:"serialNumber"`
	CustomerName     string     `db:"customer_name" json:"customerName"`
	PhoneNumber      string     `db:"phone_number" json:"phoneNumber"`
	DeviceModel      string     `db:"device_model" json:"deviceModel"`
	FaultDescription string     `db:"fault_description" json:"faultDescription"`
	ServiceDate      string     `db:"service_date" json:"serviceDate"`
	EstimatedCost    string     `db:"estimated_cost" json:"estimatedCost"`
	Status           string     `db:"status" json:"status"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	CompletedAt      *time.Time `db:"completed_at" json:"completedAt"`
	ReturnedAt       *time.Time `db:"returned_at" json:"returnedAt"`
}

// CreateServiceTicketRequest carries the intake form fields. Status, serial
// number and timestamps are deliberately absent: the server assigns them and
// any client-supplied values are dropped at decode time.
type CreateServiceTicketRequest struct {
	CustomerName     string `json:"customerName"`
	PhoneNumber      string `json:"phoneNumber"`
	DeviceModel      string `json:"deviceModel"`
	FaultDescription string `json:"faultDescription"`
	ServiceDate      string `json:"serviceDate"`
	EstimatedCost    string `json:"estimatedCost"`
}

type UpdateServiceTicketRequest struct {
	Status string `json:"status"`
}

type ServiceTicketEvent struct {
	Type         string    `json:"type"`
	TicketID     int64     `json:"ticket_id"`
	SerialNumber string    `json:"serial_number"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

func (r *CreateServiceTicketRequest) Validate() error {
	var errs FieldErrors

	if r.CustomerName == "" {
		errs.add("customerName", "is required")
	}
	if r.PhoneNumber == "" {
		errs.add("phoneNumber", "is required")
	}
	if r.DeviceModel == "" {
		errs.add("deviceModel", "is required")
	}
	if r.FaultDescription == "" {
		errs.add("faultDescription", "is required")
	}
	if r.ServiceDate == "" {
		errs.add("serviceDate", "is required")
	} else if _, err := time.Parse(serviceDateLayout, r.ServiceDate); err != nil {
		errs.add("serviceDate", "must be a date in YYYY-MM-DD format")
	}
	if r.EstimatedCost == "" {
		errs.add("estimatedCost", "is required")
	} else if cost, err := decimal.NewFromString(r.EstimatedCost); err != nil {
		errs.add("estimatedCost", "must be a decimal number")
	} else if cost.IsNegative() {
		errs.add("estimatedCost", "cannot be negative")
	} else if cost.Exponent() < -2 {
		errs.add("estimatedCost", "cannot have more than 2 fractional digits")
	}

	return errs.orNil()
}

func (r *UpdateServiceTicketRequest) Validate() error {
	var errs FieldErrors

	if r.Status != StatusCompleted && r.Status != StatusReturned {
		errs.add("status", "must be one of: completed, returned")
	}

	return errs.orNil()
}

// ValidStatus reports whether s is one of the ticket lifecycle states.
// Used by the list endpoint to reject unknown status filters.
func ValidStatus(s string) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusReturned:
		return true
	}
	return false
}
