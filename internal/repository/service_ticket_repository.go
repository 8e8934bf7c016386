package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyFinalized is returned when a status transition targets a
	// ticket that has already left in_progress. Completed and returned are
	// terminal states.
	ErrAlreadyFinalized = errors.New("service ticket already finalized")
)

const serviceTicketColumns = `id, serial_number, customer_name, phone_number, device_model,
	fault_description, service_date, estimated_cost, status, created_at, completed_at, returned_at`

type ServiceTicketRepository interface {
	Create(ctx context.Context, ticket *models.ServiceTicket) error
	FindAll(ctx context.Context) ([]*models.ServiceTicket, error)
	FindByStatus(ctx context.Context, status string) ([]*models.ServiceTicket, error)
	FindCompletedByDate(ctx context.Context, date string) ([]*models.ServiceTicket, error)
	Transition(ctx context.Context, id int64, status string) (*models.ServiceTicket, error)
}

type serviceTicketRepository struct {
	db *sqlx.DB
}

func NewServiceTicketRepository(db *sqlx.DB) ServiceTicketRepository {
	return &serviceTicketRepository{db: db}
}

// newSerialNumber is the single source of truth for ticket serial numbers:
// a date prefix for human scanning plus a uuid-derived suffix for collision
// avoidance. The unique column constraint remains the hard guarantee.
func newSerialNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("SRV%s-%s", now.Format("20060102"), suffix)
}

func (r *serviceTicketRepository) Create(ctx context.Context, ticket *models.ServiceTicket) error {
	query := `
		INSERT INTO services (serial_number, customer_name, phone_number, device_model,
			fault_description, service_date, estimated_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	serialNumber := newSerialNumber(now)

	err := r.db.QueryRowContext(
		ctx,
		query,
		serialNumber,
		ticket.CustomerName,
		ticket.PhoneNumber,
		ticket.DeviceModel,
		ticket.FaultDescription,
		ticket.ServiceDate,
		ticket.EstimatedCost,
		ticket.Status,
		now,
	).Scan(&ticket.ID)

	if err != nil {
		return fmt.Errorf("failed to create service ticket: %w", err)
	}

	ticket.SerialNumber = serialNumber
	ticket.CreatedAt = now
	return nil
}

func (r *serviceTicketRepository) FindAll(ctx context.Context) ([]*models.ServiceTicket, error) {
	tickets := []*models.ServiceTicket{}
	query := `SELECT ` + serviceTicketColumns + ` FROM services ORDER BY id`

	err := r.db.SelectContext(ctx, &tickets, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find service tickets: %w", err)
	}

	return tickets, nil
}

func (r *serviceTicketRepository) FindByStatus(ctx context.Context, status string) ([]*models.ServiceTicket, error) {
	tickets := []*models.ServiceTicket{}
	query := `SELECT ` + serviceTicketColumns + ` FROM services WHERE status = $1 ORDER BY id`

	err := r.db.SelectContext(ctx, &tickets, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to find service tickets by status: %w", err)
	}

	return tickets, nil
}

// FindCompletedByDate is the daily-revenue query: only tickets completed for
// the given service date count, not ones still open or returned unrepaired.
func (r *serviceTicketRepository) FindCompletedByDate(ctx context.Context, date string) ([]*models.ServiceTicket, error) {
	tickets := []*models.ServiceTicket{}
	query := `SELECT ` + serviceTicketColumns + ` FROM services
	          WHERE service_date = $1 AND status = $2 ORDER BY id`

	err := r.db.SelectContext(ctx, &tickets, query, date, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to find service tickets by date: %w", err)
	}

	return tickets, nil
}

func (r *serviceTicketRepository) Transition(ctx context.Context, id int64, status string) (*models.ServiceTicket, error) {
	var query string
	switch status {
	case models.StatusCompleted:
		query = `UPDATE services SET status = $1, completed_at = $2
		         WHERE id = $3 AND status = 'in_progress'
		         RETURNING ` + serviceTicketColumns
	case models.StatusReturned:
		query = `UPDATE services SET status = $1, returned_at = $2
		         WHERE id = $3 AND status = 'in_progress'
		         RETURNING ` + serviceTicketColumns
	default:
		return nil, fmt.Errorf("invalid target status %q", status)
	}

	var ticket models.ServiceTicket
	err := r.db.GetContext(ctx, &ticket, query, status, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		// The guard matched nothing: either the ticket does not exist or
		// it is already in a terminal state.
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM services WHERE id = $1)`, id); err != nil {
			return nil, fmt.Errorf("failed to check service ticket existence: %w", err)
		}
		if exists {
			return nil, ErrAlreadyFinalized
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition service ticket: %w", err)
	}

	return &ticket, nil
}
