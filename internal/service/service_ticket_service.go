package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fixhub/repair-service/internal/messaging"
	"github.com/fixhub/repair-service/internal/models"
	"github.com/fixhub/repair-service/internal/repository"
)

type ServiceTicketService interface {
	CreateTicket(ctx context.Context, req *models.CreateServiceTicketRequest) (*models.ServiceTicket, error)
	ListTickets(ctx context.Context, status, date string) ([]*models.ServiceTicket, error)
	TransitionTicket(ctx context.Context, id int64, req *models.UpdateServiceTicketRequest) (*models.ServiceTicket, error)
}

type serviceTicketService struct {
	repo     repository.ServiceTicketRepository
	producer messaging.KafkaProducer
}

func NewServiceTicketService(repo repository.ServiceTicketRepository, producer messaging.KafkaProducer) ServiceTicketService {
	return &serviceTicketService{
		repo:     repo,
		producer: producer,
	}
}

func (s *serviceTicketService) CreateTicket(ctx context.Context, req *models.CreateServiceTicketRequest) (*models.ServiceTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Every ticket starts its lifecycle in intake regardless of what the
	// client sent; the serial number is assigned by the repository.
	ticket := &models.ServiceTicket{
		CustomerName:     req.CustomerName,
		PhoneNumber:      req.PhoneNumber,
		DeviceModel:      req.DeviceModel,
		FaultDescription: req.FaultDescription,
		ServiceDate:      req.ServiceDate,
		EstimatedCost:    req.EstimatedCost,
		Status:           models.StatusInProgress,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create service ticket: %w", err)
	}

	event := &models.ServiceTicketEvent{
		Type:         "service.created",
		TicketID:     ticket.ID,
		SerialNumber: ticket.SerialNumber,
		Status:       ticket.Status,
		Timestamp:    ticket.CreatedAt,
	}

	if err := s.producer.PublishServiceTicketEvent(ctx, event); err != nil {
		log.Printf("Failed to publish service created event: %v", err)
	}

	return ticket, nil
}

// ListTickets dispatches on the requested filter. A date filter wins over a
// status filter; with neither, every ticket is returned. The date listing is
// a daily-revenue report, so it only covers completed tickets.
func (s *serviceTicketService) ListTickets(ctx context.Context, status, date string) ([]*models.ServiceTicket, error) {
	if date != "" {
		return s.repo.FindCompletedByDate(ctx, date)
	}

	if status != "" {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("validation failed: %w",
				models.FieldErrors{{Field: "status", Message: "must be one of: in_progress, completed, returned"}})
		}
		return s.repo.FindByStatus(ctx, status)
	}

	return s.repo.FindAll(ctx)
}

func (s *serviceTicketService) TransitionTicket(ctx context.Context, id int64, req *models.UpdateServiceTicketRequest) (*models.ServiceTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ticket, err := s.repo.Transition(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	event := &models.ServiceTicketEvent{
		Type:         "service.status_updated",
		TicketID:     ticket.ID,
		SerialNumber: ticket.SerialNumber,
		Status:       ticket.Status,
		Timestamp:    transitionTime(ticket),
	}

	if err := s.producer.PublishServiceTicketEvent(ctx, event); err != nil {
		log.Printf("Failed to publish service status updated event: %v", err)
	}

	return ticket, nil
}

func transitionTime(ticket *models.ServiceTicket) time.Time {
	switch {
	case ticket.CompletedAt != nil:
		return *ticket.CompletedAt
	case ticket.ReturnedAt != nil:
		return *ticket.ReturnedAt
	}
	return ticket.CreatedAt
}
