package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/events"
	"github.com/salesdesk/salesdesk/internal/repository"
	"go.uber.org/zap"
)

// TicketService stores and queries tickets. Tickets have no update operation.
type TicketService struct {
	repo     repository.TicketRepository
	notifier events.Notifier
}

// NewTicketService creates a ticket service. notifier may be nil.
func NewTicketService(repo repository.TicketRepository, notifier events.Notifier) *TicketService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &TicketService{repo: repo, notifier: notifier}
}

// Create assigns a fresh id, validates and stores the ticket.
func (s *TicketService) Create(ctx context.Context, payload domain.Ticket) (*domain.Ticket, error) {
	t := domain.Ticket{
		ID:          uuid.NewString(),
		PaymentType: domain.NormalizePaymentType(payload.PaymentType),
		Products:    payload.Products,
		Total:       payload.Total,
		CreatedAt:   time.Now(),
	}
	if t.Products == nil {
		t.Products = []domain.TicketItem{}
	}
	if err := validationError(ValidateTicket(&t)); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, err
	}

	zap.L().Info("ticket created",
		zap.String("namespace", "ticket"),
		zap.String("id", t.ID),
		zap.String("payment_type", t.PaymentType))
	s.notifier.Notify(events.TicketCreated, t.ID, t)
	return &t, nil
}

func (s *TicketService) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	zap.L().Info("ticket deleted", zap.String("namespace", "ticket"), zap.String("id", id))
	s.notifier.Notify(events.TicketDeleted, id, nil)
	return nil
}

// ListAll returns every ticket, oldest first. No paging.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	return s.repo.List(ctx)
}

// QueryByPaymentType returns the ticket projection used by analytics
func (s *TicketService) QueryByPaymentType(ctx context.Context) ([]domain.TicketProjection, error) {
	return s.repo.CountByPaymentType(ctx)
}
