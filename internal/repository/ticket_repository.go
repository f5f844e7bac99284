package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

type TicketRepositoryInterface interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Ticket, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, ticketID, sourceColumnID, destColumnID uuid.UUID, orderedIDs []uuid.UUID) error
}

var _ TicketRepositoryInterface = (*TicketRepository)(nil)

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create appends the ticket to the end of its column's order and bumps
// the column's order version.
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition struct {
			Max int
		}
		if err := tx.Model(&model.Ticket{}).
			Select("COALESCE(MAX(position), 0) as max").
			Where("column_id = ?", ticket.ColumnID).
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		ticket.Position = maxPosition.Max + 1

		if err := tx.Create(ticket).Error; err != nil {
			return err
		}

		return tx.Model(&model.Column{}).Where("id = ?", ticket.ColumnID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	result := r.db.WithContext(ctx).First(&ticket, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, result.Error
	}
	return &ticket, nil
}

func (r *TicketRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Ticket, error) {
	var tickets []model.Ticket
	result := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	result := r.db.WithContext(ctx).Save(ticket)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// Delete removes the ticket and drops it from its column's order.
func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.Ticket
		if err := tx.First(&ticket, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Ticket{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Model(&model.Column{}).Where("id = ?", ticket.ColumnID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}

// Move relocates a ticket from sourceColumnID to destColumnID and
// rewrites the destination order from orderedIDs, which must already
// contain the moving ticket at its intended position. The source and
// destination must be different columns; same-column reorders go through
// ColumnRepository.ReorderTickets.
//
// The whole transition runs in one transaction, and every write is
// recomputed from current membership rather than patched positionally,
// so re-running the call with the same arguments after a failure
// converges on the same final state. A ticket that already sits in the
// destination column is treated as such a retry.
func (r *TicketRepository) Move(ctx context.Context, ticketID, sourceColumnID, destColumnID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.Ticket
		if err := tx.First(&ticket, "id = ?", ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		// The ticket must be leaving the named source column. Seeing it
		// already in the destination means a retry of a move that partly
		// or fully applied; anything else is a stale request.
		retry := ticket.ColumnID == destColumnID
		if !retry && ticket.ColumnID != sourceColumnID {
			return ErrTicketNotFound
		}

		var destColumn model.Column
		if err := tx.Where("id = ?", destColumnID).First(&destColumn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		var destIDs []uuid.UUID
		if err := tx.Model(&model.Ticket{}).Where("column_id = ?", destColumnID).Pluck("id", &destIDs).Error; err != nil {
			return err
		}
		if !retry {
			destIDs = append(destIDs, ticketID)
		}
		if !orderMatches(destIDs, orderedIDs) {
			return ErrOrderMismatch
		}

		if err := tx.Model(&model.Ticket{}).Where("id = ?", ticketID).
			Update("column_id", destColumnID).Error; err != nil {
			return err
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Ticket{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}

		// Close the gap in the source column from its remaining
		// membership, not from any order the caller supplied.
		var sourceIDs []uuid.UUID
		if err := tx.Model(&model.Ticket{}).Where("column_id = ?", sourceColumnID).
			Order("position").Pluck("id", &sourceIDs).Error; err != nil {
			return err
		}
		for i, id := range sourceIDs {
			if err := tx.Model(&model.Ticket{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Column{}).Where("id IN ?", []uuid.UUID{sourceColumnID, destColumnID}).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}
