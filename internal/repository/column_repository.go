package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetWithTickets(ctx context.Context, id uuid.UUID) (*model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReorderTickets(ctx context.Context, columnID uuid.UUID, orderedIDs []uuid.UUID, expectedVersion int64) error
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create appends the column to the end of its board's column order and
// bumps the board's order version.
func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition struct {
			Max int
		}
		if err := tx.Model(&model.Column{}).
			Select("COALESCE(MAX(position), 0) as max").
			Where("board_id = ?", column.BoardID).
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		column.Position = maxPosition.Max + 1

		if err := tx.Create(column).Error; err != nil {
			return err
		}

		return tx.Model(&model.Board{}).Where("id = ?", column.BoardID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

// GetWithTickets returns the column with its tickets in display order.
func (r *ColumnRepository) GetWithTickets(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("id = ?", id).
		First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// Delete removes the column and all of its tickets, then drops it from
// the board's column order by bumping the board's order version.
func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column model.Column
		if err := tx.Where("id = ?", id).First(&column).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		if err := tx.Where("column_id = ?", id).Delete(&model.Ticket{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Column{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Model(&model.Board{}).Where("id = ?", column.BoardID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}

// ReorderTickets replaces the column's ticket order with orderedIDs.
// The list must be a permutation of the tickets currently pointing at
// this column (ErrOrderMismatch otherwise). A non-negative
// expectedVersion enables the optimistic version check.
func (r *ColumnRepository) ReorderTickets(ctx context.Context, columnID uuid.UUID, orderedIDs []uuid.UUID, expectedVersion int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column model.Column
		if err := tx.Where("id = ?", columnID).First(&column).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		if expectedVersion >= 0 && column.OrderVersion != expectedVersion {
			return ErrVersionConflict
		}

		var currentIDs []uuid.UUID
		if err := tx.Model(&model.Ticket{}).Where("column_id = ?", columnID).Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if !orderMatches(currentIDs, orderedIDs) {
			return ErrOrderMismatch
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Ticket{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Column{}).Where("id = ?", columnID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}
