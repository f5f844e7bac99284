package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	ReorderColumns(ctx context.Context, boardID uuid.UUID, orderedIDs []uuid.UUID, expectedVersion int64) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create persists a new board. A user owns at most one board; a second
// create returns ErrBoardExists.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Board{}).Where("owner_id = ?", board.OwnerID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrBoardExists
		}
		return tx.Create(board).Error
	})
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetByOwner returns the user's board with columns and tickets preloaded
// in display order, or nil if the user has no board yet.
func (r *BoardRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Columns.Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("owner_id = ?", ownerID).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// ReorderColumns replaces the board's column order with orderedIDs. The
// submitted list must be a permutation of the columns currently on the
// board, otherwise ErrOrderMismatch. When expectedVersion is non-negative
// it is compared against the board's order version before writing, so a
// reorder racing a concurrent insert or delete fails with
// ErrVersionConflict instead of silently dropping it.
func (r *BoardRepository) ReorderColumns(ctx context.Context, boardID uuid.UUID, orderedIDs []uuid.UUID, expectedVersion int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		if err := tx.Where("id = ?", boardID).First(&board).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return err
		}

		if expectedVersion >= 0 && board.OrderVersion != expectedVersion {
			return ErrVersionConflict
		}

		var currentIDs []uuid.UUID
		if err := tx.Model(&model.Column{}).Where("board_id = ?", boardID).Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if !orderMatches(currentIDs, orderedIDs) {
			return ErrOrderMismatch
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Column{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Board{}).Where("id = ?", boardID).
			Update("order_version", gorm.Expr("order_version + 1")).Error
	})
}
