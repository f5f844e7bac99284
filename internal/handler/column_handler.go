package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columnRepo repository.ColumnRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
}

func NewColumnHandler(columnRepo repository.ColumnRepositoryInterface, boardRepo repository.BoardRepositoryInterface) *ColumnHandler {
	return &ColumnHandler{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

type CreateColumnRequest struct {
	Title           string `json:"title" binding:"required"`
	BoardID         string `json:"board_id" binding:"required,uuid"`
	BackgroundColor string `json:"background_color"`
}

type UpdateColumnRequest struct {
	Title           string `json:"title"`
	BackgroundColor string `json:"background_color"`
}

type ReorderColumnsRequest struct {
	BoardID     string   `json:"board_id" binding:"required,uuid"`
	ColumnOrder []string `json:"column_order" binding:"required"`
	// OrderVersion enables the optimistic concurrency check when set;
	// omitted it keeps the original last-write-wins behavior.
	OrderVersion *int64 `json:"order_version"`
}

type ColumnResponse struct {
	ID              string           `json:"id"`
	BoardID         string           `json:"board_id"`
	Title           string           `json:"title"`
	BackgroundColor string           `json:"background_color"`
	Position        int              `json:"position"`
	OrderVersion    int64            `json:"order_version"`
	Tickets         []TicketResponse `json:"tickets"`
}

func columnResponse(column *model.Column) ColumnResponse {
	tickets := make([]TicketResponse, len(column.Tickets))
	for i := range column.Tickets {
		tickets[i] = ticketResponse(&column.Tickets[i])
	}
	return ColumnResponse{
		ID:              column.ID.String(),
		BoardID:         column.BoardID.String(),
		Title:           column.Title,
		BackgroundColor: column.BackgroundColor,
		Position:        column.Position,
		OrderVersion:    column.OrderVersion,
		Tickets:         tickets,
	}
}

// ownedBoard loads the board and verifies the caller owns it. It writes
// the error response and returns false on failure.
func (h *ColumnHandler) ownedBoard(c *gin.Context, boardID, userID uuid.UUID) (*model.Board, bool) {
	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil, false
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil, false
	}
	if board.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this board"})
		return nil, false
	}
	return board, true
}

// Create godoc
// @Summary      Add a column to the board
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateColumnRequest true "Column data"
// @Success      201 {object} ColumnResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/add [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, ok := h.ownedBoard(c, boardID, userID); !ok {
		return
	}

	backgroundColor := req.BackgroundColor
	if backgroundColor == "" {
		backgroundColor = model.DefaultColumnColor
	}

	column := &model.Column{
		BoardID:         boardID,
		Title:           req.Title,
		BackgroundColor: backgroundColor,
	}

	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, columnResponse(column))
}

// Update godoc
// @Summary      Edit a column's title or color
// @Tags         Columns
// @Security     BearerAuth
// @Param        id path string true "Column ID"
// @Success      200 {object} ColumnResponse
// @Failure      404 {object} map[string]string
// @Router       /api/columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	if _, ok := h.ownedBoard(c, column.BoardID, userID); !ok {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		column.Title = req.Title
	}
	if req.BackgroundColor != "" {
		column.BackgroundColor = req.BackgroundColor
	}

	if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, columnResponse(column))
}

// Delete godoc
// @Summary      Delete a column and all of its tickets
// @Tags         Columns
// @Security     BearerAuth
// @Param        id path string true "Column ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	if _, ok := h.ownedBoard(c, column.BoardID, userID); !ok {
		return
	}

	if err := h.columnRepo.Delete(c.Request.Context(), columnID); err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

// Reorder godoc
// @Summary      Reorder the board's columns
// @Description  Replaces the board's column order. The submitted list must
// @Description  be a permutation of the board's current columns.
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReorderColumnsRequest true "New column order"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /api/columns/reorder [post]
func (h *ColumnHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	orderedIDs, err := parseIDList(req.ColumnOrder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, ok := h.ownedBoard(c, boardID, userID); !ok {
		return
	}

	expectedVersion := int64(-1)
	if req.OrderVersion != nil {
		expectedVersion = *req.OrderVersion
	}

	if err := h.boardRepo.ReorderColumns(c.Request.Context(), boardID, orderedIDs, expectedVersion); err != nil {
		switch {
		case errors.Is(err, repository.ErrBoardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		case errors.Is(err, repository.ErrOrderMismatch):
			c.JSON(http.StatusConflict, gin.H{"error": "Column order does not match the board's columns"})
		case errors.Is(err, repository.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Board changed since it was read, fetch it again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder columns"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Columns reordered successfully"})
}

func parseIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
