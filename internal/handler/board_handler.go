package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface) *BoardHandler {
	return &BoardHandler{boardRepo: boardRepo}
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type BoardResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	OrderVersion int64            `json:"order_version"`
	Columns      []ColumnResponse `json:"columns"`
}

func boardResponse(board *model.Board) BoardResponse {
	columns := make([]ColumnResponse, len(board.Columns))
	for i := range board.Columns {
		columns[i] = columnResponse(&board.Columns[i])
	}
	return BoardResponse{
		ID:           board.ID.String(),
		Title:        board.Title,
		OrderVersion: board.OrderVersion,
		Columns:      columns,
	}
}

// Create godoc
// @Summary      Create the user's board
// @Description  A user owns at most one board; a second create is rejected.
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBoardRequest true "Board data"
// @Success      201 {object} BoardResponse
// @Failure      409 {object} map[string]string
// @Router       /api/boards/add [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := &model.Board{
		Title:   req.Title,
		OwnerID: userID,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		if errors.Is(err, repository.ErrBoardExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already has a board"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, boardResponse(board))
}

// Get godoc
// @Summary      Get the user's board with columns and tickets in order
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} BoardResponse
// @Failure      404 {object} map[string]string
// @Router       /api/boards/get [get]
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.boardRepo.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No board found"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Update godoc
// @Summary      Rename the board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Board ID"
// @Param        request body UpdateBoardRequest true "Board fields to update"
// @Success      200 {object} BoardResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}
	if board.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this board"})
		return
	}

	board.Title = req.Title
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}
