package handler

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	ticketRepo repository.TicketRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
}

func NewTicketHandler(
	ticketRepo repository.TicketRepositoryInterface,
	columnRepo repository.ColumnRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
) *TicketHandler {
	return &TicketHandler{
		ticketRepo: ticketRepo,
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

type CreateTicketRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	ColumnID        string   `json:"column_id" binding:"required,uuid"`
	BackgroundColor string   `json:"background_color"`
	Labels          []string `json:"labels"`
}

type UpdateTicketRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	BackgroundColor string   `json:"background_color"`
	Labels          []string `json:"labels"`
}

type ReorderTicketsRequest struct {
	SourceColumnID      string   `json:"source_column_id" binding:"required,uuid"`
	DestinationColumnID string   `json:"destination_column_id" binding:"required,uuid"`
	TicketID            string   `json:"ticket_id" binding:"required,uuid"`
	NewOrder            []string `json:"new_order" binding:"required"`
	// OrderVersion enables the optimistic concurrency check on
	// same-column reorders when set.
	OrderVersion *int64 `json:"order_version"`
}

type TicketResponse struct {
	ID              string     `json:"id"`
	ColumnID        string     `json:"column_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	BackgroundColor string     `json:"background_color"`
	Labels          []string   `json:"labels,omitempty"`
	Position        int        `json:"position"`
	CreatedAt       time.Time  `json:"created_at"`
	ModifiedAt      *time.Time `json:"modified_at,omitempty"`
}

type CreateTicketResponse struct {
	Ticket        TicketResponse `json:"ticket"`
	UpdatedColumn ColumnResponse `json:"updated_column"`
}

func ticketResponse(ticket *model.Ticket) TicketResponse {
	return TicketResponse{
		ID:              ticket.ID.String(),
		ColumnID:        ticket.ColumnID.String(),
		Title:           ticket.Title,
		Description:     ticket.Description,
		BackgroundColor: ticket.BackgroundColor,
		Labels:          ticket.Labels,
		Position:        ticket.Position,
		CreatedAt:       ticket.CreatedAt,
		ModifiedAt:      ticket.ModifiedAt,
	}
}

// ownedColumn loads the column and verifies the caller owns its board.
func (h *TicketHandler) ownedColumn(c *gin.Context, columnID, userID uuid.UUID) (*model.Column, bool) {
	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return nil, false
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return nil, false
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), column.BoardID)
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

	return column, true
}

// Create godoc
// @Summary      Add a ticket to a column
// @Description  Appends the ticket to the end of the column's order and
// @Description  returns both the ticket and the refreshed column.
// @Tags         Tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTicketRequest true "Ticket data"
// @Success      200 {object} CreateTicketResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/tickets/add [post]
func (h *TicketHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and column ID are required"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, ok := h.ownedColumn(c, columnID, userID); !ok {
		return
	}

	backgroundColor := req.BackgroundColor
	if backgroundColor == "" {
		backgroundColor = model.DefaultColumnColor
	}

	ticket := &model.Ticket{
		ColumnID:        columnID,
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: backgroundColor,
		Labels:          req.Labels,
	}

	if err := h.ticketRepo.Create(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}

	updatedColumn, err := h.columnRepo.GetWithTickets(c.Request.Context(), columnID)
	if err != nil || updatedColumn == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return
	}

	c.JSON(http.StatusOK, CreateTicketResponse{
		Ticket:        ticketResponse(ticket),
		UpdatedColumn: columnResponse(updatedColumn),
	})
}

// Update godoc
// @Summary      Edit a ticket
// @Tags         Tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Param        request body UpdateTicketRequest true "Ticket fields to update"
// @Success      200 {object} TicketResponse
// @Failure      404 {object} map[string]string
// @Router       /api/tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	ticket, err := h.ticketRepo.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		return
	}

	if _, ok := h.ownedColumn(c, ticket.ColumnID, userID); !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		ticket.Title = req.Title
	}
	if req.Description != "" {
		ticket.Description = req.Description
	}
	if req.BackgroundColor != "" {
		ticket.BackgroundColor = req.BackgroundColor
	}
	if req.Labels != nil {
		ticket.Labels = req.Labels
	}
	now := time.Now()
	ticket.ModifiedAt = &now

	if err := h.ticketRepo.Update(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	c.JSON(http.StatusOK, ticketResponse(ticket))
}

// Delete godoc
// @Summary      Delete a ticket
// @Tags         Tickets
// @Security     BearerAuth
// @Param        id path string true "Ticket ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	ticket, err := h.ticketRepo.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		return
	}

	if _, ok := h.ownedColumn(c, ticket.ColumnID, userID); !ok {
		return
	}

	if err := h.ticketRepo.Delete(c.Request.Context(), ticketID); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

// Reorder godoc
// @Summary      Reorder tickets within a column or move one across columns
// @Description  Same source and destination reorders the column; different
// @Description  columns move the ticket, removing it from the source order
// @Description  and rewriting the destination order from new_order.
// @Tags         Tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReorderTicketsRequest true "Reorder intent"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /api/tickets/reorder [post]
func (h *TicketHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ReorderTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sourceColumnID, err := uuid.Parse(req.SourceColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	destColumnID, err := uuid.Parse(req.DestinationColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	orderedIDs, err := parseIDList(req.NewOrder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	if _, ok := h.ownedColumn(c, sourceColumnID, userID); !ok {
		return
	}
	// A cross-column move rewrites the destination's order too, so the
	// caller must own that column's board as well.
	if sourceColumnID != destColumnID {
		if _, ok := h.ownedColumn(c, destColumnID, userID); !ok {
			return
		}
	}

	if sourceColumnID == destColumnID {
		expectedVersion := int64(-1)
		if req.OrderVersion != nil {
			expectedVersion = *req.OrderVersion
		}
		err = h.columnRepo.ReorderTickets(c.Request.Context(), sourceColumnID, orderedIDs, expectedVersion)
	} else {
		err = h.ticketRepo.Move(c.Request.Context(), ticketID, sourceColumnID, destColumnID, orderedIDs)
	}

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		case errors.Is(err, repository.ErrColumnNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		case errors.Is(err, repository.ErrOrderMismatch):
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket order does not match the column's tickets"})
		case errors.Is(err, repository.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Column changed since it was read, fetch it again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder tickets"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket reordered successfully"})
}
