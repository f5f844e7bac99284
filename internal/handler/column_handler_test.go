package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupColumnRouter(columnRepo *MockColumnRepository, boardRepo *MockBoardRepository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewColumnHandler(columnRepo, boardRepo)

	router := gin.New()
	router.Use(authAs(userID))
	router.POST("/api/columns/add", h.Create)
	router.PUT("/api/columns/:id", h.Update)
	router.DELETE("/api/columns/:id", h.Delete)
	router.POST("/api/columns/reorder", h.Reorder)
	return router
}

func TestColumnHandler_Create_DefaultColor(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID := uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	columnRepo.On("Create", mock.Anything, mock.MatchedBy(func(col *model.Column) bool {
		return col.BackgroundColor == model.DefaultColumnColor
	})).Return(nil)

	body, _ := json.Marshal(handler.CreateColumnRequest{
		Title:   "To Do",
		BoardID: boardID.String(),
	})

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/columns/add", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	columnRepo.AssertExpectations(t)
}

func TestColumnHandler_Reorder(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID := uuid.New()
	colA, colB := uuid.New(), uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	boardRepo.On("ReorderColumns", mock.Anything, boardID, []uuid.UUID{colB, colA}, int64(-1)).
		Return(nil)

	body, _ := json.Marshal(handler.ReorderColumnsRequest{
		BoardID:     boardID.String(),
		ColumnOrder: []string{colB.String(), colA.String()},
	})

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/columns/reorder", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	boardRepo.AssertExpectations(t)
}

func TestColumnHandler_Reorder_WithVersion(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID := uuid.New()
	colA := uuid.New()
	version := int64(4)
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	boardRepo.On("ReorderColumns", mock.Anything, boardID, []uuid.UUID{colA}, version).
		Return(nil)

	body, _ := json.Marshal(handler.ReorderColumnsRequest{
		BoardID:      boardID.String(),
		ColumnOrder:  []string{colA.String()},
		OrderVersion: &version,
	})

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/columns/reorder", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	boardRepo.AssertExpectations(t)
}

func TestColumnHandler_Reorder_OrderMismatchConflict(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID := uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	boardRepo.On("ReorderColumns", mock.Anything, boardID, mock.Anything, int64(-1)).
		Return(repository.ErrOrderMismatch)

	body, _ := json.Marshal(handler.ReorderColumnsRequest{
		BoardID:     boardID.String(),
		ColumnOrder: []string{uuid.New().String()},
	})

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/columns/reorder", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "does not match")
}

func TestColumnHandler_Reorder_NotOwnerForbidden(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID := uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: uuid.New()}, nil)

	body, _ := json.Marshal(handler.ReorderColumnsRequest{
		BoardID:     boardID.String(),
		ColumnOrder: []string{uuid.New().String()},
	})

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/columns/reorder", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	boardRepo.AssertNotCalled(t, "ReorderColumns", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestColumnHandler_Delete(t *testing.T) {
	// Arrange
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	userID := uuid.New()
	router := setupColumnRouter(columnRepo, boardRepo, userID)

	boardID, columnID := uuid.New(), uuid.New()
	columnRepo.On("GetByID", mock.Anything, columnID).
		Return(&model.Column{ID: columnID, BoardID: boardID}, nil)
	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: userID}, nil)
	columnRepo.On("Delete", mock.Anything, columnID).Return(nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/columns/"+columnID.String(), nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted successfully")
	columnRepo.AssertExpectations(t)
}
