package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBoard() *Board {
	return &Board{
		ID:           "board-1",
		Title:        "My Board",
		OrderVersion: 3,
		Columns: []Column{
			{ID: "col-1", BoardID: "board-1", Title: "To Do", Position: 1, OrderVersion: 2, Tickets: []Ticket{
				{ID: "t1", ColumnID: "col-1", Title: "One", Position: 1},
				{ID: "t2", ColumnID: "col-1", Title: "Two", Position: 2},
				{ID: "t3", ColumnID: "col-1", Title: "Three", Position: 3},
			}},
			{ID: "col-2", BoardID: "board-1", Title: "Doing", Position: 2, OrderVersion: 5, Tickets: []Ticket{
				{ID: "t4", ColumnID: "col-2", Title: "Four", Position: 1},
			}},
			{ID: "col-3", BoardID: "board-1", Title: "Done", Position: 3},
		},
	}
}

func TestResolveDrop_SameColumnOntoTicket(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act: drag t3 onto t1 within col-1
	cmd, err := ResolveDrop(board, DragItem{ID: "t3", ColumnID: "col-1"}, DropTarget{ColumnID: "col-1", TicketID: "t1"})

	// Assert
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"t3", "t1", "t2"}, board.Column("col-1").TicketOrder())
	assert.Equal(t, int64(3), board.Column("col-1").OrderVersion)
}

func TestResolveDrop_SameColumnEmptySpaceAppends(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act: drag t1 onto col-1's empty space
	cmd, err := ResolveDrop(board, DragItem{ID: "t1", ColumnID: "col-1"}, DropTarget{ColumnID: "col-1"})

	// Assert: dropped on its own column's space, the ticket goes last
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"t2", "t3", "t1"}, board.Column("col-1").TicketOrder())
}

func TestResolveDrop_CrossColumnOntoTicket(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act: drag t1 from col-1 onto t4 in col-2
	cmd, err := ResolveDrop(board, DragItem{ID: "t1", ColumnID: "col-1"}, DropTarget{ColumnID: "col-2", TicketID: "t4"})

	// Assert
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"t2", "t3"}, board.Column("col-1").TicketOrder())
	assert.Equal(t, []string{"t1", "t4"}, board.Column("col-2").TicketOrder())
	assert.Equal(t, "col-2", board.Column("col-2").Tickets[0].ColumnID)
	assert.Equal(t, int64(3), board.Column("col-1").OrderVersion)
	assert.Equal(t, int64(6), board.Column("col-2").OrderVersion)
}

func TestResolveDrop_CrossColumnEmptySpacePrepends(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act: drag t4 onto col-1's empty space
	cmd, err := ResolveDrop(board, DragItem{ID: "t4", ColumnID: "col-2"}, DropTarget{ColumnID: "col-1"})

	// Assert: unlike the same-column case, a foreign ticket goes first
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"t4", "t1", "t2", "t3"}, board.Column("col-1").TicketOrder())
	assert.Empty(t, board.Column("col-2").TicketOrder())
}

func TestResolveDrop_IntoEmptyColumn(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act
	cmd, err := ResolveDrop(board, DragItem{ID: "t2", ColumnID: "col-1"}, DropTarget{ColumnID: "col-3"})

	// Assert
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"t2"}, board.Column("col-3").TicketOrder())
	assert.Equal(t, []string{"t1", "t3"}, board.Column("col-1").TicketOrder())
}

func TestResolveDrop_ColumnMove(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act: an empty ColumnID marks a column drag; move col-3 to the front
	cmd, err := ResolveDrop(board, DragItem{ID: "col-3"}, DropTarget{ColumnID: "col-1"})

	// Assert
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"col-3", "col-1", "col-2"}, board.ColumnOrder())
	assert.Equal(t, int64(4), board.OrderVersion)
}

func TestResolveDrop_ColumnMoveToEnd(t *testing.T) {
	// Arrange
	board := testBoard()

	// Act
	cmd, err := ResolveDrop(board, DragItem{ID: "col-1"}, DropTarget{ColumnID: "col-3"})

	// Assert
	assert.NoError(t, err)
	cmd.Apply(board)
	assert.Equal(t, []string{"col-2", "col-3", "col-1"}, board.ColumnOrder())
}

func TestResolveDrop_StaleDrag(t *testing.T) {
	board := testBoard()

	// Dragged ticket no longer exists locally
	_, err := ResolveDrop(board, DragItem{ID: "ghost", ColumnID: "col-1"}, DropTarget{ColumnID: "col-2"})
	assert.ErrorIs(t, err, ErrStaleDrag)

	// Target column no longer exists
	_, err = ResolveDrop(board, DragItem{ID: "t1", ColumnID: "col-1"}, DropTarget{ColumnID: "gone"})
	assert.ErrorIs(t, err, ErrStaleDrag)

	// Hovered ticket no longer exists in the destination
	_, err = ResolveDrop(board, DragItem{ID: "t1", ColumnID: "col-1"}, DropTarget{ColumnID: "col-2", TicketID: "ghost"})
	assert.ErrorIs(t, err, ErrStaleDrag)
}
