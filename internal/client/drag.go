package client

import "errors"

// ErrStaleDrag is returned when a drop refers to items that are no
// longer present in the local board state.
var ErrStaleDrag = errors.New("drag references unknown item")

// DragItem identifies what was picked up. A ticket drag carries the ID
// of the column it was picked up from; a column drag leaves ColumnID
// empty. That metadata is what classifies the gesture.
type DragItem struct {
	ID       string
	ColumnID string
}

// DropTarget identifies where the item was released: on a ticket
// (TicketID set) or on a column's empty space (TicketID empty).
type DropTarget struct {
	ColumnID string
	TicketID string
}

// ResolveDrop translates a drag-and-drop gesture into a command that
// applies the corresponding order mutation locally and submits it to the
// server. The board is only read here; the returned command's Apply does
// the mutation.
func ResolveDrop(board *Board, item DragItem, target DropTarget) (Command, error) {
	if item.ColumnID == "" {
		return resolveColumnDrop(board, item, target)
	}
	return resolveTicketDrop(board, item, target)
}

func resolveColumnDrop(board *Board, item DragItem, target DropTarget) (Command, error) {
	from := board.columnIndex(item.ID)
	to := board.columnIndex(target.ColumnID)
	if from < 0 || to < 0 {
		return nil, ErrStaleDrag
	}

	// Single-element positional move over the column order.
	order := board.ColumnOrder()
	id := order[from]
	order = append(order[:from], order[from+1:]...)
	order = append(order, "")
	copy(order[to+1:], order[to:])
	order[to] = id

	return &reorderColumnsCommand{
		boardID: board.ID,
		order:   order,
		version: board.OrderVersion,
	}, nil
}

func resolveTicketDrop(board *Board, item DragItem, target DropTarget) (Command, error) {
	source := board.Column(item.ColumnID)
	dest := board.Column(target.ColumnID)
	if source == nil || dest == nil {
		return nil, ErrStaleDrag
	}
	fromIndex := source.TicketIndex(item.ID)
	if fromIndex < 0 {
		return nil, ErrStaleDrag
	}

	if source.ID == dest.ID {
		// Reinsert at the hovered ticket's index, or at the end when
		// dropped on the column's empty space.
		order := source.TicketOrder()
		order = append(order[:fromIndex], order[fromIndex+1:]...)
		insertAt := len(order)
		if target.TicketID != "" {
			insertAt = indexOf(order, target.TicketID)
			if insertAt < 0 {
				return nil, ErrStaleDrag
			}
		}
		order = insertID(order, insertAt, item.ID)

		return &reorderTicketsCommand{
			columnID:  source.ID,
			order:     order,
			version:   source.OrderVersion,
			insertAt:  insertAt,
			ticketID:  item.ID,
			fromIndex: fromIndex,
		}, nil
	}

	// Cross-column: insert at the hovered ticket's index, or prepend
	// when dropped on empty column space. The asymmetry with the
	// same-column append is deliberate.
	order := dest.TicketOrder()
	insertAt := 0
	if target.TicketID != "" {
		insertAt = indexOf(order, target.TicketID)
		if insertAt < 0 {
			return nil, ErrStaleDrag
		}
	}
	order = insertID(order, insertAt, item.ID)

	return &moveTicketCommand{
		ticketID:    item.ID,
		sourceID:    source.ID,
		destID:      dest.ID,
		destOrder:   order,
		insertAt:    insertAt,
		sourceIndex: fromIndex,
	}, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func insertID(ids []string, index int, id string) []string {
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}
