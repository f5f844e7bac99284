package client

import "context"

// Command is one drag-drop resolved into a local mutation plus the
// server call that persists it. The session applies the mutation before
// the call resolves (optimistic) and restores a pre-drop snapshot when
// the call fails, so the UI never stays diverged from the server.
type Command interface {
	// Apply performs the optimistic local mutation.
	Apply(board *Board)
	// call submits the mutation to the server.
	call(ctx context.Context, c *Client, token string) error
}

type reorderColumnsCommand struct {
	boardID string
	order   []string
	version int64
}

func (cmd *reorderColumnsCommand) Apply(board *Board) {
	columns := make([]Column, 0, len(board.Columns))
	for _, id := range cmd.order {
		if col := board.Column(id); col != nil {
			columns = append(columns, *col)
		}
	}
	board.Columns = columns
	board.OrderVersion++
}

func (cmd *reorderColumnsCommand) call(ctx context.Context, c *Client, token string) error {
	version := cmd.version
	return c.ReorderColumns(ctx, token, cmd.boardID, cmd.order, &version)
}

type reorderTicketsCommand struct {
	columnID  string
	order     []string
	version   int64
	insertAt  int
	ticketID  string
	fromIndex int
}

func (cmd *reorderTicketsCommand) Apply(board *Board) {
	column := board.Column(cmd.columnID)
	if column == nil {
		return
	}
	ticket := column.removeTicket(cmd.fromIndex)
	column.insertTicket(cmd.insertAt, ticket)
	column.OrderVersion++
}

func (cmd *reorderTicketsCommand) call(ctx context.Context, c *Client, token string) error {
	version := cmd.version
	return c.ReorderTickets(ctx, token, cmd.columnID, cmd.columnID, cmd.ticketID, cmd.order, &version)
}

type moveTicketCommand struct {
	ticketID    string
	sourceID    string
	destID      string
	destOrder   []string
	insertAt    int
	sourceIndex int
}

func (cmd *moveTicketCommand) Apply(board *Board) {
	source := board.Column(cmd.sourceID)
	dest := board.Column(cmd.destID)
	if source == nil || dest == nil {
		return
	}
	ticket := source.removeTicket(cmd.sourceIndex)
	dest.insertTicket(cmd.insertAt, ticket)
	source.OrderVersion++
	dest.OrderVersion++
}

func (cmd *moveTicketCommand) call(ctx context.Context, c *Client, token string) error {
	return c.ReorderTickets(ctx, token, cmd.sourceID, cmd.destID, cmd.ticketID, cmd.destOrder, nil)
}
