package client

// Local mirror of the board as served by /api/boards/get. The session
// holds one of these as the single source of truth for the current
// board; drop commands mutate it optimistically and roll it back when
// the server rejects the change.

type Ticket struct {
	ID              string   `json:"id"`
	ColumnID        string   `json:"column_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	BackgroundColor string   `json:"background_color"`
	Labels          []string `json:"labels,omitempty"`
	Position        int      `json:"position"`
}

type Column struct {
	ID              string   `json:"id"`
	BoardID         string   `json:"board_id"`
	Title           string   `json:"title"`
	BackgroundColor string   `json:"background_color"`
	Position        int      `json:"position"`
	OrderVersion    int64    `json:"order_version"`
	Tickets         []Ticket `json:"tickets"`
}

type Board struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	OrderVersion int64    `json:"order_version"`
	Columns      []Column `json:"columns"`
}

// Clone deep-copies the board so a command can snapshot pre-drop state.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Columns = make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		clone.Columns[i] = col
		clone.Columns[i].Tickets = append([]Ticket(nil), col.Tickets...)
	}
	return &clone
}

// Column returns a pointer to the column with the given ID, or nil.
func (b *Board) Column(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// ColumnOf returns the column holding the given ticket, or nil.
func (b *Board) ColumnOf(ticketID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].TicketIndex(ticketID) >= 0 {
			return &b.Columns[i]
		}
	}
	return nil
}

// ColumnOrder returns the board's column IDs in display order.
func (b *Board) ColumnOrder() []string {
	order := make([]string, len(b.Columns))
	for i, col := range b.Columns {
		order[i] = col.ID
	}
	return order
}

func (b *Board) columnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// TicketIndex returns the index of the ticket in the column's order, or
// -1 if the column does not hold it.
func (c *Column) TicketIndex(ticketID string) int {
	for i := range c.Tickets {
		if c.Tickets[i].ID == ticketID {
			return i
		}
	}
	return -1
}

// TicketOrder returns the column's ticket IDs in display order.
func (c *Column) TicketOrder() []string {
	order := make([]string, len(c.Tickets))
	for i, t := range c.Tickets {
		order[i] = t.ID
	}
	return order
}

func (c *Column) removeTicket(index int) Ticket {
	ticket := c.Tickets[index]
	c.Tickets = append(c.Tickets[:index], c.Tickets[index+1:]...)
	return ticket
}

func (c *Column) insertTicket(index int, ticket Ticket) {
	ticket.ColumnID = c.ID
	c.Tickets = append(c.Tickets, Ticket{})
	copy(c.Tickets[index+1:], c.Tickets[index:])
	c.Tickets[index] = ticket
}
