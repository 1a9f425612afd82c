package ticket

// Column é uma coluna do quadro de chamados.
type Column struct {
	Status  Status   `json:"status"`
	Count   int      `json:"count"`
	Tickets []Ticket `json:"tickets"`
}

// Board particiona os chamados nas três colunas fixas, mantendo a ordem recebida.
func Board(list []Ticket) []Column {
	columns := make([]Column, len(Statuses))
	for i, status := range Statuses {
		columns[i] = Column{Status: status, Tickets: []Ticket{}}
	}
	for _, t := range list {
		for i := range columns {
			if columns[i].Status == t.Status {
				columns[i].Tickets = append(columns[i].Tickets, t)
				columns[i].Count++
				break
			}
		}
	}
	return columns
}
