package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	list := []Ticket{
		{ID: "1", Status: StatusResolved},
		{ID: "2", Status: StatusOpen},
		{ID: "3", Status: StatusOpen},
		{ID: "4", Status: Status("Arquivado")},
	}

	columns := Board(list)
	require.Len(t, columns, 3)

	assert.Equal(t, StatusOpen, columns[0].Status)
	assert.Equal(t, 2, columns[0].Count)
	assert.Equal(t, "2", columns[0].Tickets[0].ID)
	assert.Equal(t, "3", columns[0].Tickets[1].ID)

	assert.Equal(t, StatusInProgress, columns[1].Status)
	assert.Zero(t, columns[1].Count)
	assert.NotNil(t, columns[1].Tickets)

	assert.Equal(t, StatusResolved, columns[2].Status)
	assert.Equal(t, 1, columns[2].Count)
}
