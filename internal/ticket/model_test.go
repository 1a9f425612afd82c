package ticket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detranagenda/painel/internal/util"
)

func TestNormalizeDefaults(t *testing.T) {
	blank := "  "
	in := Input{
		AppointmentID: &blank,
		StudentName:   "  Ana Souza ",
		StudentCPF:    "12345678901",
		Description:   " sem biometria ",
	}
	in.Normalize()

	assert.Nil(t, in.AppointmentID)
	assert.Equal(t, "Ana Souza", in.StudentName)
	assert.Equal(t, "123.456.789-01", in.StudentCPF)
	assert.Equal(t, "sem biometria", in.Description)
	assert.Equal(t, TypeSGA, in.Type)
	assert.Equal(t, StatusOpen, in.Status)
	require.NoError(t, in.Validate())
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]Status{
		"":             StatusOpen,
		"aberto":       StatusOpen,
		"EM ANDAMENTO": StatusInProgress,
		" resolvido ":  StatusResolved,
		"Arquivado":    Status("Arquivado"),
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeStatus(in), "NormalizeStatus(%q)", in)
	}
}

func TestValidate(t *testing.T) {
	valid := Input{StudentName: "Ana", StudentCPF: "123", Description: "x", Type: TypeCRT, Status: StatusResolved}

	tests := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{name: "ok", mutate: func(*Input) {}},
		{name: "tipo", mutate: func(in *Input) { in.Type = "Fax" }, want: ErrInvalidType},
		{name: "status", mutate: func(in *Input) { in.Status = "Arquivado" }, want: ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	in := valid
	in.Description = ""
	var vErr *util.ValidationError
	require.True(t, errors.As(in.Validate(), &vErr))
	assert.Equal(t, "descrição", vErr.Field)
}

func TestApplyPreservesIdentity(t *testing.T) {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)
	link := "app-1"

	original := Input{AppointmentID: &link, StudentName: "Ana", StudentCPF: "1", Description: "a", Type: TypeSGA, Status: StatusOpen}.
		Build("t-1", created)

	edited := Input{StudentName: "Ana Maria", StudentCPF: "1", Description: "b", Type: TypeCRT, Status: StatusInProgress}.
		Apply(original, later)

	assert.Equal(t, "t-1", edited.ID)
	assert.Equal(t, created, edited.CreatedAt)
	assert.Equal(t, later, edited.UpdatedAt)
	require.NotNil(t, edited.AppointmentID)
	assert.Equal(t, "app-1", *edited.AppointmentID)
	assert.Equal(t, TypeCRT, edited.Type)
	assert.Equal(t, StatusInProgress, edited.Status)
}
