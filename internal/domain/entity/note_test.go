package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

func newOpenNote(created time.Time) *entity.Note {
	return &entity.Note{
		ID:        "n1",
		UserID:    "u1",
		Title:     "Fix Pump",
		Text:      "pierde agua",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNoteApply_CompletarFijaRepairTime(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	n := newOpenNote(created)

	n.Apply(entity.NoteChanges{UserID: "u1", Title: "Fix Pump", Text: "listo", Completed: true}, created.Add(90*time.Minute))

	require.True(t, n.RepairTime.Valid)
	assert.True(t, n.RepairTime.Decimal.Equal(decimal.NewFromInt(90)), "got %s", n.RepairTime.Decimal)
	assert.True(t, n.Completed)
	assert.Equal(t, "listo", n.Text)
}

func TestNoteApply_TrueATrueNoRecalcula(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	n := newOpenNote(created)
	n.Apply(entity.NoteChanges{UserID: "u1", Title: "Fix Pump", Text: "x", Completed: true}, created.Add(time.Hour))

	n.Apply(entity.NoteChanges{UserID: "u2", Title: "Fix Pump", Text: "editada", Completed: true}, created.Add(48*time.Hour))

	assert.True(t, n.RepairTime.Decimal.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "u2", n.UserID)
}

func TestNoteApply_SinTransicionNoFijaRepairTime(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	n := newOpenNote(created)
	n.Apply(entity.NoteChanges{UserID: "u1", Title: "t", Text: "x", Completed: false}, created.Add(time.Hour))
	assert.False(t, n.RepairTime.Valid, "false -> false")

	n = newOpenNote(created)
	n.Apply(entity.NoteChanges{UserID: "u1", Title: "t", Text: "x", Completed: true}, created.Add(time.Hour))
	n.Apply(entity.NoteChanges{UserID: "u1", Title: "t", Text: "x", Completed: false}, created.Add(2*time.Hour))
	assert.True(t, n.RepairTime.Decimal.Equal(decimal.NewFromInt(60)), "true -> false conserva el valor")
	assert.False(t, n.Completed)
}

func TestRepairMinutes_ConFraccion(t *testing.T) {
	from := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	got := entity.RepairMinutes(from, from.Add(90*time.Second))
	assert.True(t, got.Equal(decimal.NewFromFloat(1.5)), "got %s", got)
}
