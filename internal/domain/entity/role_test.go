package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

func TestParseRoles_FormasDeEntrada(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []entity.Role
	}{
		{"slice de strings", []string{"Employee", "Admin"}, []entity.Role{entity.RoleAdmin, entity.RoleEmployee}},
		{"slice any", []any{"Manager"}, []entity.Role{entity.RoleManager}},
		{"string JSON", `["Employee","Manager"]`, []entity.Role{entity.RoleManager, entity.RoleEmployee}},
		{"separado por comas", "Employee, Admin ,Manager", []entity.Role{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee}},
		{"un solo rol", "Manager", []entity.Role{entity.RoleManager}},
		{"mayúsculas indistintas", "admin", []entity.Role{entity.RoleAdmin}},
		{"duplicados", []string{"Admin", "admin", "Admin"}, []entity.Role{entity.RoleAdmin}},
		{"raw JSON arreglo", json.RawMessage(`["Admin"]`), []entity.Role{entity.RoleAdmin}},
		{"raw JSON string", json.RawMessage(`"Employee,Manager"`), []entity.Role{entity.RoleManager, entity.RoleEmployee}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.ParseRoles(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRoles_VacioDevuelveNil(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "[]", json.RawMessage("null"), []string{}} {
		got, err := entity.ParseRoles(in)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestParseRoles_RolDesconocido(t *testing.T) {
	_, err := entity.ParseRoles("Admin,Janitor")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid Role Janitor", err.Error())

	_, err = entity.ParseRoles([]any{"Admin", 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.ParseRoles(42)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, entity.HasAnyRole([]string{"Employee", "Manager"}, entity.RoleAdmin, entity.RoleManager))
	assert.False(t, entity.HasAnyRole([]string{"Employee"}, entity.RoleAdmin, entity.RoleManager))
	assert.False(t, entity.HasAnyRole(nil, entity.RoleAdmin))
}

func TestFoldKey_InsensibleAMayusculas(t *testing.T) {
	assert.Equal(t, entity.FoldKey("Fix Pump"), entity.FoldKey("fix pump"))
	assert.Equal(t, entity.FoldKey("DAVE"), entity.FoldKey("dave"))
	assert.NotEqual(t, entity.FoldKey("Fix Pump"), entity.FoldKey("Fix Pumps"))
}
