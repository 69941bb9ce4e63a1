package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var msPerMinute = decimal.NewFromInt(int64(time.Minute / time.Millisecond))

// Note representa una nota de reparación asignada a un usuario.
// RepairTime son los minutos entre la creación y el cierre; sólo es válido si la nota se completó.
type Note struct {
	ID         string
	UserID     string
	Title      string
	Text       string
	Completed  bool
	RepairTime decimal.NullDecimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TitleKey clave de unicidad del título (insensible a mayúsculas).
func (n *Note) TitleKey() string {
	return FoldKey(n.Title)
}

// NoteChanges reemplazo completo de los campos editables de una nota.
type NoteChanges struct {
	UserID    string
	Title     string
	Text      string
	Completed bool
}

// Apply reemplaza los campos de la nota. RepairTime se fija una única vez, en la
// transición completed false -> true, como now - CreatedAt en minutos.
func (n *Note) Apply(ch NoteChanges, now time.Time) {
	if !n.Completed && ch.Completed {
		n.RepairTime = decimal.NewNullDecimal(RepairMinutes(n.CreatedAt, now))
	}
	n.UserID = ch.UserID
	n.Title = ch.Title
	n.Text = ch.Text
	n.Completed = ch.Completed
	n.UpdatedAt = now
}

// RepairMinutes minutos transcurridos entre from y to (con fracción de milisegundos).
func RepairMinutes(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(to.Sub(from).Milliseconds()).Div(msPerMinute)
}
