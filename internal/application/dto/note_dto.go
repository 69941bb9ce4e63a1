package dto

import "time"

// CreateNoteRequest entrada de POST /notes.
type CreateNoteRequest struct {
	User  string `json:"user" form:"user"`
	Title string `json:"title" form:"title"`
	Text  string `json:"text" form:"text"`
}

// UpdateNoteRequest entrada de PATCH /notes: reemplazo completo de user, title, text y completed.
// Completed debe ser un booleano JSON; cualquier otro tipo se rechaza.
type UpdateNoteRequest struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed any    `json:"completed"`
}

// DeleteNoteRequest entrada de DELETE /notes.
type DeleteNoteRequest struct {
	ID string `json:"id" form:"id"`
}

// NoteResponse nota enriquecida con el username y avatar del usuario asignado.
type NoteResponse struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	RepairTime *float64  `json:"repairTime,omitempty"` // minutos
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
}
