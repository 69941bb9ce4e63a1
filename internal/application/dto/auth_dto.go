package dto

// LoginRequest credenciales de POST /auth.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse salida de login y refresh. El refresh token nunca viaja en el cuerpo.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// LoginResult resultado interno del login: el handler pone RefreshToken en la cookie.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}
