package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CriarUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=150"`
	Nome     string  `json:"nome"     validate:"required,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Rol      string  `json:"rol"      validate:"required,oneof=atendente supervisor administrador"`
	PerfilID *string `json:"perfil_id" validate:"omitempty,uuid"`
}

type AtualizarUsuarioRequest struct {
	Nome     string  `json:"nome"     validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=atendente supervisor administrador"`
	Password string  `json:"password" validate:"omitempty,min=8"`
	PerfilID *string `json:"perfil_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Nome       string          `json:"nome"`
	Email      *string         `json:"email"`
	Rol        string          `json:"rol"`
	Ativo      bool            `json:"ativo"`
	PerfilID   *string         `json:"perfil_id"`
	PerfilNome *string         `json:"perfil_nome"`
	Permissoes map[string]bool `json:"permissoes"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
