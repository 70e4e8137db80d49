package dto

// RegisterRequest entrada para registro de cuenta (password en texto, se hashea en el caso de uso).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Email    string `json:"email" validate:"required,email"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenTypeBearer único esquema de token soportado.
const TokenTypeBearer = "Bearer"

// LoginResponse sesión emitida: token opaco más la identidad mínima de la cuenta.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
}

// AccountResponse salida de una cuenta (sin password ni token).
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ValidateResponse resultado de GET /auth/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}
