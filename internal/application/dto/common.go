package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y topes a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// APIResponse sobre común de todas las respuestas: {success, data?, message?, error?}.
// Error lleva el código de error (VALIDATION_ERROR, PLAN_NOT_FOUND, ...).
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(data any, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// Fail construye una respuesta de error; data opcional (ej. detalle de faltantes).
func Fail(code, message string, data any) APIResponse {
	return APIResponse{Success: false, Error: code, Message: message, Data: data}
}
