package dto

import "time"

// APIResponse sobre común de todas las respuestas HTTP.
// En error Success=false, Code trae el tipo de fallo y Data va vacío.
type APIResponse struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK envuelve data en una respuesta exitosa.
func OK(message string, data any) APIResponse {
	if message == "" {
		message = "Operación exitosa"
	}
	return APIResponse{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// Fail construye el cuerpo de error HTTP.
func Fail(code, message string) APIResponse {
	return APIResponse{Success: false, Code: code, Message: message, Timestamp: time.Now()}
}
