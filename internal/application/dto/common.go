package dto

// Response envoltura estándar de la API: {success: true, data} en éxito,
// {success: false, message} en error.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// OK respuesta de éxito con datos.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKMessage respuesta de éxito con solo un mensaje.
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// OKList respuesta de éxito con colección y conteo.
func OKList(data any, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Error respuesta de fallo con mensaje para el cliente.
func Error(message string) Response {
	return Response{Success: false, Message: message}
}
