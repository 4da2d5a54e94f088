package users

import (
	"encoding/json"
	"net/http"
)

// Response é o resultado de uma operação: status HTTP mais o corpo que será
// serializado em JSON pela camada de transporte.
type Response struct {
	StatusCode int
	Body       any
}

// JSON serializa o corpo.
func (r Response) JSON() ([]byte, error) {
	return json.Marshal(r.Body)
}

// ErrorBody é o corpo {"Error": "..."} usado pelas operações individuais.
type ErrorBody struct {
	Error string `json:"Error"`
}

// MissingFieldsBody lista os campos obrigatórios ausentes no POST.
type MissingFieldsBody struct {
	Error         string   `json:"Error"`
	MissingFields []string `json:"Missing Fields"`
}

// MessageBody é a confirmação do DELETE.
type MessageBody struct {
	Message string `json:"Message"`
}

// DispatchBody é usado pelo roteador; note a chave em minúsculas.
type DispatchBody struct {
	Message string `json:"message"`
}

func errorResponse(status int, msg string) Response {
	return Response{StatusCode: status, Body: ErrorBody{Error: msg}}
}

func ok(body any) Response {
	return Response{StatusCode: http.StatusOK, Body: body}
}

const (
	msgBodyMissing      = "Request body is missing"
	msgInvalidJSON      = "Invalid JSON format"
	msgMissingFields    = "Missing required fields"
	msgGetNotFound      = "User not Found"
	msgNotFound         = "User not found"
	msgNoFieldsToUpdate = "No valid fields to update"
	msgDeleted          = "User successfully deleted"
	msgInvalidRequest   = "Invalid request method or parameters"
)
