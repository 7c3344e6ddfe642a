// Package envelope constructs the gateway's structured error body. It is the
// only JSON shape this service produces itself; everything else on the wire
// is backend-defined and relayed opaquely.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Envelope is the error body shape: {"ok":false,"error":{...}}.
type Envelope struct {
	OK    bool  `json:"ok"`
	Error Error `json:"error"`
}

// Error carries a machine-readable code and a human-readable message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Build returns the serialized envelope for the given code and message.
func Build(code, message string) []byte {
	body, _ := json.Marshal(Envelope{Error: Error{Code: code, Message: message}})
	return body
}

// Write sends the envelope with the given HTTP status and an
// application/json content type.
func Write(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(Build(code, message))
}
