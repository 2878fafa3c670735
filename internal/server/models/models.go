package models

import (
	"encoding/json"
	"net"
)

// Request is one newline-delimited JSON call read from a client.
type Request struct {
	ID     int                    `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params,omitempty"`
}

type Response[T any] struct {
	ID     int    `json:"id"`
	Result *T     `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func Respond[T any](conn net.Conn, id int, result T) {
	json.NewEncoder(conn).Encode(Response[T]{ID: id, Result: &result})
}

func RespondError(conn net.Conn, id int, msg string) {
	json.NewEncoder(conn).Encode(Response[any]{ID: id, Error: msg})
}
