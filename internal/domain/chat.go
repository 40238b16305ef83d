package domain

// Turn roles as the model API expects them on the wire.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatTurn is one message exchanged between the end user and the model.
// The full ordered list is round-tripped through the caller on every
// request; the server never stores it.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
