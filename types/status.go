package types

// Server lifecycle status values.
const (
	StatusStopped  = "stopped"
	StatusStarting = "starting"
	StatusRunning  = "running"
	StatusError    = "error"
)

// StatusEvent is sent to observers on every lifecycle transition.
type StatusEvent struct {
	Status  string `json:"status"`
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ServerStatus is a snapshot of the listening socket.
type ServerStatus struct {
	Status    string `json:"status"`
	Listening bool   `json:"listening"`
	Port      int    `json:"port"`
	Address   string `json:"address,omitempty"`
}

// PinStatus is the admin view of the access gate.
type PinStatus struct {
	Pin     string `json:"pin"`
	Enabled bool   `json:"enabled"`
}

// AdminStatusResponse merges lifecycle and PIN state for GET /status.
type AdminStatusResponse struct {
	ServerStatus
	Pin        string `json:"pin"`
	PinEnabled bool   `json:"pinEnabled"`
}
