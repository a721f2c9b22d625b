package models

import (
	"github.com/moyoez/localshare-go/share"
)

// ServerContext is the shared state read by request handlers and written by the admin channel.
type ServerContext struct {
	Registry *share.Registry
	Gate     *AccessGate
	Upload   *UploadSettings
	Language string

	// Address returns the "ip:port" the public server listens on, empty when stopped.
	Address func() string
}

func (sc *ServerContext) ServerAddress() string {
	if sc.Address == nil {
		return ""
	}
	return sc.Address()
}
