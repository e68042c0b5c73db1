package provider

import "context"

// IChatProvider runs the inbound event loop of a chat platform until the
// context is cancelled.
type IChatProvider interface {
	Run(ctx context.Context) error
}
