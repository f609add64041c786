package sidechannel

import (
	"context"

	"github.com/jymfony/scriba/runtime/reflection"
)

// Backend is a provider that can also be listed and written to.
type Backend interface {
	reflection.Provider
	ClassIDs(ctx context.Context) ([]reflection.ClassID, error)
	Put(ctx context.Context, id reflection.ClassID, data *reflection.ClassData) error
	Close() error
}
