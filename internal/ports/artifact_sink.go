package ports

import "context"

type Artifact struct {
	Path string
	Data []byte
}

// ArtifactSink commits a batch of files all-or-nothing.
type ArtifactSink interface {
	Commit(ctx context.Context, artifacts []Artifact) error
}
