package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore keeps rendered contracts on local disk. Suitable for single-node
// deployments; swap in an object-store implementation otherwise.
type DirStore struct {
	Dir string
}

func (s DirStore) Put(_ context.Context, name string, body []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating contract dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("writing contract: %w", err)
	}
	return "file://" + path, nil
}
