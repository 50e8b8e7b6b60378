package whisper

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/whisperchain/whisperchain/src/database"
)

// RefPrefix starts every content reference, in the style of a CID.
const RefPrefix = "bafywhisper"

func newRef() string {
	return RefPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// PutBlob stores encoded text under a new reference. Blobs are never
// changed or removed afterwards.
func (s *Service) PutBlob(ctx context.Context, encoded string) (ref string, err error) {
	if err = s.pause(ctx, blobLatency); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs := map[string]string{}
	if err = database.Load(ctx, s.store, database.Blobs, &blobs); err != nil {
		return
	}
	if blobs == nil {
		// stored as null
		blobs = map[string]string{}
	}
	ref = newRef()
	for {
		if _, taken := blobs[ref]; !taken {
			break
		}
		ref = newRef()
	}
	blobs[ref] = encoded
	if err = database.Save(ctx, s.store, database.Blobs, blobs); err != nil {
		return "", err
	}
	return
}

// Blob returns the encoded text stored under ref.
func (s *Service) Blob(ctx context.Context, ref string) (encoded string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs := map[string]string{}
	if err = database.Load(ctx, s.store, database.Blobs, &blobs); err != nil {
		return
	}
	encoded, ok = blobs[ref]
	return
}
