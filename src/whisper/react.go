package whisper

import (
	"context"

	"github.com/pkg/errors"
	"github.com/whisperchain/whisperchain/src/database"
	"github.com/whisperchain/whisperchain/src/reaction"
)

// React adds one to a counter of the whisper at index. Nothing is written
// when the category is unknown or the index is out of range.
func (s *Service) React(ctx context.Context, index int, c reaction.Category) (counts reaction.Counts, err error) {
	if !reaction.Valid(c) {
		err = errors.Wrapf(reaction.ErrInvalidCategory, "'%s'", c)
		return
	}
	if err = s.pause(ctx, reactLatency); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []Record
	if err = database.Load(ctx, s.store, database.Whispers, &records); err != nil {
		return
	}
	if index < 0 || index >= len(records) {
		err = errors.Wrapf(ErrWhisperNotFound, "%d", index)
		return
	}
	if err = records[index].ReactionCounts.Increment(c); err != nil {
		return
	}
	if err = database.Save(ctx, s.store, database.Whispers, records); err != nil {
		return
	}
	counts = records[index].ReactionCounts
	log.Debugf("whisper %d got a %s", index, c)
	return
}
