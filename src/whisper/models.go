package whisper

import (
	"github.com/whisperchain/whisperchain/src/reaction"
	"github.com/whisperchain/whisperchain/src/utils"
)

// Record is what the whispers collection stores for each whisper.
type Record struct {
	// ContentRef is the key of the encoded text in the blob collection
	ContentRef string `json:"content_ref"`
	// ProofReference is the root of the proof the whisper was posted with.
	// It is shown, never checked.
	ProofReference string          `json:"proof_reference"`
	CreatedAt      int64           `json:"created_at"`
	ReactionCounts reaction.Counts `json:"reaction_counts"`
}

// Whisper is a Record joined with its text, as the wall shows it.
type Whisper struct {
	Record
	// Index is the position in insertion order, used to react to it
	Index int `json:"index"`
	// Preview is nil when the blob of the record is missing
	Preview *string `json:"preview,omitempty"`
	Alias   string  `json:"alias"`
	TimeAgo string  `json:"time_ago"`
}

const encryptedMessage = "— encrypted message —"

// Text is the preview, or a fixed notice when there is none.
func (w Whisper) Text() string {
	if w.Preview == nil {
		return encryptedMessage
	}
	return *w.Preview
}

// ProofShort is the start of the proof reference, enough to tell posts apart.
func (w Whisper) ProofShort() string {
	return utils.Truncate(w.ProofReference, 8)
}
