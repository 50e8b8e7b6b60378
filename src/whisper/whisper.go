package whisper

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/whisperchain/whisperchain/src/codec"
	"github.com/whisperchain/whisperchain/src/database"
	"github.com/whisperchain/whisperchain/src/identity"
	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/utils"
)

var log = logging.Log

const (
	// MaxLength is the longest whisper accepted, in characters
	MaxLength = 500
	// PreviewLength is how much of the text List returns
	PreviewLength = 200
)

var (
	ErrEmptyWhisper    = errors.New("whisper is empty")
	ErrWhisperTooLong  = errors.Errorf("whisper is longer than %d characters", MaxLength)
	ErrWhisperNotFound = errors.New("no whisper at that index")
)

// Prover makes the membership proof a whisper is posted with.
type Prover interface {
	MembershipProof(ctx context.Context) (identity.Proof, error)
}

var (
	blobLatency  = 800 * time.Millisecond
	postLatency  = 1200 * time.Millisecond
	reactLatency = 300 * time.Millisecond
)

// Service runs the whisper lifecycle against a Store.
//
// Every read-modify-write of a collection holds mu, so one Service never
// loses its own updates. Two Services, or two processes on the same Redis,
// can: the last whole-collection write wins.
type Service struct {
	// SimulateLatency adds the pauses a real chain and IPFS would cost
	SimulateLatency bool

	store  database.Store
	prover Prover
	now    func() time.Time
	mu     sync.Mutex
}

func New(store database.Store, prover Prover) *Service {
	return &Service{
		store:  store,
		prover: prover,
		now:    time.Now,
	}
}

// Post appends a new record with zero reactions. Neither the reference nor
// the proof is checked.
func (s *Service) Post(ctx context.Context, contentRef string, proof identity.Proof) (err error) {
	_, _, err = s.post(ctx, contentRef, proof)
	return
}

func (s *Service) post(ctx context.Context, contentRef string, proof identity.Proof) (index int, r Record, err error) {
	if err = s.pause(ctx, postLatency); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []Record
	if err = database.Load(ctx, s.store, database.Whispers, &records); err != nil {
		return
	}
	r = Record{
		ContentRef:     contentRef,
		ProofReference: proof.RootHash,
		CreatedAt:      s.now().Unix(),
	}
	records = append(records, r)
	if err = database.Save(ctx, s.store, database.Whispers, records); err != nil {
		return
	}
	index = len(records) - 1
	log.Debugf("posted whisper %d (%s)", index, contentRef)
	return
}

// List returns every whisper in insertion order with its preview.
func (s *Service) List(ctx context.Context) (whispers []Whisper, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []Record
	if err = database.Load(ctx, s.store, database.Whispers, &records); err != nil {
		return
	}
	blobs := map[string]string{}
	if err = database.Load(ctx, s.store, database.Blobs, &blobs); err != nil {
		return
	}

	now := s.now()
	whispers = make([]Whisper, len(records))
	for i, r := range records {
		encoded, ok := blobs[r.ContentRef]
		var preview *string
		if ok {
			text := utils.Truncate(codec.Decode(encoded), PreviewLength)
			preview = &text
		}
		whispers[i] = view(i, r, preview, now)
	}
	return
}

// Compose is the whole posting flow: clean and check the text, encode it,
// store the blob, get a proof and post the record.
func (s *Service) Compose(ctx context.Context, text string) (w Whisper, err error) {
	text, err = Clean(text)
	if err != nil {
		return
	}

	ref, err := s.PutBlob(ctx, codec.Encode(text))
	if err != nil {
		return
	}
	proof, err := s.prover.MembershipProof(ctx)
	if err != nil {
		err = errors.Wrap(err, "membership proof")
		return
	}
	index, r, err := s.post(ctx, ref, proof)
	if err != nil {
		return
	}
	preview := utils.Truncate(text, PreviewLength)
	w = view(index, r, &preview, s.now())
	log.Infof("whisper %d posted with proof %s", index, w.ProofShort())
	return
}

// Clean trims surrounding space and checks the length. The text is kept
// as typed, the wall escapes it when rendering.
func Clean(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyWhisper
	}
	if utf8.RuneCountInString(text) > MaxLength {
		return "", ErrWhisperTooLong
	}
	return text, nil
}

func view(i int, r Record, preview *string, now time.Time) Whisper {
	return Whisper{
		Record:  r,
		Index:   i,
		Preview: preview,
		Alias:   utils.StringToReadableHash(r.ProofReference),
		TimeAgo: utils.TimeAgo(r.CreatedAt, now),
	}
}

func (s *Service) pause(ctx context.Context, d time.Duration) error {
	if !s.SimulateLatency {
		return nil
	}
	return utils.Pause(ctx, d)
}
