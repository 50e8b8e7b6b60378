// Package identity stands in for a wallet and a zero-knowledge prover. It
// makes identifiers that look the part and verifies nothing.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/utils"
)

var log = logging.Log

const (
	AddressPrefix = "midnight1"
	ProofPrefix   = "zkp_"
	RootPrefix    = "root"
	MemberPrefix  = "member_"
)

// Proof is a membership proof package. All fields are random.
type Proof struct {
	Proof        string `json:"proof"`
	RootHash     string `json:"root_hash"`
	MembershipID string `json:"membership_id,omitempty"`
}

// Provider hands out wallet addresses and proofs. The zero value generates
// everything and does not pause.
type Provider struct {
	// WalletAddress, when not blank, is returned by ConnectWallet as is.
	WalletAddress string
	// SimulateLatency makes each call take about as long as the real thing.
	SimulateLatency bool
}

var (
	walletLatency = 800 * time.Millisecond
	proofLatency  = 1000 * time.Millisecond
)

// ConnectWallet returns the configured address, or a new one derived from a
// fresh key pair.
func (p Provider) ConnectWallet(ctx context.Context) (address string, err error) {
	if err = p.pause(ctx, walletLatency); err != nil {
		return
	}
	if configured := strings.TrimSpace(p.WalletAddress); configured != "" {
		log.Info("using the configured wallet address")
		return configured, nil
	}

	kp, err := NewKeyPair()
	if err != nil {
		return
	}
	key := kp.Base36()
	for len(key) < 18 {
		key = "0" + key
	}
	address = AddressPrefix + key[:18]
	log.Debugf("generated wallet %s", address)
	return
}

// MembershipProof makes a proof package. Nothing about the caller is checked
// and nothing can verify the result.
func (p Provider) MembershipProof(ctx context.Context) (proof Proof, err error) {
	if err = p.pause(ctx, proofLatency); err != nil {
		return
	}
	token, err := randomBase36(14)
	if err != nil {
		return
	}
	root, err := randomBase36(10)
	if err != nil {
		return
	}
	member, err := randomBase36(6)
	if err != nil {
		return
	}
	proof = Proof{
		Proof:        ProofPrefix + token,
		RootHash:     RootPrefix + root,
		MembershipID: MemberPrefix + member,
	}
	return
}

func (p Provider) pause(ctx context.Context, d time.Duration) error {
	if !p.SimulateLatency {
		return nil
	}
	return utils.Pause(ctx, d)
}
