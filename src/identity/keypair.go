package identity

import (
	crypto_rand "crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/box"
)

// KeyPair is the key pair behind a mock wallet. Only the public half is used,
// to derive the address; nothing is ever signed with it.
type KeyPair struct {
	public *[32]byte
}

// NewKeyPair generates a fresh box key pair and keeps the public key.
func NewKeyPair() (kp KeyPair, err error) {
	kp.public, _, err = box.GenerateKey(crypto_rand.Reader)
	if err != nil {
		err = errors.Wrap(err, "generating wallet keys")
	}
	return
}

// Base36 renders the public key in lowercase base36.
func (kp KeyPair) Base36() string {
	return toBase36(kp.public[:])
}

func toBase36(b []byte) string {
	return new(big.Int).SetBytes(b).Text(36)
}

// randomBase36 returns n random lowercase base36 characters.
func randomBase36(n int) (s string, err error) {
	var sb strings.Builder
	// 16 random bytes give about 24 base36 characters
	buf := make([]byte, 16)
	for sb.Len() < n {
		if _, err = io.ReadFull(crypto_rand.Reader, buf); err != nil {
			return "", errors.Wrap(err, "reading random bytes")
		}
		sb.WriteString(toBase36(buf))
	}
	return sb.String()[:n], nil
}
