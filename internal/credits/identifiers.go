package credits

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// IdentifierProvider produces the opaque identifiers attached to credits and
// ledger entries. Uniqueness is the only hard requirement; the format is an
// external-system concern, so the real signer/registry integration can be
// swapped in without touching lifecycle logic.
type IdentifierProvider interface {
	TokenID() string
	BlockchainAddress() string
	RegistryID() string
	TransactionHash() string
}

// RandomIdentifierProvider generates identifiers from crypto/rand, standing
// in for the external signer and the Open Earth register.
type RandomIdentifierProvider struct{}

// NewRandomIdentifierProvider creates the default identifier provider
func NewRandomIdentifierProvider() *RandomIdentifierProvider {
	return &RandomIdentifierProvider{}
}

func (p *RandomIdentifierProvider) TokenID() string {
	return fmt.Sprintf("BRRP-NFT-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomHex(5)))
}

func (p *RandomIdentifierProvider) BlockchainAddress() string {
	return "0x" + randomHex(20)
}

func (p *RandomIdentifierProvider) RegistryID() string {
	return fmt.Sprintf("OPENEARTH-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomHex(5)))
}

func (p *RandomIdentifierProvider) TransactionHash() string {
	return "0x" + randomHex(32)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable
		panic(err)
	}
	return hex.EncodeToString(buf)
}
