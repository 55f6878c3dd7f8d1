package credits

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierFormats(t *testing.T) {
	p := NewRandomIdentifierProvider()

	assert.Regexp(t, regexp.MustCompile(`^BRRP-NFT-\d+-[0-9A-F]{10}$`), p.TokenID())
	assert.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]{40}$`), p.BlockchainAddress())
	assert.Regexp(t, regexp.MustCompile(`^OPENEARTH-\d+-[0-9A-F]{10}$`), p.RegistryID())
	assert.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]{64}$`), p.TransactionHash())
}

func TestIdentifiersAreUnique(t *testing.T) {
	p := NewRandomIdentifierProvider()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := p.TokenID()
		assert.False(t, seen[id], "duplicate token ID %s", id)
		seen[id] = true
	}
}
