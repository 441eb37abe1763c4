package fs

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content hashes over file bytes and operation configuration.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ContentHash digests content, a separator and the canonical JSON form of config.
// encoding/json writes map keys in sorted order, so equal configurations serialize identically.
func (h *Hasher) ContentHash(content []byte, config any) (string, error) {
	hasher := xxhash.New()

	_, _ = hasher.Write(content)
	_, _ = hasher.Write([]byte{0}) // Section separator

	if config != nil {
		data, err := json.Marshal(config)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
		}
		_, _ = hasher.Write(data)
	}
	_, _ = hasher.Write([]byte{0})

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
