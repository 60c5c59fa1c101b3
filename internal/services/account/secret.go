package account

import (
	"encoding/base64"
	"fmt"

	"github.com/gameontext/gameon-player/internal/dependencies/random"
)

const secretBytes = 32

// GenerateSecret returns a fresh shared secret: 32 random bytes, base64 encoded
func GenerateSecret(r random.Random) (string, error) {
	buf, err := r.Bytes(secretBytes)
	if err != nil {
		return "", fmt.Errorf("generate shared secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
