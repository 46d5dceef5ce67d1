package savesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// envelope wraps a marshaled ZoneSaveData or GameSaveData payload with a
// checksum over its bytes, so a truncated or hand-edited save file is
// detected before its contents are trusted — generalized from the
// teacher's SaveEnvelope{Checksum, Chunks} in savesystem.go, with a
// single opaque Payload in place of the teacher's per-chunk map since
// this format has only one logical record per file.
type envelope struct {
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

func checksumOf(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// wrapEnvelope marshals payload bytes alongside their checksum.
func wrapEnvelope(payload []byte) ([]byte, error) {
	env := envelope{Checksum: checksumOf(payload), Payload: payload}
	return json.MarshalIndent(env, "", "  ")
}

// unwrapEnvelope verifies raw's checksum and returns the payload bytes it
// wraps.
func unwrapEnvelope(raw []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parsing save envelope: %w", err)
	}
	if checksumOf(env.Payload) != env.Checksum {
		return nil, fmt.Errorf("checksum mismatch, save file is corrupt")
	}
	return env.Payload, nil
}
