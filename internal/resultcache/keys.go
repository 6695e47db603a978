package resultcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// DetectKey derives the cache key of a detect call from its exact inputs
func DetectKey(pattern string, topK, hint int) string {
	return Key("detect", pattern, strconv.Itoa(topK), strconv.Itoa(hint))
}

// Key hashes parts into a fixed-length key under namespace
func Key(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return namespace + ":" + hex.EncodeToString(hash[:16])
}
