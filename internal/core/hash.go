package core

import (
	"strconv"
	"unicode/utf16"
)

const ScopeIDPrefix = "data-v-"

// ScopeID derives the scope attribute shared by a component's script and
// styles. It only depends on the source path so rebuilds keep the same id.
func ScopeID(sourcePath string) string {
	return ScopeIDPrefix + HashSum(sourcePath)
}

// HashSum hashes a string the way the hash-sum package does for string
// values, so ids line up with the ones vue-loader produces.
func HashSum(value string) string {
	var hash int64
	hash = foldString(hash, "")
	hash = foldString(hash, "[object String]")
	hash = foldString(hash, "string")
	hash = foldString(hash, value)

	sum := strconv.FormatInt(hash, 16)
	for len(sum) < 8 {
		sum = "0" + sum
	}
	return sum
}

func foldString(hash int64, text string) int64 {
	if text == "" {
		return hash
	}
	for _, unit := range utf16.Encode([]rune(text)) {
		shifted := int64(int32(uint32(toInt32(hash)) << 5))
		hash = int64(toInt32(shifted - hash + int64(unit)))
	}
	if hash < 0 {
		return hash * -2
	}
	return hash
}

func toInt32(v int64) int32 {
	return int32(uint32(uint64(v)))
}
