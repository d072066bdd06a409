package utils

import (
	"fmt"
	rndm "math/rand"
	"net/http"
	"strings"
	"time"

	"moyo/globals"
)

// --- Random String and ID Generators ---

var upperRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateTransactionID builds a checkout transaction id of the form
// TXN-<unix millis>-<random>.
func GenerateTransactionID() string {
	b := make([]rune, 6)
	for i := range b {
		b[i] = upperRunes[rndm.Intn(len(upperRunes))]
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), string(b))
}

// --- Request Helpers ---

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// SplitTags takes a comma-separated string and returns a cleaned []string
func SplitTags(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	var tags []string
	seen := make(map[string]bool)

	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)
		if !seen[tag] {
			tags = append(tags, tag)
			seen[tag] = true
		}
	}
	return tags
}
