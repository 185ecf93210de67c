package auth

import (
	"strings"

	"github.com/dmitrijs2005/farmauth/internal/common"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively. Returns "" when the
// header is missing or uses another scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
