package validate

import (
	"regexp"
	"strings"
)

const emailFormat = "login-email"

var (
	emailLocal  = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]$`)
	emailDomain = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)
)

// IsEmail reports whether s is a plain address: an unquoted local part that
// does not start with a dot, and a dotted domain ending in a TLD of at least
// two letters. Consecutive dots are rejected anywhere.
func IsEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || strings.Contains(s, "..") {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.HasPrefix(local, ".") {
		return false
	}
	return emailLocal.MatchString(local) && emailDomain.MatchString(domain)
}

func isEmail(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return IsEmail(s)
}
