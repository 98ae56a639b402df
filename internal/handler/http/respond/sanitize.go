package respond

import (
	"regexp"
)

var (
	// URL の userinfo に含まれるパスワード
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// クエリ文字列のトークン類
	queryTokenPattern = regexp.MustCompile(`(?i)([?&](?:access_token|token|api_key|apikey|key)=)[^&\s"]+`)

	// Authorization ヘッダー値
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._~+/=-]+`)
)

// SanitizeError returns err's message with credentials masked.
// Feed URLs are user supplied and may carry tokens or basic-auth passwords.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = queryTokenPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
