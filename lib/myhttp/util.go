package myhttp

import (
	"fmt"
	"net/http"
	"strconv"
)

func HostnameWithScheme(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// BoolQueryParam returns the boolean value of a query parameter, false when absent or unparsable
func BoolQueryParam(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return false
	}
	return value
}
