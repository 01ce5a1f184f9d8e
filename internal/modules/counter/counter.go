package counter

import (
	"net/http"
	"strconv"
)

// CookieName is the cookie field holding the visit count.
const CookieName = "visits"

// Read parses the visit count from the request's cookies. Absent, malformed
// or negative values all default to 0 rather than erroring.
func Read(r *http.Request) int {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(c.Value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Write serializes n into the visits cookie. No path, domain or expiry is
// set, so the cookie is session-scoped per browser defaults.
func Write(w http.ResponseWriter, n int) {
	http.SetCookie(w, &http.Cookie{
		Name:  CookieName,
		Value: strconv.Itoa(n),
	})
}
