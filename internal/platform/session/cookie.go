// Package session manages the client-side session cookie.
//
// Sessions are stateless: the cookie carries a signed token and there is no
// server-side session table. Issuing and revoking a session is therefore
// purely a matter of setting and clearing cookies.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie the current deployment issues sessions under.
const CookieName = "auth-token"

// CookieMaxAge is the session cookie lifetime in seconds (7 days), matching
// the embedded token expiry.
const CookieMaxAge = 7 * 24 * 60 * 60

// LegacyCookieNames lists every cookie name the storefront has ever issued
// sessions under. Logout clears all of them so stale cookies from older
// deployments cannot linger. Adding a newly retired name here is the only
// change needed.
var LegacyCookieNames = []string{
	CookieName,
	"token",
	"jwt",
	"session",
	"kalakraft-auth",
	"auth_token",
}

// secure reports whether cookies should carry the Secure flag.
// Only release deployments run behind TLS.
func secure() bool {
	return gin.Mode() == gin.ReleaseMode
}

// Issue sets the session cookie on the response: HTTP-only, lax same-site,
// scoped to the whole site, secure-flagged in release mode only.
func Issue(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, CookieMaxAge, "/", "", secure(), true)
}

// Revoke clears every known session cookie name by re-setting each to an
// empty value with an immediate expiry. It is a no-op success when no
// session cookie exists.
func Revoke(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	for _, name := range LegacyCookieNames {
		c.SetCookie(name, "", -1, "/", "", secure(), true)
	}
}
