package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// flashCookieName is read once by the frontend and rendered as a banner.
const flashCookieName = "flash"

// flashTTL keeps the cookie around long enough for the redirected page load.
const flashTTL = 60

// setFlash stores a one-shot notice for the frontend as "category|message".
// gin query-escapes cookie values, so the frontend unescapes before splitting.
func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookieName, category+"|"+message, flashTTL, "/", "", c.Request.TLS != nil, false)
}

// flashRedirect sets the flash cookie and sends the browser back to the
// frontend page the form lives on.
func flashRedirect(c *gin.Context, frontendURL, path, category, message string) {
	setFlash(c, category, message)
	c.Redirect(http.StatusSeeOther, frontendURL+path)
}
