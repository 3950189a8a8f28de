package middleware

// identity.go defines how a request is attributed to a client for rate
// limiting.  The API has no authentication, so consoles identify
// themselves with an optional X-Console-ID header (a staff tablet name or
// "table-5"); requests without one share the "anon" bucket of their IP.

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderConsoleID is the optional client identification header.
const HeaderConsoleID = "X-Console-ID"

// consoleID returns the caller's self-reported console id or "anon".
func consoleID(c echo.Context) string {
	v := strings.TrimSpace(c.Request().Header.Get(HeaderConsoleID))
	if v == "" || len(v) > 64 {
		return "anon"
	}
	return v
}
