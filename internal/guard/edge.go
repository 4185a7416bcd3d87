// Package guard implements the edge pre-route filter. It classifies request
// paths by prefix and short-circuits obviously unauthenticated or
// under-privileged requests using an UNVERIFIED token parse.
//
// This is a latency/UX optimization, not the security boundary: a forged
// token passes this filter. Every protected route handler revalidates the
// session through the auth service before reading or mutating anything.
package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
)

// PathClass is the protection class of a request path.
type PathClass int

const (
	ClassPublic PathClass = iota
	ClassAdminPage
	ClassAdminAPI
	ClassAccountPage
	ClassCustomerAPI
)

// LoginPath is where page requests without a session are sent. The original
// path is preserved in the redirect query parameter.
const LoginPath = "/login"

// AccountHome is where authenticated non-admins are sent when they hit an
// admin page.
const AccountHome = "/account"

// Classify maps a request path onto its protection class by prefix.
func Classify(path string) PathClass {
	switch {
	case path == "/api/admin" || strings.HasPrefix(path, "/api/admin/"):
		return ClassAdminAPI
	case path == "/api/account" || strings.HasPrefix(path, "/api/account/"):
		return ClassCustomerAPI
	case path == "/admin" || strings.HasPrefix(path, "/admin/"):
		return ClassAdminPage
	case path == "/account" || strings.HasPrefix(path, "/account/"):
		return ClassAccountPage
	default:
		return ClassPublic
	}
}

// API reports whether the class is served JSON errors rather than redirects.
func (p PathClass) API() bool {
	return p == ClassAdminAPI || p == ClassCustomerAPI
}

// Edge returns the pre-route middleware. It decodes the session cookie
// WITHOUT signature verification (structure and expiry only) and gates by
// class:
//
//   - public: pass through
//   - protected without a plausible session: 401 JSON for APIs, login
//     redirect for pages
//   - admin paths with a non-admin session: 403 JSON for the API, redirect
//     to the account area for pages (the user is authenticated, so no login
//     round trip)
func Edge(codec *auth.Codec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			class := Classify(c.Request().URL.Path)
			if class == ClassPublic {
				return next(c)
			}

			session := fastSession(c, codec, cookieName)
			if session == nil {
				return rejectAnonymous(c, class)
			}

			if (class == ClassAdminAPI || class == ClassAdminPage) && !session.IsAdmin() {
				if class == ClassAdminAPI {
					return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
						Error: apperrors.ErrForbidden.Error(),
						Code:  "FORBIDDEN",
					})
				}
				return c.Redirect(http.StatusFound, AccountHome)
			}

			return next(c)
		}
	}
}

// fastSession parses the cookie without verifying the signature. nil means
// missing, structurally invalid, or expired.
func fastSession(c echo.Context, codec *auth.Codec, cookieName string) *auth.Session {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := codec.DecodeUnverified(cookie.Value)
	if err != nil {
		return nil
	}
	return session
}

func rejectAnonymous(c echo.Context, class PathClass) error {
	if class.API() {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: apperrors.ErrUnauthorized.Error(),
			Code:  "UNAUTHORIZED",
		})
	}
	target := LoginPath + "?redirect=" + url.QueryEscape(c.Request().URL.RequestURI())
	return c.Redirect(http.StatusFound, target)
}
