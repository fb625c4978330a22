package dashboardserver

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
)

const sessionIdentityKey = "dashboard.session.identity"

// SessionReader yields the verified identity carried by a request, or nil.
type SessionReader interface {
	Read(r *http.Request) (*userdomain.SessionIdentity, error)
}

// SessionMiddleware resolves the session cookie once per request. Unreadable
// cookies count as no session.
func SessionMiddleware(sessions SessionReader, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(c *gin.Context) {
		if sessions != nil {
			identity, err := sessions.Read(c.Request)
			if err != nil {
				logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "ignoring unreadable session cookie", slog.String("error", err.Error()))
			} else if identity != nil {
				c.Set(sessionIdentityKey, identity)
			}
		}
		c.Next()
	}
}

func sessionIdentity(c *gin.Context) *userdomain.SessionIdentity {
	value, ok := c.Get(sessionIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*userdomain.SessionIdentity)
	return identity
}
