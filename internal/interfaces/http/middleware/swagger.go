package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
)

// SwaggerProtection guards the API docs. Disabled docs answer 404. An IP
// allowlist, when set, is checked first; authRequired then runs when
// cfg.RequireAuth is set.
func SwaggerProtection(cfg config.SwaggerConfig, authRequired gin.HandlerFunc) gin.HandlerFunc {
	var (
		nets []*net.IPNet
		ips  []net.IP
	)
	for _, entry := range cfg.AllowedIPs {
		if strings.Contains(entry, "/") {
			if _, n, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, n)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWith(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		if len(cfg.AllowedIPs) > 0 && !ipAllowed(net.ParseIP(c.ClientIP()), ips, nets) {
			abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}
		if cfg.RequireAuth && authRequired != nil {
			authRequired(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

func ipAllowed(ip net.IP, ips []net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
