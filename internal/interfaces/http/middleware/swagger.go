package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/dto"
)

// DocsConfig guards the API documentation endpoint
type DocsConfig struct {
	Enabled bool
	// AllowedIPs holds IPs or CIDRs; empty allows any address
	AllowedIPs []string
	// Auth runs after the IP check when set, typically AdminAuth
	Auth gin.HandlerFunc
}

// DocsProtection hides the documentation when disabled (404), then applies
// the IP allowlist (403) and the auth middleware, in that order. Malformed
// allowlist entries are ignored.
func DocsProtection(cfg DocsConfig) gin.HandlerFunc {
	allowed := parseAllowlist(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortDocs(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}

		if len(cfg.AllowedIPs) > 0 && !ipAllowed(c.ClientIP(), allowed) {
			abortDocs(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}

		if cfg.Auth != nil {
			cfg.Auth(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

func parseAllowlist(entries []string) []netip.Prefix {
	out := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if prefix, err := netip.ParsePrefix(entry); err == nil {
				out = append(out, prefix.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
		}
	}
	return out
}

func ipAllowed(ip string, allowed []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range allowed {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func abortDocs(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}
