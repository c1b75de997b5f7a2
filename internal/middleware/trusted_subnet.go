package middleware

import (
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
)

// TrustedSubnetMiddleware only lets through requests whose X-Real-IP header
// lies in trustedSubnet. An empty subnet allows everything; an unparsable
// one is logged and also allows everything.
func TrustedSubnetMiddleware(trustedSubnet string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if trustedSubnet == "" {
			return next
		}

		_, ipNet, err := net.ParseCIDR(trustedSubnet)
		if err != nil {
			log.Warn().Err(err).Str("trusted_subnet", trustedSubnet).Msg("invalid trusted subnet, allowing all requests")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			realIP := r.Header.Get("X-Real-IP")
			if realIP == "" {
				log.Warn().Str("remote_addr", r.RemoteAddr).Str("uri", r.RequestURI).Msg("X-Real-IP header missing")
				http.Error(w, "X-Real-IP header is required", http.StatusForbidden)
				return
			}

			ip := net.ParseIP(realIP)
			if ip == nil {
				log.Warn().Str("real_ip", realIP).Msg("invalid IP in X-Real-IP header")
				http.Error(w, "Invalid IP address in X-Real-IP header", http.StatusForbidden)
				return
			}

			if !ipNet.Contains(ip) {
				log.Warn().Str("ip", ip.String()).Str("trusted_subnet", trustedSubnet).Msg("IP outside trusted subnet")
				http.Error(w, "IP address is not in trusted subnet", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
