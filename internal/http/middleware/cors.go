package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	corsHeaders = "Content-Type, X-Requested-With, X-Request-Id"
	corsMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsExpose  = "Content-Disposition, X-Request-Id"
)

// originPolicy guarda as origens exatas e os sufixos de subdomínio (*.dominio).
type originPolicy struct {
	exact    map[string]struct{}
	suffixes []string
	any      bool
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{exact: make(map[string]struct{}, len(origins))}
	for _, entry := range origins {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
		case entry == "*":
			p.any = true
		case strings.HasPrefix(entry, "*."):
			p.suffixes = append(p.suffixes, strings.ToLower(entry[1:]))
		default:
			p.exact[entry] = struct{}{}
		}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.any {
		return true
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, suffix := range p.suffixes {
		// o domínio raiz não casa com *.dominio
		if strings.HasSuffix(host, suffix) && host != suffix[1:] {
			return true
		}
	}
	return false
}

// CORS libera o painel web hospedado nas origens de ALLOW_ORIGINS.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newOriginPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); policy.allows(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Headers", corsHeaders)
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Expose-Headers", corsExpose)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
