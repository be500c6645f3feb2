package web

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// newAPIProxy builds the same-origin rewrite proxy: requests under
// /auth, /contas and /emprestimos that no UI route claims are forwarded
// verbatim to the upstream API host, path and query preserved.
func newAPIProxy(target *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)

	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		// The upstream routes on its own host name.
		req.Host = target.Host
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		slog.ErrorContext(r.Context(), "API proxy error", "error", err, "url", r.URL.Path)
		http.Error(w, "Erro ao se conectar com o servidor.", http.StatusBadGateway)
	}

	return proxy
}
