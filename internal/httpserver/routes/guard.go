package routes

import (
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

// restricted applies the client IP and Host header restrictions.
func restricted(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}

// mutating is restricted plus the write rate limit.
func mutating(d deps.Deps) []Middleware {
	mws := restricted(d)
	if d.WriteLimit != nil {
		mws = append(mws, d.WriteLimit)
	}
	return mws
}
