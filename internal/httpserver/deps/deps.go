package deps

import (
	"time"

	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
	"github.com/MrSnakeDoc/storefront/internal/store/cache"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	TimeNow func() time.Time // for testing, defaults to time.Now

	Store store.DocumentStore // document persistence
	Cache *cache.Cache        // listing cache, nil when Redis is disabled

	JWTSecret []byte // HMAC secret for bearer token verification

	AllowedCIDRS []string // IPs allowed on health/ops endpoints (empty = no filtering)
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	CatalogReloadTrigger chan struct{} // manual catalog reload, nil when seeding disabled

	WriteBurst  int // rate limit burst for write endpoints, per IP
	WritePerMin int // rate limit refill per minute for write endpoints, per IP
}

// Now returns the injected clock, falling back to the wall clock.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now().UTC()
}
