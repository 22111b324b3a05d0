package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-manager/internal/usecase/booking"
)

func actorFrom(c *gin.Context) ucBooking.Actor {
	id, role := middleware.CurrentUser(c)
	return ucBooking.Actor{UserID: id, Role: role}
}

// pathID reads a positive numeric path parameter. It writes a 400 and
// returns false when the value is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

// queryString returns the first of names present in the query string. Later
// names are aliases; errors are reported under the first.
func queryString(c *gin.Context, names ...string) string {
	for _, n := range names {
		if raw := strings.TrimSpace(c.Query(n)); raw != "" {
			return raw
		}
	}
	return ""
}

func queryUint(c *gin.Context, names ...string) (*uint, bool) {
	name, raw := names[0], queryString(c, names...)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryInt(c *gin.Context, names ...string) (int, bool) {
	name, raw := names[0], queryString(c, names...)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return v, true
}

// queryDate parses a YYYY-MM-DD query parameter in loc.
func queryDate(c *gin.Context, loc *time.Location, names ...string) (*time.Time, bool) {
	name, raw := names[0], queryString(c, names...)
	if raw == "" {
		return nil, true
	}
	t, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, name+" must be YYYY-MM-DD.")
		return nil, false
	}
	return &t, true
}
