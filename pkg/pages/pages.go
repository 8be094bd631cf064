package pages

import (
	"strings"
	"sync/atomic"
	"time"

	"mercator-hq/callisto/pkg/wire"
)

// Content types served by the builder.
const (
	ContentHTML    = "text/html"
	ContentFavicon = "image/x-icon"
	ContentJPEG    = "image/jpeg"
)

// Gallery table dimensions.
const (
	galleryCols = 6
	galleryRows = 6
)

// Builder turns parsed request lines into complete responses. It is safe
// for concurrent use; the page set can be swapped while requests are served.
type Builder struct {
	set atomic.Pointer[Set]
	now func() time.Time
}

// NewBuilder creates a builder over set. A nil set selects the embedded pages.
func NewBuilder(set *Set) *Builder {
	if set == nil {
		set = DefaultSet()
	}
	b := &Builder{now: time.Now}
	b.set.Store(set)
	return b
}

// Swap replaces the page set used by subsequent requests.
func (b *Builder) Swap(set *Set) {
	if set != nil {
		b.set.Store(set)
	}
}

// Current returns the page set in use.
func (b *Builder) Current() *Set {
	return b.set.Load()
}

// Respond routes req and returns the encoded response bytes.
func (b *Builder) Respond(req wire.Request) []byte {
	now := b.now()
	return b.Route(req, now).EncodeAt(now)
}

// Route selects the response for req without encoding it.
func (b *Builder) Route(req wire.Request, now time.Time) wire.Response {
	set := b.set.Load()
	resp := wire.Response{
		Proto:       req.Proto,
		Status:      wire.StatusOK,
		ContentType: ContentHTML,
	}

	stamp := wire.FormatDate(now)
	target := req.Target
	switch {
	case target == "/":
		resp.Body = Replace(set.Root, func(name string) string {
			if name == "time" {
				return stamp
			}
			return ""
		})
	case target == "/many_photos":
		resp.Body = Replace(set.Gallery, func(name string) string {
			switch name {
			case "time":
				return stamp
			case "table":
				return Table(galleryCols, galleryRows)
			}
			return ""
		})
	case target == "/favicon.ico":
		resp.ContentType = ContentFavicon
		resp.Body = set.Favicon
	case strings.HasPrefix(target, "/photo") && strings.HasSuffix(target, ".jpg"):
		resp.ContentType = ContentJPEG
		resp.Body = set.Photo
	default:
		resp.Status = wire.StatusNotFound
		resp.Body = Replace(set.NotFound, func(name string) string {
			if name == "page" {
				return target
			}
			return ""
		})
	}
	return resp
}
