package registry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/backchannel/internal/config/buffer"
	"github.com/dshills/backchannel/internal/config/validate"
)

// HeaderPrefix is the namespace of dynamic header settings.
const HeaderPrefix = "HTTP_"

// UserAgent is the only header that cannot be removed.
const UserAgent = "HTTP_USER_AGENT"

// DefaultUserAgent is served when the user agent list cannot be read.
const DefaultUserAgent = "Mozilla/4.0 (compatible; MSIE 6.0; Windows NT 5.1)"

// IsHeader reports whether name belongs to the dynamic header namespace.
func IsHeader(name string) bool {
	return strings.HasPrefix(name, HeaderPrefix) && len(name) > len(HeaderPrefix)
}

// HeaderField converts a header setting name to its HTTP field name:
// HTTP_ACCEPT_LANGUAGE becomes Accept-Language.
func HeaderField(name string) string {
	caser := cases.Title(language.Und)
	parts := strings.Split(strings.TrimPrefix(name, HeaderPrefix), "_")
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "-")
}

// isRemoval reports whether raw marks a dynamic header for removal.
func isRemoval(raw string) bool {
	switch strings.ToUpper(raw) {
	case "", strings.ToUpper(NoneMarker), DefaultMarker:
		return true
	}
	return false
}

// headerDescriptor synthesizes the descriptor of a dynamic header.
func (r *Registry) headerDescriptor(name string) Descriptor {
	d := Descriptor{
		Name:      name,
		Kind:      buffer.KindRandomLine,
		Validator: validate.String,
		Default:   literal(""),
		Doc:       headerDoc(name),
	}
	if name == UserAgent {
		d.Default = literal(r.userAgents)
		d.Fallback = DefaultUserAgent
	}
	return d
}

// Headers renders the active header settings, keyed by HTTP field name.
// Removed headers are skipped.
func (r *Registry) Headers() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string)
	for name, e := range r.entries {
		if !IsHeader(name) || e.buf == nil {
			continue
		}
		out[HeaderField(name)] = e.buf.Render()
	}
	return out
}
