// Package imageurl maps the heterogeneous image references the backend hands
// out (absolute URLs, protocol-relative URLs, doubled upload paths, cloud
// storage URLs, bare filenames) to a single fetchable absolute URL.
package imageurl

import "strings"

// Placeholder is substituted when a reference is empty or its image fails to
// load. The client stops retrying once the placeholder is in place.
const Placeholder = "/images/placeholder.png"

type Resolver struct {
	backendOrigin string
	siteOrigin    string
}

// NewResolver builds a resolver. backendOrigin is the API host without its
// /api path (uploads live there); siteOrigin is where the storefront's own
// static images live.
func NewResolver(backendOrigin, siteOrigin string) *Resolver {
	return &Resolver{
		backendOrigin: strings.TrimSuffix(backendOrigin, "/"),
		siteOrigin:    strings.TrimSuffix(siteOrigin, "/"),
	}
}

// Resolve normalizes an image reference. The rules are order-sensitive and
// must not be rearranged: earlier shapes take precedence over later ones.
func (r *Resolver) Resolve(raw string) string {
	if raw == "" {
		return Placeholder
	}

	if strings.HasPrefix(raw, "data:") {
		return raw
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}

	// Doubled upload prefix from re-saved products: collapse before serving.
	if strings.Contains(raw, "/uploads/uploads/") {
		return r.backendOrigin + strings.Replace(raw, "/uploads/uploads/", "/uploads/", 1)
	}

	if strings.HasPrefix(raw, "/uploads/") {
		return r.backendOrigin + raw
	}

	if strings.Contains(raw, "cloudinary.com") {
		return "https://" + strings.TrimPrefix(raw, "//")
	}

	if strings.HasPrefix(raw, "/") {
		return r.siteOrigin + raw
	}

	// Any other path mentioning uploads: keep only the trailing filename.
	if strings.Contains(raw, "uploads") {
		parts := strings.Split(raw, "/")
		return r.backendOrigin + "/uploads/" + parts[len(parts)-1]
	}

	// Bare filename: assume the storefront's bundled images.
	return r.siteOrigin + "/images/" + raw
}
