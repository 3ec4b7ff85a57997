// Package uri parses and formats gisht's short gist identifiers, of the
// form "[host:][owner/]name" (§1, §3, component C1).
package uri

import (
	"regexp"

	"github.com/gisht/gisht/internal/result"
)

// component matches a single [host:], [owner/], or name segment.
const componentPattern = `[A-Za-z0-9_-]+`

// The owner group matches zero-or-more id characters before a literal "/",
// so both the implicit form ("name", no slash at all — owner stays "")
// and the explicit empty-owner form ("/name") parse to Owner == "", per
// §3's round-trip law: Display emits "host:/name" for an empty owner and
// Parse must restore that empty owner from it.
var uriRe = regexp.MustCompile(`^(?:(` + componentPattern + `):)?(?:([A-Za-z0-9_-]*)/)?(` + componentPattern + `)$`)

// HostResolver reports whether a host id is registered, breaking the
// import cycle uri would otherwise have on the host registry.
type HostResolver interface {
	IsRegistered(hostID string) bool
	DefaultHostID() string
}

// URI is the triple (host_id, owner, name) from §3. owner may be empty
// when the host treats the name as a globally unique id.
type URI struct {
	Host  string
	Owner string
	Name  string
}

// Parse parses s against the grammar in §3, defaulting an absent host
// component to reg's default id. It returns *result.MalformedURIError if s
// does not match the grammar end-to-end (no substring match — the regex is
// anchored), and *result.UnknownHostError if the host component names an
// unregistered host.
func Parse(s string, reg HostResolver) (URI, error) {
	m := uriRe.FindStringSubmatch(s)
	if m == nil {
		return URI{}, &result.MalformedURIError{Input: s}
	}
	host, owner, name := m[1], m[2], m[3]
	if host == "" {
		host = reg.DefaultHostID()
	}
	if !reg.IsRegistered(host) {
		return URI{}, &result.UnknownHostError{HostID: host}
	}
	return URI{Host: host, Owner: owner, Name: name}, nil
}

// String formats u as "host:owner/name", or "host:/name" when Owner is
// empty — the inverse form Parse restores (§3's round-trip law, §8).
func (u URI) String() string {
	if u.Owner == "" {
		return u.Host + ":/" + u.Name
	}
	return u.Host + ":" + u.Owner + "/" + u.Name
}
