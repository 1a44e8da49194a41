package siteconfig

import (
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// URL is a parsed URL value. It marshals as its string form in JSON and YAML.
type URL struct {
	u *url.URL
}

// ParseURL parses s into a URL.
func ParseURL(s string) (URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, err
	}
	return URL{u: u}, nil
}

// MustParseURL is like ParseURL but panics if s cannot be parsed.
func MustParseURL(s string) URL {
	u, err := ParseURL(s)
	if err != nil {
		panic(fmt.Sprintf("siteconfig: parse url %q: %v", s, err))
	}
	return u
}

// String returns the URL in string form, or "" for the zero URL.
func (u URL) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

// URL returns a copy of the underlying net/url value, or nil for the zero URL.
func (u URL) URL() *url.URL {
	if u.u == nil {
		return nil
	}
	return u.clone().u
}

// IsAbs reports whether the URL has a scheme and a host.
func (u URL) IsAbs() bool {
	return u.u != nil && u.u.IsAbs() && u.u.Host != ""
}

// Resolve resolves ref against u. For the zero URL or an unparsable ref, ref is
// returned unchanged.
func (u URL) Resolve(ref string) string {
	if u.u == nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.u.ResolveReference(r).String()
}

func (u URL) clone() URL {
	if u.u == nil {
		return URL{}
	}
	c := *u.u
	if u.u.User != nil {
		user := *u.u.User
		c.User = &user
	}
	return URL{u: &c}
}

// MarshalText implements encoding.TextMarshaler.
func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URL) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*u = URL{}
		return nil
	}
	parsed, err := ParseURL(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (u URL) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *URL) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return u.UnmarshalText([]byte(s))
}
