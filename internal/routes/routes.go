// Package routes declares the browser-side navigation table: which named view
// each client path renders. The server does not route pages itself; it only
// publishes this table and builds links into it.
package routes

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	Home    = "Home"
	Plan    = "Plan"
	TripMap = "TripMap"
)

type Route struct {
	Name string `json:"name"`
	// Path segments starting with ':' are params; a trailing '?' makes the
	// param optional. Only the last segment may be optional.
	Path string `json:"path"`
	View string `json:"view"`
	// Props passes path params to the view as component props.
	Props bool `json:"props,omitempty"`
}

var table = []Route{
	{Name: Home, Path: "/", View: "Home"},
	{Name: Plan, Path: "/plan/:id?", View: "PlanDetail", Props: true},
	{Name: TripMap, Path: "/map", View: "TripMapView"},
}

func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

func Lookup(name string) (Route, bool) {
	for _, r := range table {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve finds the route rendering path. Query strings and a trailing slash
// are ignored.
func Resolve(path string) (Route, map[string]string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	got := segments(path)
	for _, r := range table {
		if params, ok := match(segments(r.Path), got); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// Build renders the path for the named route. Missing optional params are dropped.
func Build(name string, params map[string]string) (string, error) {
	r, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown route %q", name)
	}
	var out []string
	for _, seg := range segments(r.Path) {
		if !strings.HasPrefix(seg, ":") {
			out = append(out, seg)
			continue
		}
		key, optional := paramName(seg)
		v, ok := params[key]
		if !ok || v == "" {
			if optional {
				continue
			}
			return "", fmt.Errorf("route %s: missing param %q", name, key)
		}
		out = append(out, url.PathEscape(v))
	}
	return "/" + strings.Join(out, "/"), nil
}

func match(pattern, got []string) (map[string]string, bool) {
	params := map[string]string{}
	for i, seg := range pattern {
		if !strings.HasPrefix(seg, ":") {
			if i >= len(got) || got[i] != seg {
				return nil, false
			}
			continue
		}
		key, optional := paramName(seg)
		if i >= len(got) {
			if optional {
				continue
			}
			return nil, false
		}
		v, err := url.PathUnescape(got[i])
		if err != nil {
			return nil, false
		}
		params[key] = v
	}
	if len(got) > len(pattern) {
		return nil, false
	}
	return params, true
}

func paramName(seg string) (string, bool) {
	seg = strings.TrimPrefix(seg, ":")
	if strings.HasSuffix(seg, "?") {
		return strings.TrimSuffix(seg, "?"), true
	}
	return seg, false
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
