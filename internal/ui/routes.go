package ui

import (
	"net/url"
	"strings"

	"github.com/nzaccagnino/notely/internal/location"
)

type Route int

const (
	RouteHome Route = iota
	RouteAdd
	RouteArchived
	RouteDetail
	RouteLogin
	RouteRegister
	RouteNotFound
)

const (
	PathHome     = "/"
	PathAdd      = "/add"
	PathArchived = "/archived"
	PathNotes    = "/notes/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteAdd:
		return "add"
	case RouteArchived:
		return "archived"
	case RouteDetail:
		return "detail"
	case RouteLogin:
		return "login"
	case RouteRegister:
		return "register"
	default:
		return "not-found"
	}
}

// ResolveRoute maps a location to the route shown for it. Logged-out users
// only reach the login and register routes; every other path shows login.
// For RouteDetail the note id is returned too.
func ResolveRoute(loc location.Location, loggedIn bool) (Route, string) {
	path := loc.Path()
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if !loggedIn {
		if path == PathRegister {
			return RouteRegister, ""
		}
		return RouteLogin, ""
	}

	switch {
	case path == PathHome:
		return RouteHome, ""
	case path == PathAdd:
		return RouteAdd, ""
	case path == PathArchived:
		return RouteArchived, ""
	case strings.HasPrefix(path, PathNotes):
		id := strings.TrimPrefix(path, PathNotes)
		if id == "" || strings.Contains(id, "/") {
			return RouteNotFound, ""
		}
		return RouteDetail, id
	default:
		return RouteNotFound, ""
	}
}

// DetailPath is the location of the note with id.
func DetailPath(id string) string {
	return PathNotes + url.PathEscape(id)
}
