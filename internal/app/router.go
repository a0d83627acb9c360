// Package app decides where a user lands after login and which screens
// their role exposes. It is pure routing policy; the server still enforces
// every permission on its side.
package app

import (
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/session"
)

// Route names the top-level destinations of the client.
type Route string

const (
	RouteHome             Route = "home"
	RouteAdminDashboard   Route = "admin"
	RouteExpertDashboard  Route = "expert"
	RouteManagerDashboard Route = "manager"
)

// Tab names the screens reachable from a dashboard. The CLI maps each tab
// to a command set.
type Tab string

const (
	TabAreas       Tab = "areas"
	TabUsers       Tab = "users"
	TabPredictions Tab = "predictions"
	TabJobs        Tab = "jobs"
	TabEmails      Tab = "emails"
	TabProfile     Tab = "profile"
)

// RouteFor maps a role to its landing destination. Anything outside the
// known roles, including an empty role or no login at all, lands on the
// public citizen home.
func RouteFor(role model.Role) Route {
	switch role {
	case model.RoleAdmin:
		return RouteAdminDashboard
	case model.RoleExpert:
		return RouteExpertDashboard
	case model.RoleManager:
		return RouteManagerDashboard
	default:
		return RouteHome
	}
}

// DashboardFor returns the tab set for a profile. A nil profile is a
// citizen: areas only, read-only. Managers with province-wide scope get
// the Users tab; district managers do not.
func DashboardFor(profile *session.Profile) []Tab {
	if profile == nil {
		return []Tab{TabAreas}
	}
	switch model.Role(profile.Role) {
	case model.RoleAdmin:
		return []Tab{TabAreas, TabUsers, TabPredictions, TabJobs, TabEmails, TabProfile}
	case model.RoleExpert:
		return []Tab{TabAreas, TabPredictions, TabJobs, TabProfile}
	case model.RoleManager:
		tabs := []Tab{TabAreas, TabPredictions}
		if profile.IsProvincialManager() {
			tabs = append(tabs, TabUsers)
		}
		return append(tabs, TabProfile)
	default:
		return []Tab{TabAreas}
	}
}

// HasTab reports whether a tab set contains the given tab.
func HasTab(tabs []Tab, tab Tab) bool {
	for _, t := range tabs {
		if t == tab {
			return true
		}
	}
	return false
}
