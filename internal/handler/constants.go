// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the home page.
	RouteRoot = "/"
	// RouteFactory is the factory workspace page.
	RouteFactory = "/factory"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteEdit is the admin editing view.
	RouteEdit = "/edit"

	// RouteAPI is the prefix of the JSON API.
	RouteAPI = "/api"
	// RouteFactories is the factory button API group.
	RouteFactories = "/factories"
	// RouteSections is the section API group.
	RouteSections = "/sections"
	// RouteCards is the card API group.
	RouteCards = "/cards"
	// RouteSettings is the settings API group.
	RouteSettings = "/settings"

	// RouteSuffixCreate is the suffix for create routes.
	RouteSuffixCreate = "/create"
	// RouteSuffixUpdate is the suffix for update routes.
	RouteSuffixUpdate = "/{id}/update"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/{id}/delete"
	// RouteSuffixTrack is the suffix of the click tracking route.
	RouteSuffixTrack = "/{id}/track"
	// RouteSuffixSettingsUpdate is the settings form target.
	RouteSuffixSettingsUpdate = "/update"

	// RouteHealth is the health check prefix.
	RouteHealth = "/health"
	// RouteUploads serves processed branding images.
	RouteUploads = "/uploads"
	// RouteStatic serves the embedded stylesheet and scripts.
	RouteStatic = "/static"
)

// Template names.
const (
	TemplateHome        = "home"
	TemplateFactory     = "factory"
	TemplateEdit        = "edit"
	TemplateLogin       = "login"
	TemplateMaintenance = "maintenance"
	TemplateError       = "error"
)

// defaultFactoryID is used by /factory when no id is given.
const defaultFactoryID int64 = 1

// recentEventsLimit bounds the event list on the edit view.
const recentEventsLimit = 20
