// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot      = "/"
	RouteSuffixNew = "/new"

	RouteParamID = "/{id}"

	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password/{token}"

	RouteArticles   = "/articles"
	RouteAdvices    = "/advices"
	RouteCategories = "/categories"
	RouteQuizzes    = "/quizzes"
	RouteUsers      = "/users"

	RouteArticlesID   = RouteArticles + RouteParamID
	RouteAdvicesID    = RouteAdvices + RouteParamID
	RouteCategoriesID = RouteCategories + RouteParamID
	RouteQuizzesID    = RouteQuizzes + RouteParamID
	RouteUsersID      = RouteUsers + RouteParamID
)

const (
	redirectBackoffice           = "/backoffice"
	redirectBackofficeArticles   = redirectBackoffice + RouteArticles
	redirectBackofficeAdvices    = redirectBackoffice + RouteAdvices
	redirectBackofficeCategories = redirectBackoffice + RouteCategories
	redirectBackofficeQuizzes    = redirectBackoffice + RouteQuizzes
	redirectBackofficeUsers      = redirectBackoffice + RouteUsers
	redirectLogin                = RouteLogin
)
