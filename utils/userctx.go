package utils

import (
	"net/http"
	"slices"

	"rihla/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func GetRolesFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

func IsAdmin(r *http.Request) bool {
	return slices.Contains(GetRolesFromRequest(r), "admin")
}
