package handlers

import (
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/services/authgate"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// FormField describes one input of a page form
type FormField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

// FormPage is a page that consists of a single form
type FormPage struct {
	Heading string      `json:"heading"`
	Action  string      `json:"action"`
	Fields  []FormField `json:"fields"`
}

// RootHandler sends visitors to the dashboard; the gate takes it from there
func RootHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Redirect(w, r, authgate.PathHome, http.StatusFound)
	}
}

// LayoutHandler returns the shared page chrome
func LayoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.Content.Layout)
	}
}

// HomePageHandler returns the dashboard stat cards
func HomePageHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.Content.Home)
	}
}

// StateMapPageHandler returns the state map styling
func StateMapPageHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, deps.Content.StateMap)
	}
}

// ChangePasswordPageHandler returns the change-password form
func ChangePasswordPageHandler(deps *app.Dependencies) http.HandlerFunc {
	page := FormPage{
		Heading: "Change Password",
		Action:  "/api/password",
		Fields: []FormField{
			{Name: "old_password", Type: "password", Placeholder: "Old Password", Required: true},
			{Name: "new_password", Type: "password", Placeholder: "New Password", Required: true},
			{Name: "confirm_password", Type: "password", Placeholder: "Confirm Password", Required: true},
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, page)
	}
}
