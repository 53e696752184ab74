package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
)

// Root answers the bare service URL.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("App works properly!"))
	}
}

func APINotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteMessage(w, http.StatusNotFound, "API endpoint not found")
	}
}
