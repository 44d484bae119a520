package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(announcements *AnnouncementHandler, users *UserHandler, tokens TokenParser) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Instrument)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/login", users.LoginUserHandler).Methods("POST")
	router.HandleFunc("/api/announcements", announcements.GetAnnouncements).Methods("GET")

	admin := router.PathPrefix("/api").Subrouter()
	admin.Use(RequireAdmin(tokens))
	admin.HandleFunc("/announcements/all", announcements.GetAllAnnouncements).Methods("GET")
	admin.HandleFunc("/announcement", announcements.CreateAnnouncement).Methods("POST")
	admin.HandleFunc("/announcement/{announcementID}", announcements.UpdateAnnouncement).Methods("PATCH")
	admin.HandleFunc("/announcement/{announcementID}", announcements.DeleteAnnouncement).Methods("DELETE")
	admin.HandleFunc("/announcement/{announcementID}/active", announcements.SetAnnouncementActive).Methods("PATCH")
	admin.HandleFunc("/announcements/cleanup", announcements.CleanupExpired).Methods("POST")

	return router
}
