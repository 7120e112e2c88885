package web

import "net/http"

// registerRoutes wires every API handler onto the mux. Auth and role checks
// live in the handlers themselves so the table stays readable.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/dashboard", handleDashboard)

	mux.HandleFunc("/api/calendar", handleCalendarGrid)
	mux.HandleFunc("/api/events", handleEvents)
	mux.HandleFunc("/api/events/cancel", handleEventCancel)
	mux.HandleFunc("/api/events/", handleEventByID)

	mux.HandleFunc("/api/sessions", handleSessions)
	mux.HandleFunc("/api/sessions/message", handleSessionMessage)
	mux.HandleFunc("/api/sessions/link", handleSessionLink)
	mux.HandleFunc("/api/sessions/end", handleSessionEnd)
	mux.HandleFunc("/api/sessions/force-release", handleSessionForceRelease)
	mux.HandleFunc("/api/sessions/", handleSessionByID)
	mux.HandleFunc("/api/threads", handleThreads)

	mux.HandleFunc("/api/notifications", handleNotifications)
	mux.HandleFunc("/api/notifications/read", handleNotificationRead)
	mux.HandleFunc("/api/notifications/read-all", handleNotificationReadAll)
	mux.HandleFunc("/api/notifications/", handleNotificationByID)

	mux.HandleFunc("/api/requests", handleRequests)
	mux.HandleFunc("/api/requests/approve", handleRequestApprove)
	mux.HandleFunc("/api/requests/decline", handleRequestDecline)

	mux.HandleFunc("/api/lectures", handleLectures)
}
