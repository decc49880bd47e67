package server

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/nvalenti/fitweek/internal/concepts"
)

// API bundles the concept services behind the REST endpoints.
type API struct {
	auth     *concepts.Authing
	sessions *concepts.Sessioning
	friends  *concepts.Friending
	posts    *concepts.Posting
	points   *concepts.Pointing
	tracking *concepts.Tracking
	logger   *log.Logger
}

// APIOpts contains the dependencies for constructing an [API].
type APIOpts struct {
	Auth     *concepts.Authing
	Sessions *concepts.Sessioning
	Friends  *concepts.Friending
	Posts    *concepts.Posting
	Points   *concepts.Pointing
	Tracking *concepts.Tracking
	Logger   *log.Logger
}

// NewAPI creates an API over the given concept services.
func NewAPI(opts APIOpts) *API {
	return &API{
		auth:     opts.Auth,
		sessions: opts.Sessions,
		friends:  opts.Friends,
		posts:    opts.Posts,
		points:   opts.Points,
		tracking: opts.Tracking,
		logger:   opts.Logger,
	}
}

// Register installs the full route table on the router. Routes are declared
// here in one place rather than scattered across handler registration calls.
func (api *API) Register(r Router) {
	for _, route := range []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{"POST", "/api/users", api.handleRegister},
		{"POST", "/api/login", api.handleLogin},
		{"POST", "/api/logout", api.handleLogout},
		{"GET", "/api/session", api.handleSession},
		{"PATCH", "/api/users/username", api.handleUpdateUsername},
		{"PATCH", "/api/users/password", api.handleUpdatePassword},
		{"DELETE", "/api/users", api.handleDeleteUser},

		{"GET", "/api/friends", api.handleFriends},
		{"DELETE", "/api/friends/{friend}", api.handleRemoveFriend},
		{"GET", "/api/friend/requests", api.handleFriendRequests},
		{"POST", "/api/friend/requests/{to}", api.handleSendRequest},
		{"DELETE", "/api/friend/requests/{to}", api.handleCancelRequest},
		{"PUT", "/api/friend/accept/{from}", api.handleAcceptRequest},
		{"PUT", "/api/friend/reject/{from}", api.handleRejectRequest},

		{"GET", "/api/posts", api.handleListPosts},
		{"POST", "/api/posts", api.handleCreatePost},
		{"PATCH", "/api/posts/{id}", api.handleUpdatePost},
		{"DELETE", "/api/posts/{id}", api.handleDeletePost},

		{"GET", "/api/points", api.handlePoints},
		{"POST", "/api/points/award", api.handleAwardPoints},
		{"POST", "/api/points/revoke", api.handleRevokePoints},

		{"POST", "/api/tracking", api.handleCreateRecord},
		{"GET", "/api/tracking", api.handleGetRecord},
		{"PUT", "/api/tracking/goal", api.handleSetGoal},
		{"GET", "/api/tracking/completion", api.handleCompletion},
		{"POST", "/api/tracking/reset", api.handleResetWeek},
		{"GET", "/api/tracking/progress", api.handleProgress},
		{"POST", "/api/tracking/tasks", api.handleCreateTask},
		{"PATCH", "/api/tracking/tasks/{name}", api.handleUpdateTask},
		{"DELETE", "/api/tracking/tasks/{name}", api.handleDeleteTask},
		{"POST", "/api/tracking/tasks/{name}/toggle", api.handleToggleTask},
		{"POST", "/api/tracking/tasks/{name}/difficulty", api.handleReportDifficulty},
	} {
		r.Handle(route.method, route.path, route.handler)
	}

	r.Handler(healthHandler{})
}

// healthHandler answers liveness checks. It sits outside the /api tree and
// needs no session, so load balancers can hit it before a user ever logs in.
type healthHandler struct{}

func (healthHandler) Routes() []string {
	return []string{"GET /healthz"}
}

func (healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
