package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
	"github.com/wricardo/mcp-training/marsrover/transport/websocket"
)

// maxSimulationInput bounds the body of POST /api/simulate
const maxSimulationInput = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.MissionService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(missionService service.MissionService, hub *websocket.Hub) *Server {
	s := &Server{
		service: missionService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Plateau and rovers
	api.HandleFunc("/sessions/{id}/state", s.handleGetPlateauState).Methods("GET")
	api.HandleFunc("/sessions/{id}/geojson", s.handleGeoJSON).Methods("GET")
	api.HandleFunc("/sessions/{id}/rovers", s.handleDeployRover).Methods("POST")
	api.HandleFunc("/sessions/{id}/commands", s.handleExecuteCommands).Methods("POST")
	api.HandleFunc("/sessions/{id}/rovers/{rover:[0-9]+}/commands", s.handleExecuteCommands).Methods("POST")
	api.HandleFunc("/sessions/{id}/rovers/{rover:[0-9]+}/history", s.handleGetHistory).Methods("GET")

	// Stateless run of a full record stream
	api.HandleFunc("/simulate", s.handleSimulate).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case service.IsConfigurationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrRoverNotFound), strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		Width    int    `json:"width,omitempty"`
		Height   int    `json:"height,omitempty"`
	}

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	var (
		session *service.SessionInfo
		err     error
	)
	if req.ConfigID == "" && (req.Width != 0 || req.Height != 0) {
		session, err = s.service.CreatePlateau(r.Context(), req.Width, req.Height)
	} else {
		session, err = s.service.CreateSession(r.Context(), req.ConfigID)
	}
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusNotFound {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Plateau Handlers

func (s *Server) handleGetPlateauState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetPlateauState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetPlateauState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	histories := make(map[int][]engine.Event, len(state.Rovers))
	for _, rover := range state.Rovers {
		events, err := s.fullHistory(r.Context(), sessionID, rover.ID)
		if err != nil {
			respondError(w, errorStatus(err), err.Error())
			return
		}
		histories[rover.ID] = events
	}

	data, err := PlateauFeatures(state, histories).MarshalJSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// fullHistory walks every history page of a rover in chronological order
func (s *Server) fullHistory(ctx context.Context, sessionID string, roverID int) ([]engine.Event, error) {
	var events []engine.Event
	opts := service.HistoryOptions{Page: 1, Limit: 100, Order: "asc"}
	for {
		page, err := s.service.GetRoverHistory(ctx, sessionID, roverID, opts)
		if err != nil {
			return nil, err
		}
		events = append(events, page.Events...)
		if !page.HasNext {
			return events, nil
		}
		opts.Page++
	}
}

func (s *Server) handleDeployRover(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		X      *int   `json:"x"`
		Y      *int   `json:"y"`
		Facing string `json:"facing"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.X == nil || req.Y == nil || req.Facing == "" {
		respondError(w, http.StatusBadRequest, "x, y and facing are required")
		return
	}

	result, err := s.service.DeployRover(r.Context(), sessionID, *req.X, *req.Y, req.Facing)
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, result.State)
		s.hub.BroadcastEvent(sessionID, websocket.EventRoverDeployed, result.Rover)
	}

	log.Printf("[DEPLOY] session=%s rover=%d at %s", sessionID, result.Rover.ID, result.Rover)

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleExecuteCommands(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		Commands string `json:"commands"`
		RoverID  int    `json:"rover_id,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	roverID := req.RoverID
	if v, ok := vars["rover"]; ok {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			respondError(w, http.StatusBadRequest, "Invalid rover id")
			return
		}
		roverID = id
	}

	result, err := s.service.ExecuteCommands(r.Context(), sessionID, roverID, req.Commands)
	if err != nil {
		respondError(w, errorStatus(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, result.State)
		s.hub.BroadcastEvent(sessionID, websocket.EventCommandsExecuted, result.Report)
	}

	rep := result.Report
	log.Printf("[EXEC] session=%s rover=%d exec=%d/%d blocked=%d aborted=%t %s -> %s",
		sessionID, rep.RoverID, rep.Executed, len(rep.Commands), rep.Blocked, rep.Aborted, rep.Start, rep.Final)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	roverID, _ := strconv.Atoi(vars["rover"])

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetRoverHistory(r.Context(), sessionID, roverID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// handleSimulate runs a complete line-oriented input through a fresh
// controller and returns what it printed
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	input, err := io.ReadAll(io.LimitReader(r.Body, maxSimulationInput))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var out bytes.Buffer
	controller := engine.NewController(&out)
	runErr := controller.Run(bytes.NewReader(input))

	output := []string{}
	if text := strings.TrimRight(out.String(), "\n"); text != "" {
		output = strings.Split(text, "\n")
	}

	response := map[string]interface{}{
		"output": output,
		"state":  controller.State(),
	}
	status := http.StatusOK
	if runErr != nil {
		response["error"] = runErr.Error()
		status = errorStatus(runErr)
	}

	respondJSON(w, status, response)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var mission engine.MissionConfig

	if err := json.NewDecoder(r.Body).Decode(&mission); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if mission.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), mission.Name, &mission); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": mission.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	if s.hub == nil {
		http.Error(w, "WebSocket updates are disabled", http.StatusServiceUnavailable)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
