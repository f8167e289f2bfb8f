/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    API handlers for the Gaprio agent service
 *
 * Thin request/response mapping over the agent brain. Business
 * failures in the approval flow are reported inside a 200 envelope;
 * only transport-level problems produce HTTP error codes.
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gaprio/gaprio-agent/internal/agent"
	"github.com/gaprio/gaprio-agent/internal/validation"
)

const apiVersion = "1.0.0"

/* HealthChecker reports whether the database connection is usable */
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	brain  *agent.Brain
	health HealthChecker
}

func NewHandlers(brain *agent.Brain, health HealthChecker) *Handlers {
	return &Handlers{
		brain:  brain,
		health: health,
	}
}

/* Root reports service identity */
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RootResponse{
		Message: "Gaprio Agent API",
		Status:  "running",
	})
}

/* AskAgent processes one user message and returns the reply plus any
 * drafted actions awaiting approval */
func (h *Handlers) AskAgent(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req AskAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid request body", err), requestID))
		return
	}

	if err := validation.ValidateRequired(req.Message, "message"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "message validation failed", err), requestID))
		return
	}
	if err := validation.ValidatePositiveID(req.UserID, "user_id"); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "user_id validation failed", err), requestID))
		return
	}

	result := h.brain.GetAgentResponse(r.Context(), req.UserID, req.Message)

	respondJSON(w, http.StatusOK, AskAgentResponse{
		Status:           "success",
		Message:          result.Message,
		Plan:             result.Plan,
		RequiresApproval: len(result.Plan) > 0,
	})
}

/* PendingActions lists a user's pending actions, most recent first */
func (h *Handlers) PendingActions(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())
	vars := mux.Vars(r)

	userID, err := strconv.ParseInt(vars["user_id"], 10, 64)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid user_id", err), requestID))
		return
	}

	actions, err := h.brain.ListPendingActions(r.Context(), userID)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to list pending actions", err), requestID))
		return
	}

	responses := make([]PendingActionResponse, 0, len(actions))
	for i := range actions {
		responses = append(responses, toPendingActionResponse(&actions[i]))
	}

	respondJSON(w, http.StatusOK, PendingActionsResponse{
		Status:  "success",
		Count:   len(responses),
		Actions: responses,
	})
}

/* ApproveAction approves and executes one pending action. The body's
 * user_id is accepted but not checked against the action's owner. */
func (h *Handlers) ApproveAction(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req ApproveActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid request body", err), requestID))
		return
	}

	result, err := h.brain.ApproveAction(r.Context(), req.ActionID)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrActionNotFound):
			respondJSON(w, http.StatusOK, ApproveActionResponse{
				Status:  "error",
				Message: "Action not found",
			})
		case errors.Is(err, agent.ErrMissingCredential):
			respondJSON(w, http.StatusOK, ApproveActionResponse{
				Status:  "error",
				Message: err.Error(),
			})
		default:
			respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to approve action", err), requestID))
		}
		return
	}

	if !result.Success {
		respondJSON(w, http.StatusOK, ApproveActionResponse{
			Status:  "error",
			Message: "Execution failed",
		})
		return
	}

	respondJSON(w, http.StatusOK, ApproveActionResponse{
		Status:  "success",
		Message: "Action executed successfully",
		Data:    result.Result,
	})
}

/* ExecuteAction dispatches an inline action immediately, bypassing the
 * approval flow. Unsupported pairs and missing credentials are explicit
 * 400s here, unlike the approval path. */
func (h *Handlers) ExecuteAction(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req ExecuteActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid request body", err), requestID))
		return
	}

	result, err := h.brain.ExecuteDirect(r.Context(), req.UserID, req.Provider, req.Tool, req.Parameters)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrMissingCredential):
			respondError(w, WrapError(NewError(http.StatusBadRequest,
				fmt.Sprintf("No %s token found", req.Provider), err), requestID))
		case errors.Is(err, agent.ErrUnsupportedAction):
			respondError(w, WrapError(NewError(http.StatusBadRequest, "Unsupported action or provider", err), requestID))
		default:
			respondError(w, WrapError(NewError(http.StatusInternalServerError, "failed to execute action", err), requestID))
		}
		return
	}

	respondJSON(w, http.StatusOK, ExecuteActionResponse{
		Status: "success",
		Data:   result,
	})
}

/* Health reports service and database status */
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: dbStatus,
		Ollama:   "configured",
		Version:  apiVersion,
	})
}

/* Helper functions */

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *APIError) {
	response := ErrorResponse{
		Error: err.Message,
		Code:  err.Code,
	}
	if err.Err != nil {
		response.Message = err.Err.Error()
	}
	if err.RequestID != "" {
		w.Header().Set("X-Request-ID", err.RequestID)
	}
	respondJSON(w, err.Code, response)
}
