/*-------------------------------------------------------------------------
 *
 * router.go
 *    HTTP route registration for the Gaprio agent service
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/router.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gaprio/gaprio-agent/internal/metrics"
)

/* NewRouter builds the full route table with middleware applied */
func NewRouter(handlers *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.Use(RequestIDMiddleware)
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/", handlers.Root).Methods(http.MethodGet)
	router.HandleFunc("/ask-agent", handlers.AskAgent).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/pending-actions/{user_id}", handlers.PendingActions).Methods(http.MethodGet)
	router.HandleFunc("/approve-action", handlers.ApproveAction).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/execute-action", handlers.ExecuteAction).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return router
}
