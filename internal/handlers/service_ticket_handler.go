package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fixhub/repair-service/internal/models"
	"github.com/fixhub/repair-service/internal/repository"
	"github.com/fixhub/repair-service/internal/service"
	"github.com/gorilla/mux"
)

type ServiceTicketHandler struct {
	service service.ServiceTicketService
}

func NewServiceTicketHandler(service service.ServiceTicketService) *ServiceTicketHandler {
	return &ServiceTicketHandler{
		service: service,
	}
}

func (h *ServiceTicketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/services", h.CreateServiceTicket).Methods(http.MethodPost)
	router.HandleFunc("/services", h.ListServiceTickets).Methods(http.MethodGet)
	router.HandleFunc("/services/{id}", h.UpdateServiceTicketStatus).Methods(http.MethodPatch)
}

func (h *ServiceTicketHandler) CreateServiceTicket(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ticket, err := h.service.CreateTicket(r.Context(), &req)
	if err != nil {
		var fieldErrs models.FieldErrors
		if errors.As(err, &fieldErrs) {
			respondWithFieldErrors(w, "Invalid service data", fieldErrs)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	respondWithJSON(w, http.StatusCreated, ticket)
}

func (h *ServiceTicketHandler) ListServiceTickets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	date := r.URL.Query().Get("date")

	tickets, err := h.service.ListTickets(r.Context(), status, date)
	if err != nil {
		var fieldErrs models.FieldErrors
		if errors.As(err, &fieldErrs) {
			respondWithFieldErrors(w, "Invalid filter", fieldErrs)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	respondWithJSON(w, http.StatusOK, tickets)
}

func (h *ServiceTicketHandler) UpdateServiceTicketStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["id"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req models.UpdateServiceTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ticket, err := h.service.TransitionTicket(r.Context(), id, &req)
	if err != nil {
		var fieldErrs models.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			respondWithFieldErrors(w, "Invalid update data", fieldErrs)
		case errors.Is(err, repository.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Service not found")
		case errors.Is(err, repository.ErrAlreadyFinalized):
			respondWithError(w, http.StatusConflict, "Service is already completed or returned")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ticket)
}
