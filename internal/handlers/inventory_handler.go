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

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(service service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/inventory", h.CreateInventoryItem).Methods(http.MethodPost)
	router.HandleFunc("/inventory", h.ListInventoryItems).Methods(http.MethodGet)
	router.HandleFunc("/inventory/{id}/count", h.AdjustInventoryCount).Methods(http.MethodPatch)
}

func (h *InventoryHandler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		var fieldErrs models.FieldErrors
		if errors.As(err, &fieldErrs) {
			respondWithFieldErrors(w, "Invalid inventory data", fieldErrs)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) ListInventoryItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) AdjustInventoryCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["id"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid inventory ID")
		return
	}

	var req models.AdjustCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.service.AdjustCount(r.Context(), id, &req)
	if err != nil {
		var fieldErrs models.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			respondWithFieldErrors(w, "Invalid update data", fieldErrs)
		case errors.Is(err, repository.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Inventory item not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update inventory count")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}
