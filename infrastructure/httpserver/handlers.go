package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inventory-chat/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type chatRequest struct {
	Question string        `json:"question"`
	History  []domain.Turn `json:"history"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{"success": false, "message": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.All(r.Context())
	if err != nil {
		s.logger.Error("list items failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := s.store.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		s.logger.Error("create item failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := s.store.Find(r.Context(), id)
	if errors.Is(err, domain.ErrItemNotFound) {
		s.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := s.store.Update(r.Context(), id, req.Name, req.Description)
	if errors.Is(err, domain.ErrItemNotFound) {
		s.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		s.logger.Error("update item failed", zap.Int64("item_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			s.respondError(w, http.StatusNotFound, "item not found")
			return
		}
		s.logger.Error("delete item failed", zap.Int64("item_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRestoreItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := s.store.Restore(r.Context(), id)
	if errors.Is(err, domain.ErrItemNotFound) {
		s.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		s.logger.Error("restore item failed", zap.Int64("item_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleFullSync(w http.ResponseWriter, r *http.Request) {
	count, err := s.sync.FullSync(r.Context())
	if err != nil {
		s.logger.Error("full sync failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully synced " + strconv.Itoa(count) + " items",
	})
}

// handleChat answers a question about the inventory. Chat failures surface
// as a generic try-again message without internals.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	result, err := s.chat.Chat(r.Context(), req.Question, req.History)
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"answer":  result.Answer,
		"context": result.Context,
	})
}
