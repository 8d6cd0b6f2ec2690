package handlers

import (
	"io"
	"net/http"

	"reminders-server/middleware"
	"reminders-server/models"
	"reminders-server/respond"
	"reminders-server/services"
	"reminders-server/validation"
)

const maxBodyBytes = 1 << 20

type ReminderHandler struct {
	reminders *services.ReminderService
	rs        *respond.Responder
}

func NewReminderHandler(reminders *services.ReminderService, rs *respond.Responder) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, rs: rs}
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context(), middleware.GetUserID(r))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, models.ToReminderResponses(reminders))
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.reminders.Get(r.Context(), middleware.GetUserID(r), r.PathValue("id"))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, reminder.ToResponse())
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeCreateReminder(limitBody(w, r))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	reminder, err := h.reminders.Create(r.Context(), middleware.GetUserID(r), req.Content, req.Important)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, reminder.ToResponse())
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeUpdateReminder(limitBody(w, r))
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	reminder, err := h.reminders.Update(r.Context(), middleware.GetUserID(r), r.PathValue("id"), req)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, reminder.ToResponse())
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Delete(r.Context(), middleware.GetUserID(r), r.PathValue("id")); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

func limitBody(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
