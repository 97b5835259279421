package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// RunRemindersSuccessResponse is the success response envelope for POST /admin/reminders/run (200).
type RunRemindersSuccessResponse struct {
	Data  domain.RunResult  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ReminderController struct {
	Logger    *slog.Logger
	Scheduler domain.ReminderScheduler
}

func NewReminderController(logger *slog.Logger, scheduler domain.ReminderScheduler) *ReminderController {
	return &ReminderController{
		Logger:    logger,
		Scheduler: scheduler,
	}
}

// Run godoc
// @Summary Run a reminder scan now
// @Description Runs one reminder scan immediately. Registrants already reminded are skipped, so this is safe to call at any time.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RunRemindersSuccessResponse "data contains the scan counters"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reminders/run [post]
func (c *ReminderController) Run(w http.ResponseWriter, r *http.Request) {
	result, err := c.Scheduler.RunOnce(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
