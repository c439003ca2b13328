package history

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"docqa/config"
	corequery "docqa/internal/core/query"
	"docqa/internal/database"
	"docqa/internal/database/model"
	"docqa/pkg/apperror"
	"docqa/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type historySummary struct {
	ID        int64      `json:"id"`
	Question  string     `json:"question"`
	CreatedAt *time.Time `json:"created_at"`
}

type historyDetail struct {
	model.History
	Sources []corequery.Source `json:"sources"`
}

func HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	var rows []model.History
	if err := db.WithContext(c.Context()).Order("id DESC").Find(&rows).Error; err != nil {
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	out := make([]historySummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, historySummary{ID: r.ID, Question: r.Question, CreatedAt: r.CreatedAt})
	}

	return apperror.Success(config.ModuleHistory, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "history listed",
		TrackingID: trackingID,
		Data:       out,
	})
}

func HandleGet(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleHistory, c, status.MissingParams, "invalid id")
	}

	row, err := database.GetEntityByID[model.History](c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleHistory, c, status.HistoryNotFound, "history entry not found")
		}
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	detail := historyDetail{History: *row, Sources: []corequery.Source{}}
	if row.SourcesJSON != "" {
		if err := json.Unmarshal([]byte(row.SourcesJSON), &detail.Sources); err != nil {
			return apperror.InternalError(config.ModuleHistory, c, err)
		}
	}

	return apperror.Success(config.ModuleHistory, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "history entry",
		TrackingID: trackingID,
		Data:       detail,
	})
}

func HandleDelete(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleHistory, c, status.MissingParams, "invalid id")
	}

	if err := database.DeleteEntityByID[model.History](c.Context(), id); err != nil {
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	return apperror.Success(config.ModuleHistory, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "history entry deleted",
		TrackingID: trackingID,
		Data:       fiber.Map{"id": id},
	})
}
