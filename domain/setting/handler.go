package setting

import (
	"context"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// Handler serves the settings resource endpoint. Settings upsert on PUT;
// timezone changes additionally signal the dedicated timezone channel the
// footer clock subscribes to.
type Handler struct {
	bus *signalbus.Bus
}

func NewHandler(bus *signalbus.Bus) *Handler {
	return &Handler{bus: bus}
}

// List returns all settings, or a single one via ?key=.
func (h *Handler) List(c echo.Context) error {
	log := logger.Get().WithComponent("setting")

	if key := c.QueryParam("key"); key != "" {
		var row Setting
		err := config.DB.Get(&row, `
			SELECT id, setting_key, setting_value, updated_at
			FROM settings WHERE setting_key = ?
		`, key)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeSettingNotFound,
				"Setting not found.",
			))
		}
		return apperrors.RespondWithData(c, row)
	}

	rows := []Setting{}
	if err := config.DB.Select(&rows, `
		SELECT id, setting_key, setting_value, updated_at
		FROM settings ORDER BY setting_key
	`); err != nil {
		log.Error("Failed to fetch settings", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error loading settings.",
			err,
		))
	}

	return apperrors.RespondWithData(c, rows)
}

// Upsert updates a setting, inserting the key if it does not exist yet.
func (h *Handler) Upsert(c echo.Context) error {
	log := logger.Get().WithComponent("setting")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.Key == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"setting_key is required.",
		))
	}

	result, err := config.DB.Exec(`
		UPDATE settings SET setting_value = ?, updated_at = NOW() WHERE setting_key = ?
	`, req.Value, req.Key)
	if err != nil {
		log.Error("Failed to update setting", err, logger.SettingKey(req.Key))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving setting, please try again.",
			err,
		))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if _, err := config.DB.Exec(`
			INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)
		`, req.Key, req.Value); err != nil {
			log.Error("Failed to insert setting", err, logger.SettingKey(req.Key))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError,
				"Error saving setting, please try again.",
				err,
			))
		}
	}

	var row Setting
	if err := config.DB.Get(&row, `
		SELECT id, setting_key, setting_value, updated_at
		FROM settings WHERE setting_key = ?
	`, req.Key); err != nil {
		log.Error("Failed to fetch saved setting", err, logger.SettingKey(req.Key))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving setting, please try again.",
			err,
		))
	}

	payload := signalbus.Payload{"key": row.Key, "value": row.Value}
	h.bus.Emit(context.Background(), signalbus.ChannelSettings, payload)
	if row.Key == KeyTimezone {
		h.bus.Emit(context.Background(), signalbus.ChannelTimezone, payload)
	}

	log.Info("Setting saved", logger.SettingKey(row.Key))

	return apperrors.RespondWithData(c, row)
}

// FetchAll loads all settings as a key/value map.
func FetchAll(ctx context.Context) (map[string]string, error) {
	rows := []Setting{}
	if err := config.DB.SelectContext(ctx, &rows, `
		SELECT id, setting_key, setting_value, updated_at FROM settings
	`); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
