package content

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// Handler serves the content resource endpoint and emits update signals
// after admin writes. The flattened map endpoint reads through the TTL
// cache, which the bus invalidates on every content save.
type Handler struct {
	bus   *signalbus.Bus
	cache *Cache
}

func NewHandler(bus *signalbus.Bus, cache *Cache) *Handler {
	return &Handler{bus: bus, cache: cache}
}

// Map returns the flattened content map, database values merged over the
// built-in defaults. Served from the cache, so page renders do not hit
// the row store on every request.
func (h *Handler) Map(c echo.Context) error {
	return apperrors.RespondWithData(c, h.cache.Get(c.Request().Context()))
}

// List returns content rows, optionally filtered by ?page= and ?key=.
func (h *Handler) List(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	query := `SELECT id, page, content_key, content_value, updated_at FROM contents`
	var args []interface{}

	page := c.QueryParam("page")
	key := c.QueryParam("key")

	switch {
	case page != "" && key != "":
		query += ` WHERE page = ? AND content_key = ?`
		args = append(args, page, key)
	case page != "":
		query += ` WHERE page = ?`
		args = append(args, page)
	case key != "":
		query += ` WHERE content_key = ?`
		args = append(args, key)
	}
	query += ` ORDER BY page, content_key`

	rows := []Content{}
	if err := config.DB.Select(&rows, query, args...); err != nil {
		log.Error("Failed to fetch content rows", err, logger.Page(page))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error loading content.",
			err,
		))
	}

	return apperrors.RespondWithData(c, rows)
}

// Upsert creates or updates a content row keyed on (page, content_key), then
// signals contentUpdated so open site sessions drop their cached map.
func (h *Handler) Upsert(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.Page == "" || req.Key == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Both page and content_key are required.",
		))
	}

	value := sanitizeHTML(req.Value)

	result, err := config.DB.Exec(`
		UPDATE contents
		SET content_value = ?, updated_at = NOW()
		WHERE page = ? AND content_key = ?
	`, value, req.Page, req.Key)
	if err != nil {
		log.Error("Failed to update content", err, logger.Page(req.Page))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving content, please try again.",
			err,
		))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if _, err := config.DB.Exec(`
			INSERT INTO contents (page, content_key, content_value)
			VALUES (?, ?, ?)
		`, req.Page, req.Key, value); err != nil {
			log.Error("Failed to insert content", err, logger.Page(req.Page))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError,
				"Error saving content, please try again.",
				err,
			))
		}
	}

	var row Content
	if err := config.DB.Get(&row, `
		SELECT id, page, content_key, content_value, updated_at
		FROM contents WHERE page = ? AND content_key = ?
	`, req.Page, req.Key); err != nil {
		log.Error("Failed to fetch saved content", err, logger.Page(req.Page))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving content, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelContent, signalbus.Payload{
		"page": row.Page,
		"key":  row.Key,
	})

	log.Info("Content saved", logger.Page(row.Page), logger.String("content_key", row.Key))

	return apperrors.RespondWithData(c, row)
}

// sanitizeHTML strips dangerous markup from admin-edited content while
// keeping the formatting the rich text editor produces.
func sanitizeHTML(content string) string {
	p := bluemonday.UGCPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("style").OnElements("p", "span", "div", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("p", "span", "div", "ul", "ol", "li")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("strong", "em", "u", "s", "blockquote")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)

	return p.Sanitize(content)
}

// FetchMap reads the full flattened content map from the row store. This is
// the FetchFunc used when the cache lives in the same process as the
// database.
func FetchMap(ctx context.Context) (map[string]string, error) {
	rows := []Content{}
	if err := config.DB.SelectContext(ctx, &rows, `
		SELECT id, page, content_key, content_value, updated_at FROM contents
	`); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[FlatKey(row.Page, row.Key)] = row.Value
	}
	return out, nil
}
