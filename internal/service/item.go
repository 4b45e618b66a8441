package service

import (
	"errors"
	"time"

	"github.com/deppfellow/go-items/internal/middleware"
	"github.com/deppfellow/go-items/internal/model"
	"github.com/deppfellow/go-items/internal/repository"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type ItemService struct {
	server   *server.Server
	itemRepo repository.ItemRepository
}

func NewItemService(s *server.Server, itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{
		server:   s,
		itemRepo: itemRepo,
	}
}

func (s *ItemService) CreateItem(ctx echo.Context, payload *model.CreateItemPayload) (*model.Item, error) {
	logger := middleware.GetLogger(ctx)
	start := time.Now()

	item, err := s.itemRepo.CreateItem(ctx.Request().Context(), *payload.Name, payload.Description)
	s.logSlowCall(logger, "create_item", start)
	if err != nil {
		return nil, s.storeError(*logger, "failed to create item", err)
	}

	logger.Info().
		Str("event", "item_created").
		Int64("item_id", item.ID).
		Msg("Item created successfully")

	return item, nil
}

func (s *ItemService) ListItems(ctx echo.Context) ([]model.Item, error) {
	logger := middleware.GetLogger(ctx)
	start := time.Now()

	items, err := s.itemRepo.ListItems(ctx.Request().Context())
	s.logSlowCall(logger, "list_items", start)
	if err != nil {
		return nil, s.storeError(*logger, "failed to list items", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	return items, nil
}

func (s *ItemService) GetItem(ctx echo.Context, id int64) (*model.Item, error) {
	logger := middleware.GetLogger(ctx)
	start := time.Now()

	item, err := s.itemRepo.GetItemByID(ctx.Request().Context(), id)
	s.logSlowCall(logger, "get_item", start)
	if err != nil {
		return nil, s.storeError(logger.With().Int64("item_id", id).Logger(), "failed to fetch item", err)
	}

	return item, nil
}

func (s *ItemService) UpdateItem(ctx echo.Context, payload *model.UpdateItemPayload) (*model.Item, error) {
	logger := middleware.GetLogger(ctx)
	start := time.Now()

	item, err := s.itemRepo.UpdateItem(ctx.Request().Context(), payload.ID, *payload.Name, payload.Description)
	s.logSlowCall(logger, "update_item", start)
	if err != nil {
		return nil, s.storeError(logger.With().Int64("item_id", payload.ID).Logger(), "failed to update item", err)
	}

	logger.Info().
		Str("event", "item_updated").
		Int64("item_id", item.ID).
		Msg("Item updated successfully")

	return item, nil
}

func (s *ItemService) DeleteItem(ctx echo.Context, id int64) error {
	logger := middleware.GetLogger(ctx)
	start := time.Now()

	err := s.itemRepo.DeleteItem(ctx.Request().Context(), id)
	s.logSlowCall(logger, "delete_item", start)
	if err != nil {
		return s.storeError(logger.With().Int64("item_id", id).Logger(), "failed to delete item", err)
	}

	logger.Info().
		Str("event", "item_deleted").
		Int64("item_id", id).
		Msg("Item deleted successfully")

	return nil
}

// storeError logs a failed store call and converts it into an HTTP error.
// A missing row is expected traffic and only logged at debug level.
func (s *ItemService) storeError(logger zerolog.Logger, msg string, err error) error {
	if errors.Is(err, repository.ErrItemNotFound) {
		logger.Debug().Err(err).Msg(msg)
	} else {
		logger.Error().Err(err).Msg(msg)
	}
	return sqlerr.HandleError(err)
}

func (s *ItemService) logSlowCall(logger *zerolog.Logger, operation string, start time.Time) {
	threshold := s.server.Config.Observability.Logging.SlowQueryThreshold
	if threshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		logger.Warn().
			Str("operation", operation).
			Dur("duration", elapsed).
			Dur("threshold", threshold).
			Msg("slow item store call")
	}
}
