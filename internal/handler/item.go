package handler

import (
	"net/http"

	"github.com/deppfellow/go-items/internal/model"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/deppfellow/go-items/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	Handler
	itemService *service.ItemService
}

func NewItemHandler(s *server.Server, itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler:     NewHandler(s),
		itemService: itemService,
	}
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	return Handle(
		func(c echo.Context, payload *model.CreateItemPayload) (*model.Item, error) {
			return h.itemService.CreateItem(c, payload)
		},
		http.StatusOK,
		func() *model.CreateItemPayload { return &model.CreateItemPayload{} },
	)(c)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	return Handle(
		func(c echo.Context, payload *model.ListItemsPayload) ([]model.Item, error) {
			return h.itemService.ListItems(c)
		},
		http.StatusOK,
		func() *model.ListItemsPayload { return &model.ListItemsPayload{} },
	)(c)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	return Handle(
		func(c echo.Context, payload *model.GetItemPayload) (*model.Item, error) {
			return h.itemService.GetItem(c, payload.ID)
		},
		http.StatusOK,
		func() *model.GetItemPayload { return &model.GetItemPayload{} },
	)(c)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	return Handle(
		func(c echo.Context, payload *model.UpdateItemPayload) (*model.Item, error) {
			return h.itemService.UpdateItem(c, payload)
		},
		http.StatusOK,
		func() *model.UpdateItemPayload { return &model.UpdateItemPayload{} },
	)(c)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	return Handle(
		func(c echo.Context, payload *model.DeleteItemPayload) (*model.DetailResponse, error) {
			if err := h.itemService.DeleteItem(c, payload.ID); err != nil {
				return nil, err
			}
			return &model.DetailResponse{Detail: "Item deleted"}, nil
		},
		http.StatusOK,
		func() *model.DeleteItemPayload { return &model.DeleteItemPayload{} },
	)(c)
}
