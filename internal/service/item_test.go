package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-items/internal/config"
	"github.com/deppfellow/go-items/internal/errs"
	"github.com/deppfellow/go-items/internal/model"
	"github.com/deppfellow/go-items/internal/repository"
	"github.com/deppfellow/go-items/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// stubItemRepository returns canned results so service behavior can be
// checked without a database.
type stubItemRepository struct {
	items []model.Item
	err   error
}

func (r *stubItemRepository) CreateItem(ctx context.Context, name string, description *string) (*model.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &model.Item{ID: 1, Name: name, Description: description}, nil
}

func (r *stubItemRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	return r.items, r.err
}

func (r *stubItemRepository) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &model.Item{ID: id, Name: "stub"}, nil
}

func (r *stubItemRepository) UpdateItem(ctx context.Context, id int64, name string, description *string) (*model.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &model.Item{ID: id, Name: name, Description: description}, nil
}

func (r *stubItemRepository) DeleteItem(ctx context.Context, id int64) error {
	return r.err
}

func newTestService(repo repository.ItemRepository) *ItemService {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{Observability: config.DefaultObservabilityConfig()},
		Logger: &logger,
	}
	return NewItemService(s, repo)
}

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/items/", nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func assertHTTPStatus(t *testing.T, err error, want int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != want {
		t.Fatalf("Status = %d, want %d", httpErr.Status, want)
	}
	return httpErr
}

func TestItemServiceNotFound(t *testing.T) {
	svc := newTestService(&stubItemRepository{err: repository.ErrItemNotFound})
	c := newEchoContext()
	name := "x"

	_, err := svc.GetItem(c, 7)
	httpErr := assertHTTPStatus(t, err, http.StatusNotFound)
	if httpErr.Message != "Item not found" {
		t.Errorf("Message = %q, want Item not found", httpErr.Message)
	}

	_, err = svc.UpdateItem(c, &model.UpdateItemPayload{ID: 7, Name: &name})
	assertHTTPStatus(t, err, http.StatusNotFound)

	assertHTTPStatus(t, svc.DeleteItem(c, 7), http.StatusNotFound)
}

func TestItemServiceStoreFailure(t *testing.T) {
	svc := newTestService(&stubItemRepository{err: errors.New("disk I/O error")})
	c := newEchoContext()
	name := "x"

	_, err := svc.CreateItem(c, &model.CreateItemPayload{Name: &name})
	httpErr := assertHTTPStatus(t, err, http.StatusInternalServerError)
	if httpErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("Message = %q leaks internal detail", httpErr.Message)
	}

	_, err = svc.ListItems(c)
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}

func TestItemServiceListNeverNil(t *testing.T) {
	svc := newTestService(&stubItemRepository{})

	items, err := svc.ListItems(newEchoContext())
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if items == nil {
		t.Fatal("ListItems() = nil, want an empty slice")
	}
}

func TestItemServiceCreate(t *testing.T) {
	svc := newTestService(&stubItemRepository{})
	name, description := "Kitty", "Cute cat"

	item, err := svc.CreateItem(newEchoContext(), &model.CreateItemPayload{Name: &name, Description: &description})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if item.Name != name || item.Description == nil || *item.Description != description {
		t.Errorf("CreateItem() = %+v, want Kitty/Cute cat", item)
	}
}
