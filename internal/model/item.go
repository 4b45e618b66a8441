// Package model holds the item record and the request/response payloads
// exchanged over HTTP.
package model

import (
	"github.com/go-playground/validator/v10"
)

// Item is the single persisted record type.
//
// Description is nil when absent and encodes as JSON null.
type Item struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// validate is shared by every payload; validator caches struct metadata.
var validate = validator.New()

// CreateItemPayload is the body of POST /items/.
//
// Name is a pointer so a missing or null name can be told apart from an
// empty string, which is accepted.
type CreateItemPayload struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (p *CreateItemPayload) Validate() error {
	return validate.Struct(p)
}

// ListItemsPayload is the (empty) request of GET /items/.
type ListItemsPayload struct{}

func (p *ListItemsPayload) Validate() error {
	return nil
}

// GetItemPayload addresses one item by path id.
type GetItemPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *GetItemPayload) ItemID() int64 {
	return p.ID
}

func (p *GetItemPayload) Validate() error {
	return nil
}

// UpdateItemPayload is the body of PUT /items/{id}. Both fields are
// always overwritten; it is not a partial patch.
type UpdateItemPayload struct {
	ID          int64   `param:"id" json:"-"`
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (p *UpdateItemPayload) ItemID() int64 {
	return p.ID
}

func (p *UpdateItemPayload) Validate() error {
	return validate.Struct(p)
}

// DeleteItemPayload addresses one item by path id.
type DeleteItemPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *DeleteItemPayload) ItemID() int64 {
	return p.ID
}

func (p *DeleteItemPayload) Validate() error {
	return nil
}

// DetailResponse is the confirmation body of DELETE /items/{id}.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the body of GET /api-root.
type MessageResponse struct {
	Message string `json:"message"`
}
