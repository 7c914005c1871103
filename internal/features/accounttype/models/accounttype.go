package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tg-checkin-backend/internal/platform/telegram"
)

// AccountType is a catalog label with an optional access pass code.
// @Description Account type / pass code entry
type AccountType struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id" swaggertype:"string" example:"65a1b2c3d4e5f60718293a4b"`
	Type      string             `bson:"type" json:"type" example:"正常号"`
	Password  *string            `bson:"password" json:"password" example:"123456"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Catalog is the type picker keyboard, two labels per row.
type Catalog [][]telegram.Button

// Match reports whether data is the payload of one of the catalog buttons.
func (c Catalog) Match(data string) (string, bool) {
	for _, row := range c {
		for _, b := range row {
			if b.CallbackData == data {
				return b.Text, true
			}
		}
	}
	return "", false
}

func (c Catalog) Empty() bool {
	for _, row := range c {
		if len(row) > 0 {
			return false
		}
	}
	return true
}

// CreateRequest
// @Description Create account type
type CreateRequest struct {
	Type     string  `json:"type" binding:"required" example:"正常号"`
	Password *string `json:"password,omitempty"`
}

// UpdateRequest carries the id in the body for PUT /account-type.
// @Description Update account type
type UpdateRequest struct {
	ID       string  `json:"id" example:"65a1b2c3d4e5f60718293a4b"`
	Type     string  `json:"type" binding:"required" example:"老号"`
	Password *string `json:"password,omitempty"`
}

type VerifyRequest struct {
	PassCode string `json:"passCode" binding:"required" example:"123456"`
}

type ItemResponse struct {
	Message string       `json:"message" example:"成功"`
	Data    *AccountType `json:"data"`
}

type PassCodeResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Message    string      `json:"message" example:"Success"`
	Data       interface{} `json:"data"`
}
