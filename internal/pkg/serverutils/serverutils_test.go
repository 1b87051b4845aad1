package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/pkg/chat/autosend"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{constant.ErrSessionNotFound, fiber.StatusNotFound},
		{fmt.Errorf("send: %w", constant.ErrNoActiveSession), fiber.StatusNotFound},
		{constant.ErrSessionBusy, fiber.StatusConflict},
		{autosend.ErrTokenConsumed, fiber.StatusGone},
		{autosend.ErrTokenNotFound, fiber.StatusNotFound},
		{&ValidationError{Fields: map[string]string{"Message": "is required"}}, fiber.StatusBadRequest},
		{fiber.ErrUnprocessableEntity, fiber.StatusUnprocessableEntity},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Message string `validate:"required"`
		Theme   string `validate:"omitempty,oneof=light dark"`
	}

	assert.NoError(t, ValidateRequest(req{Message: "hi"}))

	err := ValidateRequest(req{Theme: "blue"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "is required", ve.Fields["Message"])
	assert.Equal(t, "must be one of [light dark]", ve.Fields["Theme"])
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewJwtMiddleware("secret"))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})

	token, _, err := IssueToken("secret", "alice", "principal", time.Hour, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	forged, _, err := IssueToken("other", "alice", "principal", time.Hour, time.Now())
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, _, err := IssueToken("secret", "alice", "", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/busy", func(ctx *fiber.Ctx) error { return constant.ErrSessionBusy })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("db password leaked") })

	resp, err := app.Test(httptest.NewRequest("GET", "/busy", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, constant.ErrSessionBusy.Error(), body["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])
}
