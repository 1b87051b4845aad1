package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/pkg/serverutils"
	internalWS "erp-agent-nexus/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushApp() *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewPushHandler(internalWS.NewHub(nil, "test", log), "secret", log).RegisterRoutes(app.Group("/api"))
	return app
}

func TestServeWsRejectsMissingOrBadToken(t *testing.T) {
	app := newPushApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/ws?token=nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app := newPushApp()
	token, _, err := serverutils.IssueToken("secret", "alice", "admin", time.Hour, time.Now())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ws?token="+token, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
