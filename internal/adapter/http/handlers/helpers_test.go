package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldservice/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var ownerActor = entities.Actor{UserID: "owner-1", AccountID: "acc-1", Role: entities.RoleOwner}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ActorMiddleware())
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string, actor entities.Actor) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if actor.UserID != "" {
		req.Header.Set(HeaderUserID, actor.UserID)
	}
	if actor.AccountID != "" {
		req.Header.Set(HeaderAccountID, actor.AccountID)
	}
	if actor.Role != "" {
		req.Header.Set(HeaderRole, string(actor.Role))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
