package handlers

import (
	"net/http"
	"testing"

	"fieldservice/internal/adapter/http/handlers/mocks"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"

	"go.uber.org/mock/gomock"
)

func newVisitRouter(h *VisitHandler) http.Handler {
	r := newTestRouter()
	r.PATCH("/v1/visits/:id/assignee", h.AssignVisit)
	r.PATCH("/v1/visits/:id/notes", h.UpdateNotes)
	return r
}

func TestVisitHandler_AssignVisit(t *testing.T) {
	t.Run("missing user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewVisitHandler(mocks.NewMockIVisitUseCase(ctrl))

		w := doRequest(t, newVisitRouter(h), http.MethodPatch, "/v1/visits/visit-1/assignee", `{}`, ownerActor)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVisitUseCase(ctrl)
		h := NewVisitHandler(uc)

		u1 := "U1"
		uc.EXPECT().AssignVisit(gomock.Any(), ownerActor, "visit-1", "U1").
			Return(entities.Visit{ID: "visit-1", AssignedUserID: &u1, Status: entities.VisitStatusScheduled}, nil)

		w := doRequest(t, newVisitRouter(h), http.MethodPatch, "/v1/visits/visit-1/assignee", `{"user_id":"U1"}`, ownerActor)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestVisitHandler_UpdateNotes(t *testing.T) {
	tech := entities.Actor{UserID: "U2", AccountID: "acc-1", Role: entities.RoleTech}

	t.Run("notes field required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewVisitHandler(mocks.NewMockIVisitUseCase(ctrl))

		w := doRequest(t, newVisitRouter(h), http.MethodPatch, "/v1/visits/visit-1/notes", `{}`, tech)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty notes clear", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVisitUseCase(ctrl)
		h := NewVisitHandler(uc)

		uc.EXPECT().UpdateNotes(gomock.Any(), tech, "visit-1", "").Return(entities.Visit{ID: "visit-1"}, nil)

		w := doRequest(t, newVisitRouter(h), http.MethodPatch, "/v1/visits/visit-1/notes", `{"notes":""}`, tech)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("other technician", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVisitUseCase(ctrl)
		h := NewVisitHandler(uc)

		uc.EXPECT().UpdateNotes(gomock.Any(), tech, "visit-1", "replaced gasket").
			Return(entities.Visit{}, workflow.Reject(workflow.ReasonNotAssigned, "visit visit-1 is not assigned to U2"))

		w := doRequest(t, newVisitRouter(h), http.MethodPatch, "/v1/visits/visit-1/notes", `{"notes":"replaced gasket"}`, tech)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}
