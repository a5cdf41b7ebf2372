package userhandlers

import (
	"net/http"

	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
)

type gameAccountRequest struct {
	Pseudo string `json:"pseudo" validate:"required,max=50"`
}

func (h *UserHandlers) HandleCreateGameAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}

	var req gameAccountRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	account, err := h.service.CreateGameAccount(r.Context(), actor, req.Pseudo)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, account)
}

func (h *UserHandlers) HandleListMyGameAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.ListMyGameAccounts(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accounts)
}

func (h *UserHandlers) HandleUpdateGameAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}

	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var req gameAccountRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	account, err := h.service.UpdateGameAccount(r.Context(), actor, accountID, req.Pseudo)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, account)
}

func (h *UserHandlers) HandleSetPrimaryGameAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}

	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	account, err := h.service.SetPrimaryGameAccount(r.Context(), actor, accountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, account)
}

func (h *UserHandlers) HandleDisableUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}

	userID, err := httpx.UUIDParam(r, "userID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	user, err := h.service.DisableUser(r.Context(), actor, userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}
