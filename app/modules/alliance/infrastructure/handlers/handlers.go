package alliancehandlers

import (
	"log/slog"
	"net/http"

	allianceservice "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/application"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AllianceHandlers serves the alliance, membership and officer routes.
type AllianceHandlers struct {
	service allianceservice.Service
	logger  *slog.Logger
}

// NewAllianceHandlers creates a new AllianceHandlers instance.
func NewAllianceHandlers(service allianceservice.Service, logger *slog.Logger) *AllianceHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AllianceHandlers{service: service, logger: logger}
}

// Mount registers the alliance routes on an authenticated router.
func (h *AllianceHandlers) Mount(r chi.Router) {
	r.Get("/alliances", h.HandleListAlliances)
	r.Post("/alliances", h.HandleCreateAlliance)
	r.Get("/alliances/mine", h.HandleListMyAlliances)
	r.Get("/alliances/eligible-owners", h.HandleEligibleOwners)

	r.Get("/alliances/{allianceID}", h.HandleGetAlliance)
	r.Patch("/alliances/{allianceID}", h.HandleUpdateAlliance)
	r.Delete("/alliances/{allianceID}", h.HandleDeleteAlliance)

	r.Post("/alliances/{allianceID}/members", h.HandleAddMember)
	r.Delete("/alliances/{allianceID}/members/{accountID}", h.HandleRemoveMember)
	r.Post("/alliances/{allianceID}/members/{accountID}/leave", h.HandleLeaveAlliance)
	r.Put("/alliances/{allianceID}/members/{accountID}/group", h.HandleSetMemberGroup)

	r.Post("/alliances/{allianceID}/officers", h.HandleAddOfficer)
	r.Delete("/alliances/{allianceID}/officers/{accountID}", h.HandleRemoveOfficer)

	r.Get("/alliances/{allianceID}/eligible-officers", h.HandleEligibleOfficers)
	r.Get("/alliances/{allianceID}/eligible-members", h.HandleEligibleMembers)
}

type createAllianceRequest struct {
	OwnerAccountID string `json:"owner_account_id" validate:"required"`
	Name           string `json:"name" validate:"required,max=100"`
	Tag            string `json:"tag" validate:"required,max=10"`
}

type updateAllianceRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Tag  string `json:"tag" validate:"required,max=10"`
}

type accountRequest struct {
	AccountID string `json:"account_id" validate:"required"`
}

// A missing or null group unassigns the member.
type setGroupRequest struct {
	Group *int `json:"group"`
}

// scope reads the actor and the alliance id every alliance route needs. It has
// already written the response when ok is false.
func (h *AllianceHandlers) scope(w http.ResponseWriter, r *http.Request) (authdomain.Actor, uuid.UUID, bool) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return authdomain.Actor{}, uuid.Nil, false
	}
	allianceID, err := httpx.UUIDParam(r, "allianceID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return authdomain.Actor{}, uuid.Nil, false
	}
	return actor, allianceID, true
}

// decodeAccount reads an {"account_id": ...} body.
func (h *AllianceHandlers) decodeAccount(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req accountRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return uuid.Nil, false
	}
	accountID, err := httpx.ParseUUID("account_id", req.AccountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return uuid.Nil, false
	}
	return accountID, true
}

func (h *AllianceHandlers) HandleListAlliances(w http.ResponseWriter, r *http.Request) {
	alliances, err := h.service.ListAlliances(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, alliances)
}

func (h *AllianceHandlers) HandleListMyAlliances(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	alliances, err := h.service.ListMyAlliances(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, alliances)
}

func (h *AllianceHandlers) HandleCreateAlliance(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	var req createAllianceRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	ownerID, err := httpx.ParseUUID("owner_account_id", req.OwnerAccountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	alliance, err := h.service.CreateAlliance(r.Context(), actor, ownerID, req.Name, req.Tag)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, alliance)
}

func (h *AllianceHandlers) HandleGetAlliance(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	alliance, err := h.service.GetAlliance(r.Context(), actor, allianceID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, alliance)
}

func (h *AllianceHandlers) HandleUpdateAlliance(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var req updateAllianceRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	alliance, err := h.service.UpdateAlliance(r.Context(), actor, allianceID, req.Name, req.Tag)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, alliance)
}

func (h *AllianceHandlers) HandleDeleteAlliance(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAlliance(r.Context(), actor, allianceID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AllianceHandlers) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, ok := h.decodeAccount(w, r)
	if !ok {
		return
	}
	member, err := h.service.AddMember(r.Context(), actor, allianceID, accountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, member)
}

func (h *AllianceHandlers) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.RemoveMember(r.Context(), actor, allianceID, accountID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AllianceHandlers) HandleLeaveAlliance(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.LeaveAlliance(r.Context(), actor, allianceID, accountID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AllianceHandlers) HandleSetMemberGroup(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req setGroupRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	member, err := h.service.SetMemberGroup(r.Context(), actor, allianceID, accountID, req.Group)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}

func (h *AllianceHandlers) HandleAddOfficer(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, ok := h.decodeAccount(w, r)
	if !ok {
		return
	}
	member, err := h.service.AddOfficer(r.Context(), actor, allianceID, accountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, member)
}

func (h *AllianceHandlers) HandleRemoveOfficer(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.RemoveOfficer(r.Context(), actor, allianceID, accountID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AllianceHandlers) HandleEligibleOwners(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	candidates, err := h.service.EligibleOwners(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, candidates)
}

func (h *AllianceHandlers) HandleEligibleOfficers(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	candidates, err := h.service.EligibleOfficers(r.Context(), actor, allianceID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, candidates)
}

func (h *AllianceHandlers) HandleEligibleMembers(w http.ResponseWriter, r *http.Request) {
	actor, allianceID, ok := h.scope(w, r)
	if !ok {
		return
	}
	candidates, err := h.service.EligibleMembers(r.Context(), actor, allianceID, r.URL.Query().Get("q"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, candidates)
}
