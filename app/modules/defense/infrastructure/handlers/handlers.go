package defensehandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	defenseservice "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/application"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DefenseHandlers serves the battlegroup defense map routes.
type DefenseHandlers struct {
	service defenseservice.Service
	logger  *slog.Logger
}

// NewDefenseHandlers creates a new DefenseHandlers instance.
func NewDefenseHandlers(service defenseservice.Service, logger *slog.Logger) *DefenseHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefenseHandlers{service: service, logger: logger}
}

// Mount registers the defense routes on an authenticated router.
func (h *DefenseHandlers) Mount(r chi.Router) {
	r.Get("/alliances/{allianceID}/defense/{bg}", h.HandleGetDefense)
	r.Delete("/alliances/{allianceID}/defense/{bg}", h.HandleClearDefense)
	r.Put("/alliances/{allianceID}/defense/{bg}/nodes/{node}", h.HandlePlaceDefender)
	r.Delete("/alliances/{allianceID}/defense/{bg}/nodes/{node}", h.HandleRemoveDefender)
	r.Get("/alliances/{allianceID}/defense/{bg}/available-champions", h.HandleAvailableChampions)
	r.Get("/alliances/{allianceID}/defense/{bg}/members", h.HandleMembers)
}

type placeRequest struct {
	ChampionUserID string  `json:"champion_user_id" validate:"required"`
	GameAccountID  string  `json:"game_account_id" validate:"required"`
	PlacedByID     *string `json:"placed_by_id"`
}

type clearResponse struct {
	Removed int `json:"removed"`
}

// target is the actor and map coordinates a defense route addresses.
type target struct {
	actor      authdomain.Actor
	allianceID uuid.UUID
	bg         int
	node       int
}

// parse reads the actor, alliance and battlegroup, plus the node when withNode
// is set. It has already written the response when ok is false.
func (h *DefenseHandlers) parse(w http.ResponseWriter, r *http.Request, withNode bool) (target, bool) {
	var t target
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return t, false
	}
	t.actor = actor

	var err error
	if t.allianceID, err = httpx.UUIDParam(r, "allianceID"); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return t, false
	}
	if t.bg, err = httpx.IntParam(r, "bg"); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return t, false
	}
	if withNode {
		if t.node, err = httpx.IntParam(r, "node"); err != nil {
			httpx.WriteError(w, r, h.logger, err)
			return t, false
		}
	}
	return t, true
}

func (h *DefenseHandlers) HandleGetDefense(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, false)
	if !ok {
		return
	}
	placements, err := h.service.GetDefense(r.Context(), t.actor, t.allianceID, t.bg)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, placements)
}

func (h *DefenseHandlers) HandlePlaceDefender(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, true)
	if !ok {
		return
	}
	var req placeRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	placement, err := h.service.PlaceDefender(r.Context(), t.actor, t.allianceID, t.bg, t.node, input)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, placement)
}

func (req placeRequest) toInput() (defenseservice.PlaceInput, error) {
	var in defenseservice.PlaceInput
	var err error
	if in.RosterEntryID, err = httpx.ParseUUID("champion_user_id", req.ChampionUserID); err != nil {
		return in, err
	}
	if in.GameAccountID, err = httpx.ParseUUID("game_account_id", req.GameAccountID); err != nil {
		return in, err
	}
	if req.PlacedByID != nil {
		id, err := httpx.ParseUUID("placed_by_id", *req.PlacedByID)
		if err != nil {
			return in, err
		}
		in.PlacedByID = &id
	}
	return in, nil
}

func (h *DefenseHandlers) HandleRemoveDefender(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, true)
	if !ok {
		return
	}
	if err := h.service.RemoveDefender(r.Context(), t.actor, t.allianceID, t.bg, t.node); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DefenseHandlers) HandleClearDefense(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, false)
	if !ok {
		return
	}
	removed, err := h.service.ClearDefense(r.Context(), t.actor, t.allianceID, t.bg)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clearResponse{Removed: removed})
}

func (h *DefenseHandlers) HandleAvailableChampions(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, false)
	if !ok {
		return
	}
	champions, err := h.service.AvailableChampions(r.Context(), t.actor, t.allianceID, t.bg)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, champions)
}

func (h *DefenseHandlers) HandleMembers(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parse(w, r, false)
	if !ok {
		return
	}
	members, err := h.service.BGMembersWithCounts(r.Context(), t.actor, t.allianceID, t.bg)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, members)
}
