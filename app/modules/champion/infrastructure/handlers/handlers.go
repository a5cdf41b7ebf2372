package championhandlers

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/infrastructure/handlers"
	championservice "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/application"
	"github.com/Black-And-White-Club/alliance-bot/pkg/httpx"
	"github.com/go-chi/chi/v5"
)

// ChampionHandlers serves the catalog and roster routes.
type ChampionHandlers struct {
	service championservice.Service
	logger  *slog.Logger
}

// NewChampionHandlers creates a new ChampionHandlers instance.
func NewChampionHandlers(service championservice.Service, logger *slog.Logger) *ChampionHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChampionHandlers{service: service, logger: logger}
}

// Mount registers the catalog and roster routes. Catalog writes require the admin
// role on top of the caller's authentication.
func (h *ChampionHandlers) Mount(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Get("/champions", h.HandleListChampions)
	r.Get("/champions/{championID}", h.HandleGetChampion)
	r.With(adminOnly).Post("/champions", h.HandleCreateChampion)

	r.Get("/game-accounts/{accountID}/roster", h.HandleGetRoster)
	r.Post("/game-accounts/{accountID}/roster", h.HandleAddRosterEntry)
	r.Patch("/roster/{entryID}", h.HandleUpgradeRosterEntry)
	r.Delete("/roster/{entryID}", h.HandleRemoveRosterEntry)
}

type createChampionRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Class     string  `json:"class" validate:"required"`
	Alias     *string `json:"alias" validate:"omitempty,max=100"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
	SevenStar bool    `json:"seven_star"`
}

type levelRequest struct {
	Stars     *int `json:"stars" validate:"required"`
	Rank      *int `json:"rank" validate:"required"`
	Signature int  `json:"signature"`
}

func (l levelRequest) toInput() championservice.LevelInput {
	return championservice.LevelInput{Stars: *l.Stars, Rank: *l.Rank, Signature: l.Signature}
}

type addRosterEntryRequest struct {
	ChampionID string `json:"champion_id" validate:"required"`
	Stars      *int   `json:"stars" validate:"required"`
	Rank       *int   `json:"rank" validate:"required"`
	Signature  int    `json:"signature"`
}

func (h *ChampionHandlers) HandleListChampions(w http.ResponseWriter, r *http.Request) {
	champions, err := h.service.ListChampions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, champions)
}

func (h *ChampionHandlers) HandleGetChampion(w http.ResponseWriter, r *http.Request) {
	championID, err := httpx.UUIDParam(r, "championID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	champion, err := h.service.GetChampion(r.Context(), championID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, champion)
}

func (h *ChampionHandlers) HandleCreateChampion(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	var req createChampionRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	champion, err := h.service.CreateChampion(r.Context(), actor, championservice.ChampionInput{
		Name:      req.Name,
		Class:     req.Class,
		Alias:     req.Alias,
		ImageURL:  req.ImageURL,
		SevenStar: req.SevenStar,
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, champion)
}

func (h *ChampionHandlers) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	roster, err := h.service.GetRoster(r.Context(), accountID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roster)
}

func (h *ChampionHandlers) HandleAddRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	accountID, err := httpx.UUIDParam(r, "accountID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req addRosterEntryRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	championID, err := httpx.ParseUUID("champion_id", req.ChampionID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	entry, err := h.service.AddRosterEntry(r.Context(), actor, accountID, championservice.RosterInput{
		ChampionID: championID,
		LevelInput: levelRequest{Stars: req.Stars, Rank: req.Rank, Signature: req.Signature}.toInput(),
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, entry)
}

func (h *ChampionHandlers) HandleUpgradeRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	entryID, err := httpx.UUIDParam(r, "entryID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req levelRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	entry, err := h.service.UpgradeRosterEntry(r.Context(), actor, entryID, req.toInput())
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entry)
}

func (h *ChampionHandlers) HandleRemoveRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := authhandlers.RequestActor(w, r)
	if !ok {
		return
	}
	entryID, err := httpx.UUIDParam(r, "entryID")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.RemoveRosterEntry(r.Context(), actor, entryID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
