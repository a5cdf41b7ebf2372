package championservice

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GetRoster returns an account's roster, strongest first.
func (s *ChampionService) GetRoster(ctx context.Context, accountID uuid.UUID) ([]championdomain.RosterEntry, error) {
	return operations.Execute(s.runner, ctx, "GetRoster", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]championdomain.RosterEntry, error], error) {
		if _, err := s.accounts.GetGameAccount(ctx, db, accountID); err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operations.Fail[[]championdomain.RosterEntry](apperrors.NotFound("game account not found"))
			}
			return operations.Abort[[]championdomain.RosterEntry](fmt.Errorf("failed to get game account: %w", err))
		}

		entries, err := s.repo.ListEntriesByAccount(ctx, db, accountID)
		if err != nil {
			return operations.Abort[[]championdomain.RosterEntry](err)
		}
		out := make([]championdomain.RosterEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, toEntryView(e))
		}
		return operations.Succeed(out)
	})
}

// AddRosterEntry records that the actor's account holds a champion at a level.
func (s *ChampionService) AddRosterEntry(ctx context.Context, actor authdomain.Actor, accountID uuid.UUID, input RosterInput) (*championdomain.RosterEntry, error) {
	entry, err := operations.Execute(s.runner, ctx, "AddRosterEntry", accountID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*championdomain.RosterEntry, error], error) {
		return s.addRosterEntryLogic(ctx, db, actor, accountID, input)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, championdomain.RosterEntryAddedV1, rosterPayload(entry))
	return entry, nil
}

func (s *ChampionService) addRosterEntryLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, accountID uuid.UUID, input RosterInput) (results.OperationResult[*championdomain.RosterEntry, error], error) {
	if failure, err := s.checkAccountOwner(ctx, db, actor, accountID); failure != nil || err != nil {
		if err != nil {
			return operations.Abort[*championdomain.RosterEntry](err)
		}
		return operations.Fail[*championdomain.RosterEntry](failure)
	}

	champion, err := s.repo.GetChampion(ctx, db, input.ChampionID)
	if err != nil {
		if errors.Is(err, championdb.ErrNotFound) {
			return operations.Fail[*championdomain.RosterEntry](apperrors.NotFound("champion not found"))
		}
		return operations.Abort[*championdomain.RosterEntry](fmt.Errorf("failed to get champion: %w", err))
	}

	if err := championdomain.ValidateLevel(input.Stars, input.Rank, input.Signature, champion.SevenStar); err != nil {
		return operations.Fail[*championdomain.RosterEntry](apperrors.BadRequest("%s", err.Error()))
	}

	entry := &championdb.ChampionUser{
		GameAccountID: accountID,
		ChampionID:    champion.ID,
		Stars:         input.Stars,
		Rank:          input.Rank,
		Signature:     input.Signature,
	}
	if err := s.repo.CreateEntry(ctx, db, entry); err != nil {
		if errors.Is(err, championdb.ErrDuplicate) {
			return operations.Fail[*championdomain.RosterEntry](apperrors.Conflict("account already holds %s at %d stars", champion.Name, input.Stars))
		}
		return operations.Abort[*championdomain.RosterEntry](fmt.Errorf("failed to add roster entry: %w", err))
	}
	entry.Champion = champion

	view := toEntryView(entry)
	return operations.Succeed(&view)
}

// UpgradeRosterEntry rewrites the level of one of the actor's roster entries.
func (s *ChampionService) UpgradeRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID, input LevelInput) (*championdomain.RosterEntry, error) {
	entry, err := operations.Execute(s.runner, ctx, "UpgradeRosterEntry", entryID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*championdomain.RosterEntry, error], error) {
		return s.upgradeRosterEntryLogic(ctx, db, actor, entryID, input)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, championdomain.RosterEntryUpdatedV1, rosterPayload(entry))
	return entry, nil
}

func (s *ChampionService) upgradeRosterEntryLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, entryID uuid.UUID, input LevelInput) (results.OperationResult[*championdomain.RosterEntry, error], error) {
	entry, failure, err := s.ownedEntry(ctx, db, actor, entryID)
	if err != nil {
		return operations.Abort[*championdomain.RosterEntry](err)
	}
	if failure != nil {
		return operations.Fail[*championdomain.RosterEntry](failure)
	}

	sevenStar := entry.Champion != nil && entry.Champion.SevenStar
	if err := championdomain.ValidateLevel(input.Stars, input.Rank, input.Signature, sevenStar); err != nil {
		return operations.Fail[*championdomain.RosterEntry](apperrors.BadRequest("%s", err.Error()))
	}

	fields := championdb.EntryUpdateFields{Stars: input.Stars, Rank: input.Rank, Signature: input.Signature}
	if err := s.repo.UpdateEntry(ctx, db, entryID, fields); err != nil {
		switch {
		case errors.Is(err, championdb.ErrDuplicate):
			return operations.Fail[*championdomain.RosterEntry](apperrors.Conflict("account already holds %s at %d stars", entry.ChampionName(), input.Stars))
		case errors.Is(err, championdb.ErrNoRowsAffected):
			return operations.Fail[*championdomain.RosterEntry](apperrors.NotFound("roster entry not found"))
		}
		return operations.Abort[*championdomain.RosterEntry](fmt.Errorf("failed to update roster entry: %w", err))
	}
	entry.Stars, entry.Rank, entry.Signature = input.Stars, input.Rank, input.Signature

	view := toEntryView(entry)
	return operations.Succeed(&view)
}

// RemoveRosterEntry deletes one of the actor's roster entries along with any
// defense placements that use it.
func (s *ChampionService) RemoveRosterEntry(ctx context.Context, actor authdomain.Actor, entryID uuid.UUID) error {
	entry, err := operations.Execute(s.runner, ctx, "RemoveRosterEntry", entryID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*championdomain.RosterEntry, error], error) {
		entry, failure, err := s.ownedEntry(ctx, db, actor, entryID)
		if err != nil {
			return operations.Abort[*championdomain.RosterEntry](err)
		}
		if failure != nil {
			return operations.Fail[*championdomain.RosterEntry](failure)
		}
		if err := s.repo.DeleteEntry(ctx, db, entryID); err != nil {
			if errors.Is(err, championdb.ErrNoRowsAffected) {
				return operations.Fail[*championdomain.RosterEntry](apperrors.NotFound("roster entry not found"))
			}
			return operations.Abort[*championdomain.RosterEntry](fmt.Errorf("failed to delete roster entry: %w", err))
		}
		view := toEntryView(entry)
		return operations.Succeed(&view)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, championdomain.RosterEntryRemovedV1, rosterPayload(entry))
	return nil
}

// checkAccountOwner returns a domain failure unless actor owns accountID.
func (s *ChampionService) checkAccountOwner(ctx context.Context, db bun.IDB, actor authdomain.Actor, accountID uuid.UUID) (error, error) {
	account, err := s.accounts.GetGameAccount(ctx, db, accountID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return apperrors.NotFound("game account not found"), nil
		}
		return nil, fmt.Errorf("failed to get game account: %w", err)
	}
	if account.UserID != actor.UserID {
		return apperrors.Forbidden("game account belongs to another user"), nil
	}
	return nil, nil
}

func (s *ChampionService) ownedEntry(ctx context.Context, db bun.IDB, actor authdomain.Actor, entryID uuid.UUID) (*championdb.ChampionUser, error, error) {
	entry, err := s.repo.GetEntry(ctx, db, entryID)
	if err != nil {
		if errors.Is(err, championdb.ErrNotFound) {
			return nil, apperrors.NotFound("roster entry not found"), nil
		}
		return nil, nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	failure, err := s.checkAccountOwner(ctx, db, actor, entry.GameAccountID)
	if err != nil || failure != nil {
		return nil, failure, err
	}
	return entry, nil, nil
}

func rosterPayload(e *championdomain.RosterEntry) championdomain.RosterEntryPayload {
	return championdomain.RosterEntryPayload{
		EntryID:       e.ID,
		GameAccountID: e.GameAccountID,
		ChampionID:    e.Champion.ID,
		Rarity:        e.Rarity,
	}
}
