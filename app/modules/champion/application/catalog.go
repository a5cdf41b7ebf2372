package championservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	championdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/domain"
	championdb "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/operations"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListChampions returns the catalog ordered by name, optionally filtered by a
// name or alias fragment.
func (s *ChampionService) ListChampions(ctx context.Context, search string) ([]championdomain.Champion, error) {
	return operations.Execute(s.runner, ctx, "ListChampions", search, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]championdomain.Champion, error], error) {
		champions, err := s.repo.ListChampions(ctx, db, search)
		if err != nil {
			return operations.Abort[[]championdomain.Champion](err)
		}
		out := make([]championdomain.Champion, 0, len(champions))
		for _, c := range champions {
			out = append(out, toChampionView(c))
		}
		return operations.Succeed(out)
	})
}

func (s *ChampionService) GetChampion(ctx context.Context, championID uuid.UUID) (*championdomain.Champion, error) {
	return operations.Execute(s.runner, ctx, "GetChampion", championID.String(), func(ctx context.Context, db bun.IDB) (results.OperationResult[*championdomain.Champion, error], error) {
		champion, err := s.repo.GetChampion(ctx, db, championID)
		if err != nil {
			if errors.Is(err, championdb.ErrNotFound) {
				return operations.Fail[*championdomain.Champion](apperrors.NotFound("champion not found"))
			}
			return operations.Abort[*championdomain.Champion](fmt.Errorf("failed to get champion: %w", err))
		}
		view := toChampionView(champion)
		return operations.Succeed(&view)
	})
}

// CreateChampion adds a catalog entry. Admin only.
func (s *ChampionService) CreateChampion(ctx context.Context, actor authdomain.Actor, input ChampionInput) (*championdomain.Champion, error) {
	champion, err := operations.Execute(s.runner, ctx, "CreateChampion", input.Name, func(ctx context.Context, db bun.IDB) (results.OperationResult[*championdomain.Champion, error], error) {
		return s.createChampionLogic(ctx, db, actor, input)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, championdomain.ChampionCreatedV1, champion)
	return champion, nil
}

func (s *ChampionService) createChampionLogic(ctx context.Context, db bun.IDB, actor authdomain.Actor, input ChampionInput) (results.OperationResult[*championdomain.Champion, error], error) {
	if !actor.IsAdmin() {
		return operations.Fail[*championdomain.Champion](apperrors.Forbidden("only admins can edit the champion catalog"))
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return operations.Fail[*championdomain.Champion](apperrors.BadRequest("name is required"))
	}
	class := strings.ToLower(strings.TrimSpace(input.Class))
	if !championdomain.IsValidClass(class) {
		return operations.Fail[*championdomain.Champion](apperrors.BadRequest("class must be one of %s", strings.Join(championdomain.Classes, ", ")))
	}

	champion := &championdb.Champion{
		Name:      name,
		Class:     class,
		Alias:     input.Alias,
		ImageURL:  input.ImageURL,
		SevenStar: input.SevenStar,
	}
	if err := s.repo.CreateChampion(ctx, db, champion); err != nil {
		if errors.Is(err, championdb.ErrDuplicate) {
			return operations.Fail[*championdomain.Champion](apperrors.Conflict("champion %q already exists", name))
		}
		return operations.Abort[*championdomain.Champion](fmt.Errorf("failed to create champion: %w", err))
	}

	view := toChampionView(champion)
	return operations.Succeed(&view)
}
