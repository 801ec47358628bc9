package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/repo"
)

// AssignmentService manages the domain ownership registry: which user owns a
// (domain, network) pair and at what revenue share. Ownership changes take
// effect on the next sync; already-reconciled ledger rows keep their
// attribution until the engine re-points them.
type AssignmentService struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// NewAssignmentService wires an AssignmentService.
func NewAssignmentService(db *gorm.DB, c *cache.Cache) *AssignmentService {
	return &AssignmentService{DB: db, Cache: c}
}

// Upsert creates or re-points the active assignment for (domainName, network).
//
// Rules:
//   - the domain is normalized before matching, so "WWW.Example.COM." and
//     "example.com" address the same registry entry;
//   - at most one active assignment exists per (domain, network): assigning
//     to a new owner deactivates the previous owner's row;
//   - a previously deactivated row for the same (domain, network, user) is
//     reactivated instead of violating the unique key.
func (s *AssignmentService) Upsert(ctx context.Context, domainName, network, userID string, revShare float64) (*domain.DomainAssignment, error) {
	tr := otel.Tracer("services/AssignmentService")
	ctx, span := tr.Start(ctx, "Upsert",
		trace.WithAttributes(
			attribute.String("network", network),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if !domain.KnownNetwork(network) {
		return nil, ErrUnknownNetwork
	}
	name := domain.NormalizeDomainName(domainName)
	if name == "" {
		return nil, ErrEmptyDomain
	}
	if revShare < 0 || revShare > 100 {
		return nil, ErrInvalidRevShare
	}

	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserNotFound
	}

	current, err := repo.FindActiveAssignment(ctx, s.DB, name, network)
	switch {
	case err == nil && current.UserID == userID:
		// Same owner: only the share (and the auto flag) can change.
		if err := repo.UpdateAssignment(ctx, s.DB, current.ID, revShare, true); err != nil {
			return nil, err
		}
		current.RevShare = revShare
		s.invalidate()
		return current, nil
	case err == nil:
		// Ownership change: retire the old owner's row first.
		if err := repo.DeactivateAssignment(ctx, s.DB, current.ID); err != nil {
			return nil, err
		}
		log.Info().
			Str("domain", name).
			Str("network", network).
			Str("from_user", current.UserID).
			Str("to_user", userID).
			Msg("domain re-assigned")
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}

	// Reactivate the new owner's historical row when one exists; the unique
	// key on (domain, network, user) forbids a second insert.
	if prev, err := repo.FindAssignmentForUser(ctx, s.DB, name, network, userID); err == nil {
		if err := repo.UpdateAssignment(ctx, s.DB, prev.ID, revShare, true); err != nil {
			return nil, err
		}
		prev.RevShare = revShare
		prev.IsActive = true
		s.invalidate()
		return prev, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	a, err := repo.CreateAssignment(ctx, s.DB, name, network, userID, revShare, false)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return a, nil
}

// Remove deactivates the active assignment for (domainName, network). Revenue
// for the domain falls back to the fallback user on subsequent syncs.
func (s *AssignmentService) Remove(ctx context.Context, domainName, network string) error {
	if !domain.KnownNetwork(network) {
		return ErrUnknownNetwork
	}
	name := domain.NormalizeDomainName(domainName)
	if name == "" {
		return ErrEmptyDomain
	}

	a, err := repo.FindActiveAssignment(ctx, s.DB, name, network)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if err := repo.DeactivateAssignment(ctx, s.DB, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

// List returns one page of the registry plus the total row count.
// network "" lists all networks; page is 1-based.
func (s *AssignmentService) List(ctx context.Context, network string, page, pageSize int) ([]domain.DomainAssignment, int64, error) {
	if network != "" && !domain.KnownNetwork(network) {
		return nil, 0, ErrUnknownNetwork
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	total, err := repo.CountAssignments(ctx, s.DB, network)
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.ListAssignmentsPage(ctx, s.DB, network, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *AssignmentService) invalidate() {
	if s.Cache == nil {
		return
	}
	s.Cache.DeleteByPrefix(cache.PrefixDashboard)
}
