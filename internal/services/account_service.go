package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/repo"
	"github.com/parkstats/go-revenue-backend/internal/secrets"
)

// AccountService manages stored ad-network accounts. Credentials are sealed
// with the process master key before they touch the database and are only
// opened again inside the sync path; the API never returns them.
type AccountService struct {
	DB  *gorm.DB
	Box *secrets.Box
}

// NewAccountService wires an AccountService. box must be non-nil; accounts
// cannot be stored without a master key.
func NewAccountService(db *gorm.DB, box *secrets.Box) *AccountService {
	return &AccountService{DB: db, Box: box}
}

// ErrNoMasterKey is returned when account storage is attempted without a
// configured master key.
var ErrNoMasterKey = errors.New("credential master key not configured")

// CreateSedo stores a Sedo account. The partner id and sign key are validated
// for presence only; whether they work is discovered by the next sync.
func (s *AccountService) CreateSedo(ctx context.Context, label string, creds networks.SedoCredentials) (*domain.NetworkAccount, error) {
	if !creds.Configured() {
		return nil, ErrNotConfigured
	}
	return s.create(ctx, domain.NetworkSedo, label, creds)
}

// CreateYandex stores a Yandex account.
func (s *AccountService) CreateYandex(ctx context.Context, label string, creds networks.YandexCredentials) (*domain.NetworkAccount, error) {
	if !creds.Configured() {
		return nil, ErrNotConfigured
	}
	return s.create(ctx, domain.NetworkYandex, label, creds)
}

func (s *AccountService) create(ctx context.Context, network, label string, creds any) (*domain.NetworkAccount, error) {
	if s.Box == nil {
		return nil, ErrNoMasterKey
	}
	plain, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}
	blob, err := s.Box.Seal(plain)
	if err != nil {
		return nil, err
	}
	return repo.CreateAccount(ctx, s.DB, network, label, blob)
}

// List returns the stored accounts, optionally scoped to one network
// ("" means all). Credential blobs are excluded by the model's JSON mapping.
func (s *AccountService) List(ctx context.Context, network string) ([]domain.NetworkAccount, error) {
	if network != "" && !domain.KnownNetwork(network) {
		return nil, ErrUnknownNetwork
	}
	return repo.ListAccounts(ctx, s.DB, network)
}

// Deactivate disables an account so the sync stops using it. The row and its
// sealed credentials are retained.
func (s *AccountService) Deactivate(ctx context.Context, id string) error {
	err := repo.DeactivateAccount(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}
