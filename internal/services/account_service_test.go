package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/repo"
	"github.com/parkstats/go-revenue-backend/internal/secrets"
)

func newTestBox(t *testing.T) *secrets.Box {
	t.Helper()
	key, err := secrets.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	box, err := secrets.NewBox(key)
	if err != nil {
		t.Fatalf("new box: %v", err)
	}
	return box
}

func TestAccountCreate_SealsCredentials(t *testing.T) {
	db := newTestDB(t)
	box := newTestBox(t)
	svc := NewAccountService(db, box)
	ctx := context.Background()

	creds := networks.SedoCredentials{PartnerID: "p1", SignKey: "k1"}
	acct, err := svc.CreateSedo(ctx, "main", creds)
	if err != nil {
		t.Fatalf("CreateSedo: %v", err)
	}

	stored, err := repo.GetAccount(ctx, db, acct.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	// At rest the blob is ciphertext, not the JSON payload.
	var leaked networks.SedoCredentials
	if json.Unmarshal(stored.Credentials, &leaked) == nil && leaked.PartnerID == "p1" {
		t.Fatalf("credentials stored in the clear")
	}

	plain, err := box.Open(stored.Credentials)
	if err != nil {
		t.Fatalf("open blob: %v", err)
	}
	var round networks.SedoCredentials
	if err := json.Unmarshal(plain, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round != creds {
		t.Fatalf("round trip = %+v; want %+v", round, creds)
	}
}

func TestAccountCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestBox(t))
	ctx := context.Background()

	if _, err := svc.CreateSedo(ctx, "x", networks.SedoCredentials{PartnerID: "p"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("partial sedo creds: got %v", err)
	}
	if _, err := svc.CreateYandex(ctx, "x", networks.YandexCredentials{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("empty yandex creds: got %v", err)
	}

	noKey := NewAccountService(db, nil)
	if _, err := noKey.CreateYandex(ctx, "x", networks.YandexCredentials{Token: "t"}); !errors.Is(err, ErrNoMasterKey) {
		t.Fatalf("missing master key: got %v", err)
	}
}

func TestAccountListAndDeactivate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestBox(t))
	ctx := context.Background()

	a, err := svc.CreateYandex(ctx, "main", networks.YandexCredentials{Token: "t"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, err := svc.List(ctx, domain.NetworkYandex)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != a.ID {
		t.Fatalf("list = %+v", items)
	}
	if _, err := svc.List(ctx, "adsense"); !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("unknown network: got %v", err)
	}

	if err := svc.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := svc.Deactivate(ctx, a.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("second deactivate: got %v", err)
	}

	// The sync no longer sees it.
	active, err := repo.ListActiveAccounts(ctx, db, domain.NetworkYandex)
	if err != nil {
		t.Fatalf("active list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active accounts = %d; want 0", len(active))
	}
}
