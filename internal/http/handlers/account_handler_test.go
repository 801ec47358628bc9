package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/services"
)

func TestCreateAccount_Sedo(t *testing.T) {
	accts := &stubAccounts{}
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, accts))

	body := `{"network":"sedo","label":" main ","partner_id":" p1 ","sign_key":"k1"}`
	w := perform(t, r, http.MethodPost, "/api/v1/admin/accounts", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	// Handler trims before handing off.
	if accts.gotLabel != "main" || accts.gotSedo.PartnerID != "p1" || accts.gotSedo.SignKey != "k1" {
		t.Fatalf("service args = %q %+v", accts.gotLabel, accts.gotSedo)
	}

	var a domain.NetworkAccount
	if err := json.Unmarshal(w.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Network != domain.NetworkSedo || !a.IsActive {
		t.Fatalf("account = %+v", a)
	}
}

func TestCreateAccount_Yandex(t *testing.T) {
	accts := &stubAccounts{}
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, accts))

	w := perform(t, r, http.MethodPost, "/api/v1/admin/accounts",
		`{"network":"yandex","label":"ru","token":"tok"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if accts.gotYan.Token != "tok" {
		t.Fatalf("creds = %+v", accts.gotYan)
	}
}

func TestCreateAccount_BadRequests(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"malformed json", `{`, nil, http.StatusBadRequest},
		{"missing network", `{"label":"x"}`, nil, http.StatusBadRequest},
		{"unknown network", `{"network":"adsense"}`, nil, http.StatusBadRequest},
		{"incomplete creds", `{"network":"sedo","partner_id":"p"}`, services.ErrNotConfigured, http.StatusBadRequest},
		{"no master key", `{"network":"yandex","token":"t"}`, services.ErrNoMasterKey, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, &stubAccounts{err: tc.svcErr}))
			w := perform(t, r, http.MethodPost, "/api/v1/admin/accounts", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status = %d; want %d (body %s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestListAccounts(t *testing.T) {
	accts := &stubAccounts{list: []domain.NetworkAccount{
		{Network: domain.NetworkSedo, Label: "a"},
		{Network: domain.NetworkYandex, Label: "b"},
	}}
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, accts))

	w := perform(t, r, http.MethodGet, "/api/v1/admin/accounts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var items []domain.NetworkAccount
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
}

func TestDeactivateAccount(t *testing.T) {
	accts := &stubAccounts{}
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, accts))
	id := uuid.NewString()

	w := perform(t, r, http.MethodDelete, "/api/v1/admin/accounts/"+id, "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", w.Code)
	}
	if accts.gotID != id {
		t.Fatalf("id = %q; want %q", accts.gotID, id)
	}
}

func TestDeactivateAccount_InvalidID(t *testing.T) {
	accts := &stubAccounts{}
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{}, accts))

	w := perform(t, r, http.MethodDelete, "/api/v1/admin/accounts/not-a-uuid", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if accts.gotID != "" {
		t.Fatalf("service called with invalid id")
	}
}

func TestDeactivateAccount_NotFound(t *testing.T) {
	r := newTestRouter(New(&stubSync{}, &stubReports{}, &stubAssignments{},
		&stubAccounts{err: services.ErrAccountNotFound}))

	w := perform(t, r, http.MethodDelete, "/api/v1/admin/accounts/"+uuid.NewString(), "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}
