// Package services: SyncService.
//
// This file implements the revenue reconciliation engine: it turns a batch
// of raw ad-network records into durable, idempotent ledger writes and then
// folds the ledger into the cross-network overview table.
//
// Per-record algorithm:
//  1. Normalize the domain (lowercase/trim/punycode) if present.
//  2. Resolve (owner, revShare) from the bulk-prefetched ownership registry;
//     unassigned domains fall back to the configured fallback user with the
//     default share, or are skipped when the batch is filtered to assigned
//     domains only.
//  3. Net revenue = round(gross × share / 100, 2).
//  4. Normalize the date to midnight UTC.
//  5. Upsert against the ledger's natural key, re-pointing the owning user
//     when ownership changed between syncs instead of duplicating the row.
//  6. Count saved/updated/skipped; per-record failures are collected as
//     error strings and never abort the batch.
//
// Observability: public entry points are OpenTelemetry-instrumented and the
// batch counters feed Prometheus.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/notify"
	"github.com/parkstats/go-revenue-backend/internal/repo"
	"github.com/parkstats/go-revenue-backend/internal/secrets"
)

var (
	// syncRecords counts reconciled records by network and outcome
	// (saved, updated, skipped, error).
	syncRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_sync_records_total",
			Help: "Total reconciled revenue records by network and outcome.",
		},
		[]string{"network", "outcome"},
	)

	// syncRuns counts whole sync runs by network and status (ok, partial, failed).
	syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revenue_sync_runs_total",
			Help: "Total sync runs by network and status.",
		},
		[]string{"network", "status"},
	)
)

func init() {
	prometheus.MustRegister(syncRecords, syncRuns)
}

// SedoAPI is the fetch contract of a Sedo client. The wire format behind it
// is fixed by the third party; the engine only sees normalized records.
type SedoAPI interface {
	Fetch(ctx context.Context, from, to time.Time) ([]networks.SedoRecord, error)
}

// YandexAPI is the fetch contract of a Yandex client.
type YandexAPI interface {
	Fetch(ctx context.Context, from, to time.Time) ([]networks.YandexRecord, error)
}

// SaveOptions controls how a batch of raw records is attributed.
type SaveOptions struct {
	// FilterAssigned skips records whose domain has no active assignment
	// instead of attributing them to the fallback user. Used for per-user
	// manual syncs so publishers never accumulate data for domains they
	// don't own.
	FilterAssigned bool

	// OwnerID, when non-empty, additionally skips records that resolve to a
	// different user, and scopes the overview rebuild to that user.
	OwnerID string
}

// SaveResult carries the per-batch reconciliation counters. Errors holds
// human-readable per-record failures; the batch itself always completes.
type SaveResult struct {
	Saved   int      `json:"records_saved"`
	Updated int      `json:"records_updated"`
	Skipped int      `json:"records_skipped"`
	Errors  []string `json:"errors,omitempty"`
}

func (r *SaveResult) merge(other SaveResult) {
	r.Saved += other.Saved
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

// AccountSummary is the per-account breakdown inside a batch summary.
type AccountSummary struct {
	AccountID string   `json:"account_id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Fetched   int      `json:"records_fetched"`
	Saved     int      `json:"records_saved"`
	Updated   int      `json:"records_updated"`
	Skipped   int      `json:"records_skipped"`
	Errors    []string `json:"errors,omitempty"`
	Failed    bool     `json:"failed"`
}

// BatchSummary is the aggregate result of one network sync run, reported in
// cron and manual sync responses.
type BatchSummary struct {
	Network           string           `json:"network"`
	AccountsProcessed int              `json:"accounts_processed"`
	RecordsFetched    int              `json:"records_fetched"`
	RecordsSaved      int              `json:"records_saved"`
	RecordsUpdated    int              `json:"records_updated"`
	RecordsSkipped    int              `json:"records_skipped"`
	OverviewSynced    int              `json:"overview_synced"`
	ErrorCount        int              `json:"errors"`
	Accounts          []AccountSummary `json:"accounts"`

	// RunErrors holds failures outside any single account, such as an
	// overview rebuild error. Counted in ErrorCount and included in the
	// failure notification alongside the per-account errors.
	RunErrors []string `json:"run_errors,omitempty"`
}

// SyncService is the reconciliation engine plus its orchestration: it owns
// all writes to the ledger and overview tables.
type SyncService struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	Box      *secrets.Box // nil disables stored-account credentials
	Notifier notify.Notifier

	FallbackUserID  string
	DefaultRevShare float64
	Lookback        int // days of history re-fetched per run

	// Bootstrap clients built from environment credentials; nil when that
	// network has no env configuration.
	Sedo   SedoAPI
	Yandex YandexAPI

	// Factories build clients for stored NetworkAccount credentials.
	SedoFactory   func(networks.SedoCredentials) SedoAPI
	YandexFactory func(networks.YandexCredentials) YandexAPI

	// now is a test seam; defaults to time.Now.
	now func() time.Time
}

// ownerShare is one resolved registry entry.
type ownerShare struct {
	UserID   string
	RevShare float64
}

func (s *SyncService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// loadOwnership bulk-reads the active assignments for one network into a
// map keyed by normalized domain. Resolution is exact-match only; anything
// not in the map falls back per SaveOptions.
func (s *SyncService) loadOwnership(ctx context.Context, network string) (map[string]ownerShare, error) {
	assigns, err := repo.ListActiveAssignments(ctx, s.DB, network)
	if err != nil {
		return nil, err
	}
	m := make(map[string]ownerShare, len(assigns))
	for _, a := range assigns {
		m[domain.NormalizeDomainName(a.Domain)] = ownerShare{UserID: a.UserID, RevShare: a.RevShare}
	}
	return m, nil
}

// resolveOwner returns the attribution for a normalized domain name. The
// second result reports whether an exact assignment matched. Unassigned
// domains resolve to the fallback user with the default share and, when the
// domain is non-empty, get an auto-created assignment so admins can re-own
// them later (best effort; a failed create still attributes the record).
func (s *SyncService) resolveOwner(ctx context.Context, owners map[string]ownerShare, network, name string) (ownerShare, bool) {
	if o, ok := owners[name]; ok {
		return o, true
	}
	o := ownerShare{UserID: s.FallbackUserID, RevShare: s.DefaultRevShare}
	if name != "" {
		if _, err := repo.CreateAssignment(ctx, s.DB, name, network, o.UserID, o.RevShare, true); err != nil {
			log.Debug().Err(err).Str("domain", name).Str("network", network).
				Msg("auto-assignment not created")
		} else {
			owners[name] = o
		}
	}
	return o, false
}

// statusFor tags rows for the current (still accruing) day as Estimated and
// everything older as Final.
func (s *SyncService) statusFor(day time.Time) string {
	if day.Equal(domain.NormalizeDay(s.clock())) {
		return domain.StatusEstimated
	}
	return domain.StatusFinal
}

// SaveSedoRecords reconciles a batch of raw Sedo records into sedo_ledger.
// One bad record never fails the batch; only a registry read failure aborts
// before any per-record processing begins.
func (s *SyncService) SaveSedoRecords(ctx context.Context, recs []networks.SedoRecord, opts SaveOptions) SaveResult {
	tr := otel.Tracer("services/SyncService")
	ctx, span := tr.Start(ctx, "SaveSedoRecords",
		trace.WithAttributes(
			attribute.String("network", domain.NetworkSedo),
			attribute.Int("batch.size", len(recs)),
		),
	)
	defer span.End()

	var res SaveResult
	owners, err := s.loadOwnership(ctx, domain.NetworkSedo)
	if err != nil {
		res.Errors = append(res.Errors, "load assignments: "+err.Error())
		return res
	}

	for _, r := range recs {
		name := domain.NormalizeDomainName(r.Domain)
		day := domain.NormalizeDay(r.Date)

		// Reject corrupt records before resolution so they never trigger
		// a fallback auto-assignment.
		if r.GrossRevenue < 0 {
			res.Errors = append(res.Errors,
				fmt.Sprintf("sedo %s %s: negative gross revenue", day.Format("2006-01-02"), name))
			syncRecords.WithLabelValues(domain.NetworkSedo, "error").Inc()
			continue
		}

		owner, assigned := s.resolveOwnerFiltered(ctx, owners, domain.NetworkSedo, name, opts, &res)
		if !assigned {
			continue
		}

		row, err := repo.FindSedoLedger(ctx, s.DB, day, name, r.SubID1, r.SubID2, r.SubID3)
		switch {
		case err == nil:
			// Existing row for the natural key: overwrite metrics and
			// re-point the owner if ownership changed between syncs.
			s.fillSedoRow(row, r, day, name, owner)
			if err := repo.SaveSedoLedger(ctx, s.DB, row); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("sedo %s %s: %v", day.Format("2006-01-02"), name, err))
				syncRecords.WithLabelValues(domain.NetworkSedo, "error").Inc()
				continue
			}
			res.Updated++
			syncRecords.WithLabelValues(domain.NetworkSedo, "updated").Inc()
		case err == gorm.ErrRecordNotFound:
			row = &domain.SedoLedger{ID: uuid.NewString(), CreatedAt: s.clock().UTC()}
			s.fillSedoRow(row, r, day, name, owner)
			if err := repo.SaveSedoLedger(ctx, s.DB, row); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("sedo %s %s: %v", day.Format("2006-01-02"), name, err))
				syncRecords.WithLabelValues(domain.NetworkSedo, "error").Inc()
				continue
			}
			res.Saved++
			syncRecords.WithLabelValues(domain.NetworkSedo, "saved").Inc()
		default:
			res.Errors = append(res.Errors,
				fmt.Sprintf("sedo %s %s: %v", day.Format("2006-01-02"), name, err))
			syncRecords.WithLabelValues(domain.NetworkSedo, "error").Inc()
		}
	}

	if res.Saved+res.Updated > 0 {
		s.invalidateCaches()
	}
	return res
}

// fillSedoRow overwrites a ledger row's attribution and metrics from a raw
// record. CTR and RPM are derived, never carried over.
func (s *SyncService) fillSedoRow(row *domain.SedoLedger, r networks.SedoRecord, day time.Time, name string, owner ownerShare) {
	row.Date = day
	row.Domain = name
	row.SubID1 = r.SubID1
	row.SubID2 = r.SubID2
	row.SubID3 = r.SubID3
	row.UserID = owner.UserID
	row.GrossRevenue = r.GrossRevenue
	row.NetRevenue = NetRevenue(r.GrossRevenue, owner.RevShare)
	row.RevShare = owner.RevShare
	row.Impressions = r.Impressions
	row.Clicks = r.Clicks
	row.CTR = DeriveCTR(r.Clicks, r.Impressions)
	row.RPM = DeriveRPM(r.GrossRevenue, r.Impressions)
	row.Status = s.statusFor(day)
	row.UpdatedAt = s.clock().UTC()
}

// SaveYandexRecords reconciles a batch of raw Yandex records into
// yandex_ledger. Mirrors SaveSedoRecords with the Yandex natural key
// (date, domain, tag_id).
func (s *SyncService) SaveYandexRecords(ctx context.Context, recs []networks.YandexRecord, opts SaveOptions) SaveResult {
	tr := otel.Tracer("services/SyncService")
	ctx, span := tr.Start(ctx, "SaveYandexRecords",
		trace.WithAttributes(
			attribute.String("network", domain.NetworkYandex),
			attribute.Int("batch.size", len(recs)),
		),
	)
	defer span.End()

	var res SaveResult
	owners, err := s.loadOwnership(ctx, domain.NetworkYandex)
	if err != nil {
		res.Errors = append(res.Errors, "load assignments: "+err.Error())
		return res
	}

	for _, r := range recs {
		name := domain.NormalizeDomainName(r.Domain)
		day := domain.NormalizeDay(r.Date)

		// Reject corrupt records before resolution so they never trigger
		// a fallback auto-assignment.
		if r.GrossRevenue < 0 {
			res.Errors = append(res.Errors,
				fmt.Sprintf("yandex %s %s: negative gross revenue", day.Format("2006-01-02"), name))
			syncRecords.WithLabelValues(domain.NetworkYandex, "error").Inc()
			continue
		}

		owner, assigned := s.resolveOwnerFiltered(ctx, owners, domain.NetworkYandex, name, opts, &res)
		if !assigned {
			continue
		}

		row, err := repo.FindYandexLedger(ctx, s.DB, day, name, r.TagID)
		switch {
		case err == nil:
			s.fillYandexRow(row, r, day, name, owner)
			if err := repo.SaveYandexLedger(ctx, s.DB, row); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("yandex %s %s: %v", day.Format("2006-01-02"), name, err))
				syncRecords.WithLabelValues(domain.NetworkYandex, "error").Inc()
				continue
			}
			res.Updated++
			syncRecords.WithLabelValues(domain.NetworkYandex, "updated").Inc()
		case err == gorm.ErrRecordNotFound:
			row = &domain.YandexLedger{ID: uuid.NewString(), CreatedAt: s.clock().UTC()}
			s.fillYandexRow(row, r, day, name, owner)
			if err := repo.SaveYandexLedger(ctx, s.DB, row); err != nil {
				res.Errors = append(res.Errors,
					fmt.Sprintf("yandex %s %s: %v", day.Format("2006-01-02"), name, err))
				syncRecords.WithLabelValues(domain.NetworkYandex, "error").Inc()
				continue
			}
			res.Saved++
			syncRecords.WithLabelValues(domain.NetworkYandex, "saved").Inc()
		default:
			res.Errors = append(res.Errors,
				fmt.Sprintf("yandex %s %s: %v", day.Format("2006-01-02"), name, err))
			syncRecords.WithLabelValues(domain.NetworkYandex, "error").Inc()
		}
	}

	if res.Saved+res.Updated > 0 {
		s.invalidateCaches()
	}
	return res
}

// fillYandexRow overwrites a ledger row's attribution and metrics from a raw
// record.
func (s *SyncService) fillYandexRow(row *domain.YandexLedger, r networks.YandexRecord, day time.Time, name string, owner ownerShare) {
	row.Date = day
	row.Domain = name
	row.TagID = r.TagID
	row.TagName = r.TagName
	row.UserID = owner.UserID
	row.GrossRevenue = r.GrossRevenue
	row.NetRevenue = NetRevenue(r.GrossRevenue, owner.RevShare)
	row.RevShare = owner.RevShare
	row.Impressions = r.Impressions
	row.Clicks = r.Clicks
	row.CTR = DeriveCTR(r.Clicks, r.Impressions)
	row.RPM = DeriveRPM(r.GrossRevenue, r.Impressions)
	row.Status = s.statusFor(day)
	row.UpdatedAt = s.clock().UTC()
}

// resolveOwnerFiltered applies the SaveOptions skip rules on top of
// resolveOwner. The bool result reports whether the record should be
// written; skipped records are counted, not written.
func (s *SyncService) resolveOwnerFiltered(ctx context.Context, owners map[string]ownerShare, network, name string, opts SaveOptions, res *SaveResult) (ownerShare, bool) {
	if opts.FilterAssigned {
		o, ok := owners[name]
		if !ok {
			res.Skipped++
			syncRecords.WithLabelValues(network, "skipped").Inc()
			return ownerShare{}, false
		}
		if opts.OwnerID != "" && o.UserID != opts.OwnerID {
			res.Skipped++
			syncRecords.WithLabelValues(network, "skipped").Inc()
			return ownerShare{}, false
		}
		return o, true
	}

	owner, _ := s.resolveOwner(ctx, owners, network, name)
	if opts.OwnerID != "" && owner.UserID != opts.OwnerID {
		res.Skipped++
		syncRecords.WithLabelValues(network, "skipped").Inc()
		return ownerShare{}, false
	}
	return owner, true
}

// SyncOverview rebuilds the overview rows for one network by summing all
// matching ledger rows grouped by (user, date, domain). userID "" rebuilds
// for every user (cron-wide run). The rebuild is a full re-derivation, so
// re-running after a partial failure converges to the same state. Returns
// the number of overview rows written.
//
// A userID-scoped rebuild clears and rewrites only that user's rows. When a
// ledger row was re-pointed away from another user, that user's stale
// overview row survives the scoped rebuild and is removed by the next
// unscoped (cron) run.
func (s *SyncService) SyncOverview(ctx context.Context, network, userID string) (int, error) {
	tr := otel.Tracer("services/SyncService")
	ctx, span := tr.Start(ctx, "SyncOverview",
		trace.WithAttributes(
			attribute.String("network", network),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	sums, err := repo.SumLedger(ctx, s.DB, network, userID)
	if err != nil {
		return 0, err
	}

	// Delete-then-write inside one transaction so rows whose ownership moved
	// to another user do not linger under the previous owner.
	written := 0
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.ClearOverview(ctx, tx, network, userID); err != nil {
			return err
		}
		for _, sum := range sums {
			row := &domain.RevenueOverview{
				Date:         sum.Date,
				Network:      network,
				Domain:       sum.Domain,
				UserID:       sum.UserID,
				GrossRevenue: RoundMoney(sum.GrossRevenue),
				NetRevenue:   RoundMoney(sum.NetRevenue),
				Impressions:  sum.Impressions,
				Clicks:       sum.Clicks,
				// Derived from the sums, never from per-row ratios.
				CTR:       DeriveCTR(sum.Clicks, sum.Impressions),
				RPM:       DeriveRPM(sum.GrossRevenue, sum.Impressions),
				UpdatedAt: s.clock().UTC(),
			}
			if err := repo.UpsertOverview(ctx, tx, row); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if written > 0 {
		s.invalidateCaches()
	}
	return written, nil
}

// invalidateCaches clears the dashboard and sync-status prefixes after a
// successful write. Breadth (all users) is traded for simplicity.
func (s *SyncService) invalidateCaches() {
	if s.Cache == nil {
		return
	}
	s.Cache.DeleteByPrefix(cache.PrefixDashboard)
	s.Cache.DeleteByPrefix(cache.PrefixSyncStatus)
}

// window returns the fetch range: the last Lookback calendar days up to and
// including today (UTC).
func (s *SyncService) window() (from, to time.Time) {
	to = domain.NormalizeDay(s.clock())
	lookback := s.Lookback
	if lookback < 1 {
		lookback = 1
	}
	from = to.AddDate(0, 0, -(lookback - 1))
	return from, to
}

// sedoClients assembles the Sedo clients to sync: one per active stored
// account (credentials opened from their encrypted blobs) plus the bootstrap
// environment client when configured. ErrNotConfigured when the list is
// empty.
func (s *SyncService) sedoClients(ctx context.Context) ([]accountClient[SedoAPI], error) {
	var out []accountClient[SedoAPI]
	accounts, err := repo.ListActiveAccounts(ctx, s.DB, domain.NetworkSedo)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if s.Box == nil || s.SedoFactory == nil {
			continue
		}
		plain, err := s.Box.Open(a.Credentials)
		if err != nil {
			log.Error().Err(err).Str("account_id", a.ID).Msg("sedo credentials unreadable")
			continue
		}
		var creds networks.SedoCredentials
		if err := json.Unmarshal(plain, &creds); err != nil || !creds.Configured() {
			log.Error().Err(err).Str("account_id", a.ID).Msg("sedo credentials malformed")
			continue
		}
		out = append(out, accountClient[SedoAPI]{ID: a.ID, Label: a.Label, API: s.SedoFactory(creds)})
	}
	if s.Sedo != nil {
		out = append(out, accountClient[SedoAPI]{Label: "env", API: s.Sedo})
	}
	if len(out) == 0 {
		return nil, ErrNotConfigured
	}
	return out, nil
}

// yandexClients mirrors sedoClients for the Yandex network.
func (s *SyncService) yandexClients(ctx context.Context) ([]accountClient[YandexAPI], error) {
	var out []accountClient[YandexAPI]
	accounts, err := repo.ListActiveAccounts(ctx, s.DB, domain.NetworkYandex)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if s.Box == nil || s.YandexFactory == nil {
			continue
		}
		plain, err := s.Box.Open(a.Credentials)
		if err != nil {
			log.Error().Err(err).Str("account_id", a.ID).Msg("yandex credentials unreadable")
			continue
		}
		var creds networks.YandexCredentials
		if err := json.Unmarshal(plain, &creds); err != nil || !creds.Configured() {
			log.Error().Err(err).Str("account_id", a.ID).Msg("yandex credentials malformed")
			continue
		}
		out = append(out, accountClient[YandexAPI]{ID: a.ID, Label: a.Label, API: s.YandexFactory(creds)})
	}
	if s.Yandex != nil {
		out = append(out, accountClient[YandexAPI]{Label: "env", API: s.Yandex})
	}
	if len(out) == 0 {
		return nil, ErrNotConfigured
	}
	return out, nil
}

// accountClient pairs a fetch client with the stored account it came from.
type accountClient[T any] struct {
	ID    string
	Label string
	API   T
}

// RunNetworkSync performs the full fetch → reconcile → fold pipeline for one
// network across all of its accounts. One account's fetch failure does not
// prevent other accounts from being attempted; the summary reports partial
// success and a non-zero error count triggers the failure notifier.
//
// ErrUnknownNetwork and ErrNotConfigured are returned before any fetch is
// attempted and are not treated as failures needing notification.
func (s *SyncService) RunNetworkSync(ctx context.Context, network string, opts SaveOptions) (*BatchSummary, error) {
	tr := otel.Tracer("services/SyncService")
	ctx, span := tr.Start(ctx, "RunNetworkSync",
		trace.WithAttributes(attribute.String("network", network)),
	)
	defer span.End()

	sum := &BatchSummary{Network: network}
	from, to := s.window()

	switch network {
	case domain.NetworkSedo:
		clients, err := s.sedoClients(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range clients {
			acct := AccountSummary{AccountID: c.ID, Label: c.Label}
			recs, err := c.API.Fetch(ctx, from, to)
			if err != nil {
				acct.Failed = true
				acct.Errors = append(acct.Errors, err.Error())
				sum.append(acct)
				continue
			}
			acct.Fetched = len(recs)
			res := s.SaveSedoRecords(ctx, recs, opts)
			acct.Saved, acct.Updated, acct.Skipped = res.Saved, res.Updated, res.Skipped
			acct.Errors = res.Errors
			sum.append(acct)
			s.touchAccount(ctx, c.ID)
		}
	case domain.NetworkYandex:
		clients, err := s.yandexClients(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range clients {
			acct := AccountSummary{AccountID: c.ID, Label: c.Label}
			recs, err := c.API.Fetch(ctx, from, to)
			if err != nil {
				acct.Failed = true
				acct.Errors = append(acct.Errors, err.Error())
				sum.append(acct)
				continue
			}
			acct.Fetched = len(recs)
			res := s.SaveYandexRecords(ctx, recs, opts)
			acct.Saved, acct.Updated, acct.Skipped = res.Saved, res.Updated, res.Skipped
			acct.Errors = res.Errors
			sum.append(acct)
			s.touchAccount(ctx, c.ID)
		}
	default:
		return nil, ErrUnknownNetwork
	}

	// Fold the ledger into the overview once per run, after all accounts.
	synced, err := s.SyncOverview(ctx, network, opts.OwnerID)
	if err != nil {
		sum.ErrorCount++
		sum.RunErrors = append(sum.RunErrors, "overview rebuild: "+err.Error())
		log.Error().Err(err).Str("network", network).Msg("overview rebuild failed")
	}
	sum.OverviewSynced = synced

	switch {
	case sum.ErrorCount == 0:
		syncRuns.WithLabelValues(network, "ok").Inc()
	case sum.RecordsSaved+sum.RecordsUpdated > 0:
		syncRuns.WithLabelValues(network, "partial").Inc()
	default:
		syncRuns.WithLabelValues(network, "failed").Inc()
	}

	if sum.ErrorCount > 0 && s.Notifier != nil {
		errs := make([]string, 0, sum.ErrorCount)
		for _, a := range sum.Accounts {
			errs = append(errs, a.Errors...)
		}
		errs = append(errs, sum.RunErrors...)
		_ = s.Notifier.SyncFailure(ctx, network, errs)
	}

	log.Info().
		Str("network", network).
		Int("accounts", sum.AccountsProcessed).
		Int("fetched", sum.RecordsFetched).
		Int("saved", sum.RecordsSaved).
		Int("updated", sum.RecordsUpdated).
		Int("skipped", sum.RecordsSkipped).
		Int("overview", sum.OverviewSynced).
		Int("errors", sum.ErrorCount).
		Msg("sync run finished")

	return sum, nil
}

// append folds one account summary into the batch totals.
func (b *BatchSummary) append(a AccountSummary) {
	b.AccountsProcessed++
	b.RecordsFetched += a.Fetched
	b.RecordsSaved += a.Saved
	b.RecordsUpdated += a.Updated
	b.RecordsSkipped += a.Skipped
	b.ErrorCount += len(a.Errors)
	b.Accounts = append(b.Accounts, a)
}

// touchAccount records a successful fetch on the stored account, when the
// client belongs to one.
func (s *SyncService) touchAccount(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := repo.TouchAccountSync(ctx, s.DB, id, s.clock().UTC()); err != nil {
		log.Debug().Err(err).Str("account_id", id).Msg("last_sync_at not updated")
	}
}
