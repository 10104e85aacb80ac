package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/infrastructure/ledgerstore"
	sharedconfig "liken/internal/shared/config"
	apperrors "liken/internal/shared/errors"
)

func storeClient(serverURL string) *ledgerstore.Client {
	return ledgerstore.NewClient(sharedconfig.LedgerStoreConfig{
		BaseURL:        serverURL,
		ServiceKey:     "test-key",
		RequestTimeout: 5 * time.Second,
	})
}

func TestPayoutSettingsRepositoryList(t *testing.T) {
	lastPaid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payout_settings", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "agency_id.asc", query.Get("order"))
		assert.Equal(t, "100", query.Get("limit"))
		assert.Equal(t, "0", query.Get("offset"))

		_ = json.NewEncoder(w).Encode([]payoutSettingsRow{
			{
				AgencyID:          "agency-1",
				Frequency:         "weekly",
				MinThresholdCents: 5000,
				Enabled:           true,
				LastPayoutAt:      &lastPaid,
				CreatedAt:         lastPaid,
				UpdatedAt:         lastPaid,
			},
			{
				AgencyID:          "agency-2",
				Frequency:         "fortnightly", // legacy value from an old writer
				MinThresholdCents: 0,
				Enabled:           false,
				CreatedAt:         lastPaid,
				UpdatedAt:         lastPaid,
			},
		})
	}))
	defer server.Close()

	repo := NewPayoutSettingsRepository(storeClient(server.URL))

	settings, err := repo.List(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, settings, 2)

	assert.Equal(t, "agency-1", settings[0].AgencyID())
	assert.Equal(t, vo.FrequencyWeekly, settings[0].Frequency())
	require.NotNil(t, settings[0].LastPayoutAt())

	// unrecognized frequency survives the round trip and falls back
	// to a 30 day cycle in the domain
	assert.Equal(t, 30, settings[1].Frequency().CycleDays())
	assert.False(t, settings[1].Enabled())
}

func TestPayoutSettingsRepositoryGetByAgencyIDAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.agency-missing", r.URL.Query().Get("agency_id"))
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	repo := NewPayoutSettingsRepository(storeClient(server.URL))

	settings, err := repo.GetByAgencyID(context.Background(), "agency-missing")
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestEarningRecordRepositorySumUnclaimed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/earning_records", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "eq.agency-1", query.Get("agency_id"))
		assert.Equal(t, "eq.succeeded", query.Get("status"))
		assert.Equal(t, "is.null", query.Get("payout_request_id"))

		_ = json.NewEncoder(w).Encode([]earningRecordRow{
			{ID: "er-1", AgencyID: "agency-1", AgencyEarnedCents: 3000, Status: "succeeded"},
			{ID: "er-2", AgencyID: "agency-1", AgencyEarnedCents: 4000, Status: "succeeded"},
		})
	}))
	defer server.Close()

	repo := NewEarningRecordRepository(storeClient(server.URL))

	total, err := repo.SumUnclaimed(context.Background(), "agency-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7000), total)
}

func TestEarningRecordRepositorySumFloorsAtZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]earningRecordRow{
			{ID: "er-1", AgencyID: "agency-1", AgencyEarnedCents: -500, Status: "succeeded"},
		})
	}))
	defer server.Close()

	repo := NewEarningRecordRepository(storeClient(server.URL))

	total, err := repo.SumUnclaimed(context.Background(), "agency-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestEarningRecordRepositorySumSkipsNonClaimableRows(t *testing.T) {
	linked := "req-9"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a stale read can return rows linked or reversed since the snapshot
		_ = json.NewEncoder(w).Encode([]earningRecordRow{
			{ID: "er-1", AgencyID: "agency-1", AgencyEarnedCents: 3000, Status: "succeeded"},
			{ID: "er-2", AgencyID: "agency-1", AgencyEarnedCents: 4000, Status: "refunded"},
			{ID: "er-3", AgencyID: "agency-1", AgencyEarnedCents: 2000, Status: "succeeded", PayoutRequestID: &linked},
		})
	}))
	defer server.Close()

	repo := NewEarningRecordRepository(storeClient(server.URL))

	total, err := repo.SumUnclaimed(context.Background(), "agency-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), total)
}

func TestEarningRecordRepositoryLinkCountsUpdatedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var patch map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "req-1", patch["payout_request_id"])

		_, _ = w.Write([]byte(`[{"id":"rec-1"},{"id":"rec-2"},{"id":"rec-3"}]`))
	}))
	defer server.Close()

	repo := NewEarningRecordRepository(storeClient(server.URL))

	linked, err := repo.LinkToPayoutRequest(context.Background(), "agency-1", "req-1")
	require.NoError(t, err)
	assert.Equal(t, 3, linked)
}

func TestEarningRecordRepositoryUnlinkClearsReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.req-1", r.URL.Query().Get("payout_request_id"))

		var patch map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		value, present := patch["payout_request_id"]
		assert.True(t, present)
		assert.Nil(t, value)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	repo := NewEarningRecordRepository(storeClient(server.URL))

	err := repo.UnlinkFromPayoutRequest(context.Background(), "req-1")
	require.NoError(t, err)
}

func TestPayoutRequestRepositoryFindActiveByCycleKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payout_requests", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "eq.agency-1:2026-04-01", query.Get("cycle_key"))
		assert.Equal(t, "in.(pending,settled)", query.Get("status"))
		assert.Equal(t, "1", query.Get("limit"))

		_ = json.NewEncoder(w).Encode([]payoutRequestRow{
			{
				ID:          "req-1",
				AgencyID:    "agency-1",
				AmountCents: 7000,
				Currency:    "USD",
				Status:      "settled",
				CycleKey:    "agency-1:2026-04-01",
				CreatedAt:   time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer server.Close()

	repo := NewPayoutRequestRepository(storeClient(server.URL))

	request, err := repo.FindActiveByCycleKey(context.Background(), "agency-1:2026-04-01")
	require.NoError(t, err)
	require.NotNil(t, request)
	assert.Equal(t, "req-1", request.ID())
	assert.Equal(t, vo.PayoutStatusSettled, request.Status())
}

func TestPayoutRequestRepositoryFindActiveByCycleKeyNone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	repo := NewPayoutRequestRepository(storeClient(server.URL))

	request, err := repo.FindActiveByCycleKey(context.Background(), "agency-1:2026-04-01")
	require.NoError(t, err)
	assert.Nil(t, request)
}

func TestAgencyAccountRepositoryMissingAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agencies", r.URL.Path)
		assert.Equal(t, "eq.agency-1", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`[{"stripe_connect_account_id":null}]`))
	}))
	defer server.Close()

	repo := NewAgencyAccountRepository(storeClient(server.URL))

	_, err := repo.GetSettlementAccountID(context.Background(), "agency-1")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestAgencyAccountRepositoryUnknownAgency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	repo := NewAgencyAccountRepository(storeClient(server.URL))

	_, err := repo.GetSettlementAccountID(context.Background(), "agency-1")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
