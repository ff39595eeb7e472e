package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/core/apperror"
	"edr/internal/domain/settings"
	"edr/internal/infrastructure/storage/memstore"
)

func newTestService() *settings.Service {
	return settings.NewService(memstore.NewSettingsStore(), memstore.NewAuditTrail(10))
}

func TestGet_ReturnsDefaultsBeforeFirstSave(t *testing.T) {
	svc := newTestService()

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "EDR Solution", cfg.CompanyName)
	assert.Equal(t, 20.0, cfg.DefaultTaxRate)
	assert.Equal(t, 30, cfg.QuoteValidityDays)
}

func TestUpdate_PersistsAndBumpsVersion(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	versionBefore := cfg.Version

	cfg.Address = "12 rue des Artisans, 69003 Lyon"
	cfg.SIRET = "123 456 789 00012"
	require.NoError(t, svc.Update(ctx, cfg))

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12 rue des Artisans, 69003 Lyon", stored.Address)
	assert.Equal(t, versionBefore+1, stored.Version)
}

func TestUpdate_ValidatesProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []func(*settings.Settings){
		func(s *settings.Settings) { s.CompanyName = "" },
		func(s *settings.Settings) { s.Email = "not-an-email" },
		func(s *settings.Settings) { s.DefaultTaxRate = 150 },
		func(s *settings.Settings) { s.QuoteValidityDays = 0 },
	}
	for _, mutate := range cases {
		cfg, err := svc.Get(ctx)
		require.NoError(t, err)
		mutate(cfg)

		err = svc.Update(ctx, cfg)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestQuoteIssuer_DerivedFromProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	cfg.CompanyName = "EDR Solution"
	cfg.SIRET = "123 456 789 00012"
	cfg.QuoteValidityDays = 45
	require.NoError(t, svc.Update(ctx, cfg))

	issuer, validity, err := svc.QuoteIssuer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EDR Solution", issuer.Name)
	assert.Equal(t, "123 456 789 00012", issuer.SIRET)
	assert.Equal(t, 45*24*time.Hour, validity)
}

func TestQuoteIssuer_DefaultsWhenUnsaved(t *testing.T) {
	svc := newTestService()

	issuer, validity, err := svc.QuoteIssuer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EDR Solution", issuer.Name)
	assert.Equal(t, 30*24*time.Hour, validity)
}
