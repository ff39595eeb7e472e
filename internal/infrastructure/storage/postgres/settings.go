package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"edr/internal/core/apperror"
	"edr/internal/domain/settings"
)

// SettingsStore persists the settings singleton under its fixed key.
type SettingsStore struct {
	txm   *TxManager
	table string
}

// NewSettingsStore creates the PostgreSQL settings store.
func NewSettingsStore(txm *TxManager, prefix string) *SettingsStore {
	return &SettingsStore{txm: txm, table: prefix + "settings"}
}

// Get implements settings.Store.
func (s *SettingsStore) Get(ctx context.Context) (*settings.Settings, error) {
	sql := fmt.Sprintf(`
		SELECT company_name, address, phone, email, siret,
		       default_tax_rate, quote_validity_days, updated_at, version
		FROM %s WHERE key = $1`, s.table)

	var cfg settings.Settings
	querier := s.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &cfg, sql, settings.Key); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("settings", settings.Key)
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &cfg, nil
}

// Save implements settings.Store.
func (s *SettingsStore) Save(ctx context.Context, cfg *settings.Settings) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (key, company_name, address, phone, email, siret,
		                default_tax_rate, quote_validity_days, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (key) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			siret = EXCLUDED.siret,
			default_tax_rate = EXCLUDED.default_tax_rate,
			quote_validity_days = EXCLUDED.quote_validity_days,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version`, s.table)

	querier := s.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		settings.Key, cfg.CompanyName, cfg.Address, cfg.Phone, cfg.Email, cfg.SIRET,
		cfg.DefaultTaxRate, cfg.QuoteValidityDays, cfg.UpdatedAt, cfg.Version)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

var _ settings.Store = (*SettingsStore)(nil)
