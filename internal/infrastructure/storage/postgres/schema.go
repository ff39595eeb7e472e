package postgres

import (
	"context"
	"fmt"

	"edr/internal/core/apperror"
	"edr/pkg/logger"
)

// baseColumns are shared by every business record table.
const baseColumns = `
	id BIGINT PRIMARY KEY,
	archived BOOLEAN NOT NULL DEFAULT FALSE,
	version INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),`

// tableDDL maps logical table names to their column definitions.
// Ordered so tables with references come after their targets.
var tableDDL = []struct {
	Name string
	Body string
}{
	{"projects", baseColumns + `
	name TEXT NOT NULL,
	client TEXT NOT NULL,
	status TEXT NOT NULL,
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ,
	description TEXT NOT NULL DEFAULT ''`},

	{"interventions", baseColumns + `
	title TEXT NOT NULL,
	client TEXT NOT NULL,
	technician TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	kind TEXT NOT NULL,
	deadline TIMESTAMPTZ NOT NULL,
	scheduled_date TIMESTAMPTZ,
	material TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	project_id BIGINT,
	notes TEXT NOT NULL DEFAULT '',
	attachments TEXT[] NOT NULL DEFAULT '{}'`},

	{"quotes", baseColumns + `
	reference TEXT NOT NULL,
	expiration_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	client JSONB NOT NULL DEFAULT '{}',
	issuer JSONB NOT NULL DEFAULT '{}',
	items JSONB NOT NULL DEFAULT '[]',
	subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
	tax_total DOUBLE PRECISION NOT NULL DEFAULT 0,
	total DOUBLE PRECISION NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	terms TEXT NOT NULL DEFAULT '',
	discount DOUBLE PRECISION NOT NULL DEFAULT 0,
	history JSONB NOT NULL DEFAULT '[]'`},

	{"inventory_items", baseColumns + `
	reference TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
	min_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit TEXT NOT NULL DEFAULT '',
	unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	supplier_id BIGINT,
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''`},

	{"suppliers", baseColumns + `
	name TEXT NOT NULL,
	contact_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	notes TEXT NOT NULL DEFAULT ''`},

	{"employees", baseColumns + `
	name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	hire_date TIMESTAMPTZ NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE`},

	{"leave_requests", baseColumns + `
	employee_id BIGINT NOT NULL,
	from_date TIMESTAMPTZ NOT NULL,
	to_date TIMESTAMPTZ NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	decided_by TEXT NOT NULL DEFAULT '',
	decided_at TIMESTAMPTZ`},

	{"users", `
	id BIGINT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'user',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	last_login_at TIMESTAMPTZ,
	failed_login_attempts INTEGER NOT NULL DEFAULT 0,
	locked_until TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()`},

	{"settings", `
	key TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	siret TEXT NOT NULL DEFAULT '',
	default_tax_rate DOUBLE PRECISION NOT NULL DEFAULT 20,
	quote_validity_days INTEGER NOT NULL DEFAULT 30,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	version INTEGER NOT NULL DEFAULT 1`},

	{"sequences", `
	key TEXT PRIMARY KEY,
	value BIGINT NOT NULL DEFAULT 0`},

	{"audit_log", `
	id UUID PRIMARY KEY,
	entity TEXT NOT NULL,
	entity_id BIGINT NOT NULL DEFAULT 0,
	action TEXT NOT NULL,
	acting_user TEXT NOT NULL DEFAULT '',
	at TIMESTAMPTZ NOT NULL DEFAULT now(),
	changes JSONB,
	changes_compressed BYTEA,
	compression_algo TEXT NOT NULL DEFAULT 'none'`},
}

// TableNames returns the prefixed names of all application tables.
func TableNames(prefix string) []string {
	names := make([]string, 0, len(tableDDL))
	for _, t := range tableDDL {
		names = append(names, prefix+t.Name)
	}
	return names
}

// CreateSchema creates all application tables with the given prefix.
// Existing tables are left untouched.
func CreateSchema(ctx context.Context, q Querier, prefix string) error {
	for _, t := range tableDDL {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s%s (%s)", prefix, t.Name, t.Body)
		if _, err := q.Exec(ctx, ddl); err != nil {
			return apperror.NewConnection(
				fmt.Sprintf("failed to create table %s%s", prefix, t.Name), err)
		}
		logger.Debug(ctx, "table ready", "table", prefix+t.Name)
	}
	return nil
}

// VerifySchema returns the prefixed tables present in the database and
// those still missing.
func VerifySchema(ctx context.Context, q Querier, prefix string) (present, missing []string, err error) {
	for _, t := range tableDDL {
		name := prefix + t.Name
		var exists bool
		row := q.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
			name)
		if err := row.Scan(&exists); err != nil {
			return nil, nil, apperror.NewConnection("failed to inspect schema", err)
		}
		if exists {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing, nil
}
