package db

import (
	"context"
	"database/sql"
)

const userSchemaMigration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    external_id uuid NOT NULL UNIQUE,
    email text NOT NULL,
    username text NOT NULL UNIQUE,
    password_hash text NOT NULL DEFAULT '',
    display_name text,
    avatar_url text,
    provider text NOT NULL DEFAULT 'local',
    provider_user_id text,
    email_verified boolean NOT NULL DEFAULT false,
    enabled boolean NOT NULL DEFAULT true,
    status text NOT NULL DEFAULT 'OFFLINE',
    created_by text NOT NULL DEFAULT 'system',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    modified_by text NOT NULL DEFAULT 'system',
    modified_at timestamptz NOT NULL DEFAULT NOW(),
    version bigint NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS users_provider_identity_unique
ON users (provider, provider_user_id)
WHERE provider_user_id IS NOT NULL;
`

// RunUserSchemaMigration creates the users table and the unique indexes
// that close the concurrent first-login create race.
func RunUserSchemaMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, userSchemaMigration)
	return err
}
