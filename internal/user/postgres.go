package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresStore is the canonical account store. Uniqueness of email,
// username, and (provider, provider_user_id) is enforced by the schema,
// closing the duplicate-create race between concurrent first logins.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `
	id, external_id, email, username, password_hash,
	COALESCE(display_name, ''), COALESCE(avatar_url, ''),
	provider, COALESCE(provider_user_id, ''),
	email_verified, enabled, status,
	created_by, created_at, modified_by, modified_at, version
`

func (s *PostgresStore) FindByProviderIdentity(ctx context.Context, provider, providerUserID string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE provider = $1
		  AND provider_user_id = $2
	`, provider, providerUserID)

	return scanAccount(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	return scanAccount(row)
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, externalID string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE external_id = $1
	`, externalID)

	return scanAccount(row)
}

func (s *PostgresStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Create(ctx context.Context, a *Account) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (
			external_id, email, username, password_hash,
			display_name, avatar_url, provider, provider_user_id,
			email_verified, enabled, status, created_by, modified_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13)
		RETURNING `+accountColumns+`
	`,
		a.ExternalID, a.Email, a.Username, a.PasswordHash,
		a.DisplayName, a.AvatarURL, a.Provider, a.ProviderUserID,
		a.EmailVerified, a.Enabled, a.Status, a.CreatedBy, a.ModifiedBy,
	)

	created, err := scanAccount(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	if created == nil {
		return nil, errors.New("user: insert returned no row")
	}
	return created, nil
}

func (s *PostgresStore) Update(ctx context.Context, a *Account) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET display_name = NULLIF($1, ''),
		    avatar_url = NULLIF($2, ''),
		    provider = $3,
		    provider_user_id = NULLIF($4, ''),
		    email_verified = $5,
		    modified_by = $6,
		    modified_at = NOW(),
		    version = version + 1
		WHERE id = $7
		  AND version = $8
		RETURNING `+accountColumns+`
	`,
		a.DisplayName, a.AvatarURL, a.Provider, a.ProviderUserID,
		a.EmailVerified, a.ModifiedBy, a.ID, a.Version,
	)

	updated, err := scanAccount(row)
	if err != nil {
		return nil, translateUnique(err)
	}
	if updated == nil {
		return nil, ErrVersionConflict
	}
	return updated, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET status = $1,
		    modified_at = NOW()
		WHERE id = $2
	`, status, id)
	return err
}

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.ExternalID, &a.Email, &a.Username, &a.PasswordHash,
		&a.DisplayName, &a.AvatarURL,
		&a.Provider, &a.ProviderUserID,
		&a.EmailVerified, &a.Enabled, &a.Status,
		&a.CreatedBy, &a.CreatedAt, &a.ModifiedBy, &a.ModifiedAt, &a.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
