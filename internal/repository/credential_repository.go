package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/car-rental/internal/model"
	"github.com/iliyamo/car-rental/internal/utils"
)

// CredentialRepo persists admin and customer credentials. The two
// roles live in separate tables with identical shape, so every
// operation resolves the table from the role first.
type CredentialRepo struct{ DB *sql.DB }

func NewCredentialRepo(db *sql.DB) *CredentialRepo { return &CredentialRepo{DB: db} }

// tableForRole maps a normalized role to its credential table. The
// table names are fixed constants, never caller input.
func tableForRole(role string) (string, bool) {
	switch role {
	case model.RoleAdmin:
		return "admin", true
	case model.RoleCustomer:
		return "customer", true
	}
	return "", false
}

// Create inserts a credential for the given role, hashing the
// password with bcrypt before it touches storage.
func (r *CredentialRepo) Create(ctx context.Context, role, username, password string, cost int) error {
	table, ok := tableForRole(role)
	if !ok {
		return ErrUnknownRole
	}
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (username, password_hash) VALUES (?,?)", table),
		username, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// GetByUsername fetches a credential from the role's table. It
// returns sql.ErrNoRows when the username is absent; ErrUnknownRole
// is returned without querying storage when the role is not one of
// the known namespaces.
func (r *CredentialRepo) GetByUsername(ctx context.Context, role, username string) (model.Credential, error) {
	var c model.Credential
	table, ok := tableForRole(role)
	if !ok {
		return c, ErrUnknownRole
	}
	username = strings.TrimSpace(username)
	err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT username, password_hash, created_at FROM %s WHERE username=? LIMIT 1", table),
		username).Scan(&c.Username, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return model.Credential{}, err
	}
	c.Role = role
	return c, nil
}
