package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/accounts-be/internal/models"
	"github.com/jmoiron/sqlx"
)

// ErrAccountNotFound is returned when no account has the requested id.
var ErrAccountNotFound = errors.New("account not found")

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	GetAllAccounts(ctx context.Context) ([]models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (models.Account, error)
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	UpdateAccount(ctx context.Context, account models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// AccountService persists accounts in the relational store.
type AccountService struct {
	db *sqlx.DB
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sqlx.DB) *AccountService {
	return &AccountService{db: db}
}

const accountColumns = "id, name, email, address, phone_number, date_joined"

// GetAllAccounts retrieves every account, ordered by id.
func (s *AccountService) GetAllAccounts(ctx context.Context) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	query := "SELECT " + accountColumns + " FROM accounts ORDER BY id"
	if err := s.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountByID retrieves a single account by its ID.
func (s *AccountService) GetAccountByID(ctx context.Context, id int64) (models.Account, error) {
	var account models.Account
	query := s.db.Rebind("SELECT " + accountColumns + " FROM accounts WHERE id = ?")
	err := s.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

// CreateAccount inserts a new account and assigns its id. The join date defaults to today.
func (s *AccountService) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.DateJoined.IsZero() {
		account.DateJoined = models.Today()
	}

	query := s.db.Rebind(`
		INSERT INTO accounts (name, email, address, phone_number, date_joined)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err := s.db.QueryRowxContext(ctx, query,
		account.Name, account.Email, account.Address, account.PhoneNumber, account.DateJoined,
	).Scan(&account.ID)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// UpdateAccount replaces the mutable fields of an existing account.
// The id and join date are never written.
func (s *AccountService) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.ID == 0 {
		return models.Account{}, &models.DataValidationError{Message: "Update called with empty ID field"}
	}

	query := s.db.Rebind(`
		UPDATE accounts SET name = ?, email = ?, address = ?, phone_number = ?
		WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		account.Name, account.Email, account.Address, account.PhoneNumber, account.ID,
	)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	if affected == 0 {
		return models.Account{}, ErrAccountNotFound
	}

	return s.GetAccountByID(ctx, account.ID)
}

// DeleteAccount removes an account. Deleting an id that does not exist is not an error.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM accounts WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	return nil
}
