package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"chirpboard/internal/level"
	"chirpboard/internal/models"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *models.Account, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	account.PasswordHash = string(hashedPassword)
	account.Level = 1
	account.Exp = 0

	query := `
		INSERT INTO accounts (user_id, password_hash, level, exp, badge, followers, followings, refresh_token, refresh_token_expiry_time)
		VALUES (:user_id, :password_hash, :level, :exp, :badge, :followers, :followings, :refresh_token, :refresh_token_expiry_time)
	`

	_, err = r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already exists", account.UserID)
		}
		return fmt.Errorf("could not create account: %w", err)
	}

	return nil
}

func (r *accountRepository) GetAccountByID(ctx context.Context, userID string) (*models.Account, error) {
	var account models.Account

	query := `SELECT * FROM accounts WHERE user_id = $1`

	err := r.db.GetContext(ctx, &account, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s not found", userID)
		}
		return nil, fmt.Errorf("could not load account: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) VerifyPassword(ctx context.Context, userID, password string) (*models.Account, error) {
	account, err := r.GetAccountByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("wrong password")
	}

	return account, nil
}

func (r *accountRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE accounts
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("could not update refresh token: %w", err)
	}

	return nil
}

func (r *accountRepository) GetAccountByRefreshToken(ctx context.Context, refreshToken string) (*models.Account, error) {
	var account models.Account

	query := `
		SELECT * FROM accounts
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &account, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid or expired refresh token")
		}
		return nil, fmt.Errorf("could not load account by refresh token: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) ListFollowers(ctx context.Context, userID string) ([]string, error) {
	var followers []string

	query := `SELECT follower_id FROM following WHERE user_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &followers, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list followers: %w", err)
	}

	return followers, nil
}

func (r *accountRepository) ListFollowings(ctx context.Context, userID string) ([]string, error) {
	var followings []string

	query := `SELECT user_id FROM following WHERE follower_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &followings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list followings: %w", err)
	}

	return followings, nil
}

// awardExp grants experience to userID inside the caller's transaction:
// read current progress, run the level-up computation, write the result.
// A missing account is a logged no-op so the triggering event still commits.
func awardExp(ctx context.Context, tx *sqlx.Tx, userID string, amount int) error {
	if userID == "" {
		return nil
	}

	var current struct {
		Level int  `db:"level"`
		Exp   int  `db:"exp"`
		Badge bool `db:"badge"`
	}

	err := tx.GetContext(ctx, &current, `SELECT level, exp, badge FROM accounts WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("experience reward skipped: account %s not found", userID)
			return nil
		}
		return fmt.Errorf("could not load progress for %s: %w", userID, err)
	}

	next, granted := level.Apply(level.Progress{
		Level: current.Level,
		Exp:   current.Exp,
		Badge: current.Badge,
	}, amount)

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET level = $1, exp = $2, badge = $3 WHERE user_id = $4`,
		next.Level, next.Exp, next.Badge, userID)
	if err != nil {
		return fmt.Errorf("could not save progress for %s: %w", userID, err)
	}

	if granted {
		log.Printf("badge granted: %s reached level %d", userID, next.Level)
	}

	return nil
}
