package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/repository"
)

const addressesTable = "addresses"

var addressColumns = []string{"id", "contact_id", "street", "city", "province", "country", "postal_code"}

// AddressRepository implements port.AddressRepository using PostgreSQL.
type AddressRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAddressRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewAddressRepository(exec pgExecutor) *AddressRepository {
	return &AddressRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *AddressRepository) WithTx(tx pgx.Tx) *AddressRepository {
	if tx == nil {
		return r
	}
	return &AddressRepository{exec: tx, builder: r.builder}
}

// Create inserts an address row and returns the generated identifier.
func (r *AddressRepository) Create(ctx context.Context, address domain.Address) (int64, error) {
	stmt, args, err := r.builder.Insert(addressesTable).
		Columns("contact_id", "street", "city", "province", "country", "postal_code").
		Values(
			address.ContactID,
			nullable(address.Street),
			nullable(address.City),
			nullable(address.Province),
			address.Country,
			address.PostalCode,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert address sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}

	return id, nil
}

// GetByID retrieves an address scoped by the (contact, address) pair.
// An address id that exists under a different contact behaves as not found.
func (r *AddressRepository) GetByID(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	stmt, args, err := r.builder.Select(addressColumns...).
		From(addressesTable).
		Where(squirrel.Eq{"id": addressID, "contact_id": contactID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select address sql: %w", err)
	}

	return scanAddress(r.exec.QueryRow(ctx, stmt, args...))
}

// ListByContact returns all addresses of one contact ordered by id.
func (r *AddressRepository) ListByContact(ctx context.Context, contactID int64) ([]domain.Address, error) {
	stmt, args, err := r.builder.Select(addressColumns...).
		From(addressesTable).
		Where(squirrel.Eq{"contact_id": contactID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list addresses sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}

// Update persists the address fields scoped by (id, contact_id).
func (r *AddressRepository) Update(ctx context.Context, address domain.Address) error {
	stmt, args, err := r.builder.Update(addressesTable).
		Set("street", nullable(address.Street)).
		Set("city", nullable(address.City)).
		Set("province", nullable(address.Province)).
		Set("country", address.Country).
		Set("postal_code", address.PostalCode).
		Where(squirrel.Eq{"id": address.ID, "contact_id": address.ContactID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update address sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an address scoped by (id, contact_id).
func (r *AddressRepository) Delete(ctx context.Context, contactID, addressID int64) error {
	stmt, args, err := r.builder.Delete(addressesTable).
		Where(squirrel.Eq{"id": addressID, "contact_id": contactID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete address sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var (
		address  domain.Address
		street   sql.NullString
		city     sql.NullString
		province sql.NullString
	)

	if err := row.Scan(&address.ID, &address.ContactID, &street, &city, &province, &address.Country, &address.PostalCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}

	if street.Valid {
		val := street.String
		address.Street = &val
	}
	if city.Valid {
		val := city.String
		address.City = &val
	}
	if province.Valid {
		val := province.String
		address.Province = &val
	}

	return &address, nil
}

var _ port.AddressRepository = (*AddressRepository)(nil)
