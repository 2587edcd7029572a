package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/repository"
)

const contactsTable = "contacts"

var contactColumns = []string{"id", "username", "first_name", "last_name", "email", "phone"}

// ContactRepository implements port.ContactRepository using PostgreSQL.
type ContactRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewContactRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewContactRepository(exec pgExecutor) *ContactRepository {
	return &ContactRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *ContactRepository) WithTx(tx pgx.Tx) *ContactRepository {
	if tx == nil {
		return r
	}
	return &ContactRepository{exec: tx, builder: r.builder}
}

// Create inserts a contact row and returns the generated identifier.
func (r *ContactRepository) Create(ctx context.Context, contact domain.Contact) (int64, error) {
	stmt, args, err := r.builder.Insert(contactsTable).
		Columns("username", "first_name", "last_name", "email", "phone").
		Values(
			contact.Username,
			contact.FirstName,
			nullable(contact.LastName),
			nullable(contact.Email),
			nullable(contact.Phone),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert contact sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}

	return id, nil
}

// GetByID retrieves a contact scoped by owner. A contact owned by another
// user behaves as not found.
func (r *ContactRepository) GetByID(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	stmt, args, err := r.builder.Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"id": id, "username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contact sql: %w", err)
	}

	contact, err := scanContact(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Update persists the contact's fields scoped by (id, username).
func (r *ContactRepository) Update(ctx context.Context, contact domain.Contact) error {
	stmt, args, err := r.builder.Update(contactsTable).
		Set("first_name", contact.FirstName).
		Set("last_name", nullable(contact.LastName)).
		Set("email", nullable(contact.Email)).
		Set("phone", nullable(contact.Phone)).
		Where(squirrel.Eq{"id": contact.ID, "username": contact.Username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update contact sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a contact scoped by (id, username).
func (r *ContactRepository) Delete(ctx context.Context, username string, id int64) error {
	stmt, args, err := r.builder.Delete(contactsTable).
		Where(squirrel.Eq{"id": id, "username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete contact sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns contacts matching the filter, ordered by id, with
// offset/limit pagination.
func (r *ContactRepository) List(ctx context.Context, filter port.ContactFilter) ([]domain.Contact, error) {
	query := applyContactFilter(
		r.builder.Select(contactColumns...).From(contactsTable),
		filter,
	).OrderBy("id ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contacts sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	return contacts, nil
}

// Count returns the total number of contacts matching the filter,
// ignoring pagination.
func (r *ContactRepository) Count(ctx context.Context, filter port.ContactFilter) (int, error) {
	stmt, args, err := applyContactFilter(
		r.builder.Select("COUNT(*)").From(contactsTable),
		filter,
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count contacts sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan contacts count: %w", err)
	}

	return int(count), nil
}

// applyContactFilter scopes by owner and ANDs the optional substring
// filters; the name filter alone matches first OR last name.
func applyContactFilter(query squirrel.SelectBuilder, filter port.ContactFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"username": filter.Username})

	if filter.Name != "" {
		pattern := likePattern(filter.Name)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	if filter.Email != "" {
		query = query.Where(squirrel.ILike{"email": likePattern(filter.Email)})
	}

	if filter.Phone != "" {
		query = query.Where(squirrel.ILike{"phone": likePattern(filter.Phone)})
	}

	return query
}

// likePattern builds a contains pattern, escaping LIKE metacharacters so
// filter input matches literally.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		contact  domain.Contact
		lastName sql.NullString
		email    sql.NullString
		phone    sql.NullString
	)

	if err := row.Scan(&contact.ID, &contact.Username, &contact.FirstName, &lastName, &email, &phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}

	if lastName.Valid {
		val := lastName.String
		contact.LastName = &val
	}
	if email.Valid {
		val := email.String
		contact.Email = &val
	}
	if phone.Valid {
		val := phone.String
		contact.Phone = &val
	}

	return &contact, nil
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

var _ port.ContactRepository = (*ContactRepository)(nil)
