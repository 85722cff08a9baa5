package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/expense-tracker/internal/models"
)

// ErrExpenseNotFound is returned when no expense with the given id is owned by
// the caller. Ownership mismatch and plain absence are deliberately the same
// error so callers cannot probe other users' ids.
var ErrExpenseNotFound = errors.New("expense not found")

// Filter narrows an owner's expense set. Zero values mean "no constraint".
type Filter struct {
	Category string
	Days     int
}

// ExpensePatch carries a partial update. A nil field is left untouched; a
// non-nil field overwrites, so "omitted" and "set to empty" stay distinct.
type ExpensePatch struct {
	Category    *string
	Amount      *float64
	Description *string
}

// ========================
// REPOSITORY STRUCT
// ========================

type ExpenseRepo struct {
	DB *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{DB: db}
}

const expenseColumns = `id, user_id, category, amount, COALESCE(description, ''), date`

// whereClause builds the shared filter predicate for List and Count. Both must
// go through here so a page and its total count always agree.
func whereClause(userID int, f Filter) (string, []interface{}) {
	where := "user_id = $1"
	args := []interface{}{userID}

	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Days > 0 {
		args = append(args, f.Days)
		where += fmt.Sprintf(" AND date >= now() - ($%d * interval '1 day')", len(args))
	}

	return where, args
}

// ========================
// CREATE EXPENSE
// ========================

func (r *ExpenseRepo) Create(ctx context.Context, userID int, category string, amount float64, description string) (models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, category, amount, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+expenseColumns,
		userID, category, amount, description,
	).Scan(
		&e.ID,
		&e.UserID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.Date,
	)
	return e, err
}

// ========================
// GET EXPENSE BY ID
// ========================

func (r *ExpenseRepo) GetByID(ctx context.Context, userID, id int) (models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(
		&e.ID,
		&e.UserID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.Date,
	)
	if err == sql.ErrNoRows {
		return models.Expense{}, ErrExpenseNotFound
	}
	return e, err
}

// ========================
// LIST EXPENSES
// ========================

// List returns one page of the owner's expenses under filter f. Order is
// date descending then id descending, so offset pagination is deterministic
// even when rows share a timestamp.
func (r *ExpenseRepo) List(ctx context.Context, userID int, f Filter, limit, offset int) ([]models.Expense, error) {
	where, args := whereClause(userID, f)
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM expenses WHERE %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d`,
		expenseColumns, where, len(args)-1, len(args),
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ========================
// COUNT EXPENSES
// ========================

// Count returns the total number of rows List would page through under the
// same filter.
func (r *ExpenseRepo) Count(ctx context.Context, userID int, f Filter) (int, error) {
	where, args := whereClause(userID, f)

	var total int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE "+where, args...,
	).Scan(&total)
	return total, err
}

// ========================
// UPDATE EXPENSE
// ========================

// Update applies patch to the owner's expense in a single conditional UPDATE,
// so the ownership check and the write cannot be split by a concurrent delete.
func (r *ExpenseRepo) Update(ctx context.Context, userID, id int, patch ExpensePatch) (models.Expense, error) {
	var sets []string
	var args []interface{}

	if patch.Category != nil {
		args = append(args, *patch.Category)
		sets = append(sets, fmt.Sprintf("category = $%d", len(args)))
	}
	if patch.Amount != nil {
		args = append(args, *patch.Amount)
		sets = append(sets, fmt.Sprintf("amount = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}

	if len(sets) == 0 {
		// Nothing to change; still enforce ownership.
		return r.GetByID(ctx, userID, id)
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(
		`UPDATE expenses SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), expenseColumns,
	)

	var e models.Expense
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.Description, &e.Date)
	if err == sql.ErrNoRows {
		return models.Expense{}, ErrExpenseNotFound
	}
	return e, err
}

// ========================
// DELETE EXPENSE
// ========================

// Delete removes the owner's expense and reports whether a row existed.
// Deleting an already-deleted id is false, not an error.
func (r *ExpenseRepo) Delete(ctx context.Context, userID, id int) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ========================
// MONTHLY REPORT
// ========================

// MonthlyReport buckets the owner's expenses by calendar month and sums the
// amounts, ordered ascending by month label. category narrows the set when
// non-empty. An owner with no expenses gets an empty slice.
func (r *ExpenseRepo) MonthlyReport(ctx context.Context, userID int, category string) ([]models.MonthlyTotal, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(amount) AS total_spent
		FROM expenses
		WHERE user_id = $1`
	args := []interface{}{userID}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += `
		GROUP BY month
		ORDER BY month`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := []models.MonthlyTotal{}
	for rows.Next() {
		var m models.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.TotalSpent); err != nil {
			return nil, err
		}
		report = append(report, m)
	}
	return report, rows.Err()
}
