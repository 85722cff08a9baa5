package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var expenseCols = []string{"id", "user_id", "category", "amount", "description", "date"}

func TestExpenseRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO expenses \(user_id, category, amount, description\)`).
		WithArgs(1, "food", 20.0, "lunch").
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(7, 1, "food", 20.0, "lunch", now))

	repo := NewExpenseRepo(db)
	e, err := repo.Create(context.Background(), 1, "food", 20.0, "lunch")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 7 || e.UserID != 1 || e.Category != "food" || e.Amount != 20.0 {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_GetByID_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Row 7 belongs to someone else; the owner-scoped query finds nothing.
	mock.ExpectQuery(`SELECT id, user_id, category, amount, COALESCE\(description, ''\), date`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows(expenseCols))

	repo := NewExpenseRepo(db)
	_, err = repo.GetByID(context.Background(), 2, 7)
	if err != ErrExpenseNotFound {
		t.Errorf("GetByID: got %v, want ErrExpenseNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_List_NoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM expenses WHERE user_id = \$1 ORDER BY date DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(1, 10, 0).
		WillReturnRows(sqlmock.NewRows(expenseCols).
			AddRow(2, 1, "travel", 80.0, "", now).
			AddRow(1, 1, "food", 20.0, "lunch", now))

	repo := NewExpenseRepo(db)
	expenses, err := repo.List(context.Background(), 1, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(expenses) != 2 || expenses[0].ID != 2 || expenses[1].Category != "food" {
		t.Errorf("unexpected list: %+v", expenses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_List_CategoryAndDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE user_id = \$1 AND category = \$2 AND date >= now\(\) - \(\$3 \* interval '1 day'\) ORDER BY date DESC, id DESC LIMIT \$4 OFFSET \$5`).
		WithArgs(1, "food", 30, 5, 10).
		WillReturnRows(sqlmock.NewRows(expenseCols))

	repo := NewExpenseRepo(db)
	expenses, err := repo.List(context.Background(), 1, Filter{Category: "food", Days: 30}, 5, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("unexpected list: %+v", expenses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Count_SameFilterShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Count must use the same predicate as List for the same filter.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expenses WHERE user_id = \$1 AND category = \$2 AND date >= now\(\) - \(\$3 \* interval '1 day'\)`).
		WithArgs(1, "food", 30).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	repo := NewExpenseRepo(db)
	total, err := repo.Count(context.Background(), 1, Filter{Category: "food", Days: 30})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 12 {
		t.Errorf("Count: got %d, want 12", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Update_Partial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	// Only amount is patched; category and description stay out of the SET list.
	mock.ExpectQuery(`UPDATE expenses SET amount = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING`).
		WithArgs(25.5, 7, 1).
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(7, 1, "food", 25.5, "lunch", now))

	amount := 25.5
	repo := NewExpenseRepo(db)
	e, err := repo.Update(context.Background(), 1, 7, ExpensePatch{Amount: &amount})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Amount != 25.5 || e.Category != "food" || e.Description != "lunch" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE expenses SET category = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING`).
		WithArgs("travel", 99, 1).
		WillReturnRows(sqlmock.NewRows(expenseCols))

	category := "travel"
	repo := NewExpenseRepo(db)
	_, err = repo.Update(context.Background(), 1, 99, ExpensePatch{Category: &category})
	if err != ErrExpenseNotFound {
		t.Errorf("Update: got %v, want ErrExpenseNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Delete_Twice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewExpenseRepo(db)

	ok, err := repo.Delete(context.Background(), 1, 7)
	if err != nil || !ok {
		t.Fatalf("first Delete: ok=%v err=%v, want true, nil", ok, err)
	}
	ok, err = repo.Delete(context.Background(), 1, 7)
	if err != nil || ok {
		t.Fatalf("second Delete: ok=%v err=%v, want false, nil", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_MonthlyReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT to_char\(date, 'YYYY-MM'\) AS month, SUM\(amount\) AS total_spent`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"month", "total_spent"}).
			AddRow("2026-07", 45.0).
			AddRow("2026-08", 100.0))

	repo := NewExpenseRepo(db)
	report, err := repo.MonthlyReport(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if len(report) != 2 || report[0].Month != "2026-07" || report[1].TotalSpent != 100.0 {
		t.Errorf("unexpected report: %+v", report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_MonthlyReport_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SUM\(amount\)`).
		WithArgs(3, "misc").
		WillReturnRows(sqlmock.NewRows([]string{"month", "total_spent"}))

	repo := NewExpenseRepo(db)
	report, err := repo.MonthlyReport(context.Background(), 3, "misc")
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if report == nil || len(report) != 0 {
		t.Errorf("empty report should be a non-nil empty slice, got %#v", report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
