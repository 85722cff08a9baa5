package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ExpenseHandler struct {
	Repo *repo.ExpenseRepo
}

//
// ==========================
// Create Expense
// ==========================
//

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	var input struct {
		Category    string  `json:"category" validate:"required,max=255"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description" validate:"max=1000"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON", "Request body must be valid JSON")
		return
	}

	if input.Amount <= 0 {
		JSONError(w, http.StatusBadRequest, "Invalid amount", "Expense amount must be greater than zero")
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, http.StatusBadRequest, err.Error(), "Expense validation failed")
		return
	}

	expense, err := h.Repo.Create(r.Context(), user.ID, input.Category, input.Amount, input.Description)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to create expense")
		return
	}

	JSONData(w, http.StatusCreated, "Expense added successfully", expense)
}

//
// ==========================
// List Expenses (paginated, filterable)
// ==========================
//

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	// Pagination is 1-based: skip = (page-1)*limit.
	page := 1
	limit := 10

	if p := r.URL.Query().Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val < 1 {
			JSONError(w, http.StatusBadRequest, "Invalid pagination values", "Page and limit values must be greater than zero")
			return
		}
		page = val
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val < 1 {
			JSONError(w, http.StatusBadRequest, "Invalid pagination values", "Page and limit values must be greater than zero")
			return
		}
		limit = val
	}

	filter := repo.Filter{Category: r.URL.Query().Get("category")}
	if d := r.URL.Query().Get("days"); d != "" {
		val, err := strconv.Atoi(d)
		if err != nil || val < 1 {
			JSONError(w, http.StatusBadRequest, "Invalid days value", "Days must be a positive number")
			return
		}
		filter.Days = val
	}

	skip := (page - 1) * limit

	expenses, err := h.Repo.List(r.Context(), user.ID, filter, limit, skip)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to fetch expenses")
		return
	}
	total, err := h.Repo.Count(r.Context(), user.ID, filter)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to fetch expenses")
		return
	}

	if expenses == nil {
		expenses = []models.Expense{}
	}

	JSONData(w, http.StatusOK, "Expenses retrieved successfully", map[string]interface{}{
		"expenses":   expenses,
		"totalcount": total,
		"page":       page,
	})
}

//
// ==========================
// Get Expense By ID
// ==========================
//

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid expense ID", "Expense ID must be a number")
		return
	}

	expense, err := h.Repo.GetByID(r.Context(), user.ID, id)
	if err == repo.ErrExpenseNotFound {
		JSONError(w, http.StatusNotFound, "Invalid expense ID", fmt.Sprintf("No expense found for ID %d.", id))
		return
	}
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to fetch expense")
		return
	}

	JSONData(w, http.StatusOK, "Expense retrieved successfully", expense)
}

//
// ==========================
// Update Expense (partial)
// ==========================
//

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid expense ID", "Expense ID must be a number")
		return
	}

	// Pointer fields make "omitted" distinguishable from "set to zero value".
	var input struct {
		Category    *string  `json:"category"`
		Amount      *float64 `json:"amount"`
		Description *string  `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON", "Request body must be valid JSON")
		return
	}

	if input.Amount != nil && *input.Amount <= 0 {
		JSONError(w, http.StatusBadRequest, "Invalid amount", "Expense amount must be greater than zero")
		return
	}

	expense, err := h.Repo.Update(r.Context(), user.ID, id, repo.ExpensePatch{
		Category:    input.Category,
		Amount:      input.Amount,
		Description: input.Description,
	})
	if err == repo.ErrExpenseNotFound {
		JSONError(w, http.StatusNotFound, "Invalid expense ID", fmt.Sprintf("Expense with ID %d not found.", id))
		return
	}
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to update expense")
		return
	}

	JSONData(w, http.StatusOK, "Expense updated successfully", expense)
}

//
// ==========================
// Delete Expense
// ==========================
//

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid expense ID", "Expense ID must be a number")
		return
	}

	deleted, err := h.Repo.Delete(r.Context(), user.ID, id)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to delete expense")
		return
	}
	if !deleted {
		JSONError(w, http.StatusNotFound, "Invalid expense ID", fmt.Sprintf("Expense with ID %d not found", id))
		return
	}

	JSONData(w, http.StatusOK, fmt.Sprintf("Expense with ID %d deleted successfully", id),
		"Expense deleted successfully")
}

//
// ==========================
// Monthly Report
// ==========================
//

func (h *ExpenseHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Invalid authentication credentials", "Authentication required.")
		return
	}

	category := r.URL.Query().Get("category")

	report, err := h.Repo.MonthlyReport(r.Context(), user.ID, category)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Failed to generate report")
		return
	}

	message := "Monthly expense report generated successfully."
	if len(report) == 0 {
		message = "No expenses found for the given category."
	}

	JSONData(w, http.StatusOK, message, report)
}
