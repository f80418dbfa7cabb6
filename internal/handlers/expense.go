package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Shared payload for create and update; a missing date means "now".
type expenseRequest struct {
	Title    string     `json:"title" binding:"required"`
	Amount   float64    `json:"amount" binding:"required"`
	Category string     `json:"category" binding:"required"`
	Date     *time.Time `json:"date"`
}

const (
	errExpenseNotFound = "Expense not found"
	errUpdateForbidden = "Not authorized to update this expense"
	errDeleteForbidden = "Not authorized to delete this expense"
	detailDeleted      = "Expense deleted successfully"
)

func (r expenseRequest) toInput() service.ExpenseInput {
	in := service.ExpenseInput{
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

func expenseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return 0, false
	}
	return id, true
}

// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense payload"
// @Success      200   {object}  models.Expense
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /expense/ [post]
// @Security     BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	var input expenseRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	// Ownership comes from the resolved caller, unconditionally.
	created, err := h.services.Expenses.Create(c.Request.Context(), u.ID, input.toInput())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create expense", "expense_create_failed", err, "user_id", u.ID)
		return
	}
	c.JSON(http.StatusOK, created)
}

// @Summary      Update expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Expense id"
// @Param        body  body      expenseRequest  true  "Expense payload"
// @Success      200   {object}  models.Expense
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /expenses/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateExpense(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}
	id, ok := expenseIDParam(c)
	if !ok {
		return
	}

	var input expenseRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	updated, err := h.services.Expenses.Update(c.Request.Context(), u.ID, id, input.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errExpenseNotFound})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": errUpdateForbidden})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to update expense", "expense_update_failed", err, "expense_id", id)
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete expense
// @Tags         expenses
// @Produce      json
// @Param        id  path  int  true  "Expense id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteExpense(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}
	id, ok := expenseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Expenses.Delete(c.Request.Context(), u.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errExpenseNotFound})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": errDeleteForbidden})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete expense", "expense_delete_failed", err, "expense_id", id)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": detailDeleted})
}

// @Summary      List own expenses
// @Tags         expenses
// @Produce      json
// @Success      200  {array}   models.Expense
// @Failure      401  {object}  map[string]string
// @Router       /expense [get]
// @Security     BearerAuth
func (h *Handler) listExpenses(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	expenses, err := h.services.Expenses.ListByOwner(c.Request.Context(), u.ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list expenses", "expense_list_failed", err, "user_id", u.ID)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// @Summary      Weekly spending chart
// @Description  Line chart of all expenses in the trailing 7 days, rendered as PNG. Not user-scoped.
// @Tags         expenses
// @Produce      png
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /expenses/weekly-graph [get]
func (h *Handler) weeklyGraph(c *gin.Context) {
	img, err := h.services.Chart.WeeklyPNG(c.Request.Context(), time.Now())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to render weekly chart", "weekly_graph_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}
