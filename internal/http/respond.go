// JSON response shaping and the error-to-status mapping.

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

type authResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type categoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"userId"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	UserID      int64     `json:"userId"`
	AccountID   int64     `json:"accountId"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Date        time.Time `json:"transactionDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

type balanceResponse struct {
	AccountID int64  `json:"accountId"`
	Balance   string `json:"balance"`
}

type summaryResponse struct {
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
}

type monthlyTotalResponse struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type categoryTotalResponse struct {
	CategoryID *int64 `json:"categoryId"`
	Total      string `json:"total"`
}

func toUserResponse(u core.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, UserID: a.UserID, CreatedAt: a.CreatedAt}
}

func toCategoryResponse(c core.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, UserID: c.UserID}
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Amount:      t.Amount.String(),
		Description: t.Description,
		Type:        string(t.Type),
		UserID:      t.UserID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionPage(p core.Page[core.Transaction]) core.Page[transactionResponse] {
	content := make([]transactionResponse, len(p.Content))
	for i, t := range p.Content {
		content[i] = toTransactionResponse(t)
	}
	return core.Page[transactionResponse]{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response failed", log.FieldError, err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors to HTTP statuses: absence (and ownership
// mismatch) to 404, malformed input to 400, everything else to 500 with a
// generic body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path, log.FieldError, err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
