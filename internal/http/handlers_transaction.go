package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type createTransactionRequest struct {
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	UserID      int64       `json:"userId"`
	AccountID   int64       `json:"accountId"`
	CategoryID  *int64      `json:"categoryId"`
	Date        string      `json:"transactionDate"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	cents, err := req.Amount.Cents()
	if err != nil {
		writeError(w, r, err)
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	txn, err := s.transactions.Create(r.Context(), services.CreateTransactionInput{
		UserID:      req.UserID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		AmountCents: cents,
		Description: req.Description,
		Type:        core.TransactionType(req.Type),
		Date:        date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(txn))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txnID, err := pathID(r, "txnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	txn, err := s.transactions.Get(r.Context(), txnID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(txn))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txnID, err := pathID(r, "txnId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.transactions.Delete(r.Context(), txnID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.transactions.ListByUser(r.Context(), userID, s.pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionPage(page))
}

func (s *Server) handleListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "accountId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.transactions.ListByAccount(r.Context(), userID, accountID, s.pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionPage(page))
}

func (s *Server) handleListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.transactions.ListByCategory(r.Context(), userID, categoryID, s.pageRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionPage(page))
}

func (s *Server) handleAccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "accountId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	balance, err := s.transactions.AccountBalance(r.Context(), accountID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		AccountID: accountID,
		Balance:   balance.String(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.transactions.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:  summary.TotalIncome.String(),
		TotalExpense: summary.TotalExpense.String(),
	})
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	trend, err := s.transactions.MonthlyExpenseTrend(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]monthlyTotalResponse, len(trend))
	for i, m := range trend {
		resp[i] = monthlyTotalResponse{Month: m.Month, Total: m.Total.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExpenseByCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	totals, err := s.transactions.ExpenseByCategory(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]categoryTotalResponse, len(totals))
	for i, c := range totals {
		resp[i] = categoryTotalResponse{CategoryID: c.CategoryID, Total: c.Total.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}
