package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"api_ledger/internal/api/middlew"
	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/service"
	"api_ledger/pkg/response"
)

type WalletHandler struct {
	service service.WalletServicer
}

func NewWalletHandler(service service.WalletServicer) *WalletHandler {
	return &WalletHandler{
		service: service,
	}
}

func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Fund"
	log := middlew.GetLogger(r.Context())

	auth, ok := middlew.GetAuthenticatedUser(r.Context())
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	defer r.Body.Close()
	var req models.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	wallet, err := h.service.FundWallet(r.Context(), auth.WalletID, req.Amount)
	if err != nil {
		writeLedgerError(w, r, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, wallet)
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Withdraw"
	log := middlew.GetLogger(r.Context())

	auth, ok := middlew.GetAuthenticatedUser(r.Context())
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	defer r.Body.Close()
	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	result, err := h.service.WithdrawFunds(r.Context(), auth.WalletID, req.Amount)
	if err != nil {
		writeLedgerError(w, r, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Transfer"
	log := middlew.GetLogger(r.Context())

	auth, ok := middlew.GetAuthenticatedUser(r.Context())
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	defer r.Body.Close()
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	result, err := h.service.TransferFunds(r.Context(), auth.WalletID, req.ReceiverWalletID, req.Amount)
	if err != nil {
		writeLedgerError(w, r, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Balance"
	log := middlew.GetLogger(r.Context())

	auth, ok := middlew.GetAuthenticatedUser(r.Context())
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), auth.WalletID)
	if err != nil {
		writeLedgerError(w, r, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, balance)
}

func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	const op = "handler.TransactionHistory"
	log := middlew.GetLogger(r.Context())

	auth, ok := middlew.GetAuthenticatedUser(r.Context())
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	// Unparseable values fall through as zero; the service clamps them to
	// page 1 / default limit.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.service.GetTransactionHistory(r.Context(), auth.WalletID, page, limit)
	if err != nil {
		writeLedgerError(w, r, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, history)
}

// writeLedgerError maps ledger engine failures to stable JSON bodies. The
// sender/receiver variants are checked before the generic ErrNotFound they
// wrap.
func writeLedgerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := middlew.GetLogger(r.Context())

	var ve *custom_err.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Warn("validation failed", slog.String("op", op), slog.String("reason", ve.Message))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", ve.Message)
	case errors.Is(err, custom_err.ErrInsufficientFunds):
		log.Warn("insufficient funds", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "insufficient_funds", "Insufficient funds in the wallet")
	case errors.Is(err, custom_err.ErrSenderNotFound):
		log.Info("sender wallet not found", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Sender wallet not found")
	case errors.Is(err, custom_err.ErrReceiverNotFound):
		log.Info("receiver wallet not found", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Receiver wallet not found")
	case errors.Is(err, custom_err.ErrNotFound):
		log.Info("wallet not found", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Wallet not found")
	default:
		log.Error("operation failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
