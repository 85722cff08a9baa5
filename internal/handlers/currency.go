package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/crucial707/expense-tracker/internal/exchange"
)

// CurrencyHandler is a stateless passthrough to the exchange-rate provider.
type CurrencyHandler struct {
	Rates exchange.RateProvider
}

func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || amount <= 0 {
		JSONError(w, http.StatusBadRequest, "Invalid amount", "Amount must be a positive number")
		return
	}

	from := q.Get("from_currency")
	to := q.Get("to_currency")
	if from == "" || to == "" {
		JSONError(w, http.StatusBadRequest, "Invalid currency codes", "Both from_currency and to_currency are required")
		return
	}

	rate, err := h.Rates.Rate(r.Context(), from, to)
	if err == exchange.ErrInvalidPair {
		JSONError(w, http.StatusBadRequest, "Invalid currency codes", "Check the currency codes and try again.")
		return
	}
	if err != nil {
		slog.Error("currency: rate lookup", "error", err)
		JSONError(w, http.StatusBadGateway, "exchange rate provider unavailable", "Could not reach the exchange-rate provider. Try again later.")
		return
	}

	converted := math.Round(amount*rate*100) / 100

	JSONData(w, http.StatusOK, "Currency converted successfully", map[string]interface{}{
		"amount":           amount,
		"from":             from,
		"to":               to,
		"exchange_rate":    rate,
		"converted_amount": converted,
	})
}
