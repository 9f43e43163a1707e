package handlers

import (
	"net/http"

	"api_ledger/internal/api/middlew"
	"api_ledger/pkg/response"
)

func Health(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())
	response.WriteJSONSuccess(w, log, http.StatusOK, map[string]string{"status": "ok"})
}
