package handler

import (
	budgetsdomain "finledger-go/internal/domain/budgets"
	identitydomain "finledger-go/internal/domain/identity"
	ledgerdomain "finledger-go/internal/domain/ledger"
	"finledger-go/internal/domain/stream"
	"finledger-go/pkg/logger"
	"net/http"
)

type Handlers struct {
	Identity *identitydomain.Service
	Ledger   *ledgerdomain.Service
	Budgets  *budgetsdomain.Service
	Hub      *stream.Hub
	log      logger.Logger
}

func New(identity *identitydomain.Service, ledger *ledgerdomain.Service, budgets *budgetsdomain.Service, hub *stream.Hub, log logger.Logger) *Handlers {
	return &Handlers{
		Identity: identity,
		Ledger:   ledger,
		Budgets:  budgets,
		Hub:      hub,
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
