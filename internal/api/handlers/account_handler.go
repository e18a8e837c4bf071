package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/accounts-be/internal/models"
	"github.com/isdelr/accounts-be/internal/services"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds the account payload read from a request.
const maxBodyBytes = 1 << 20

// AccountHandler handles HTTP requests related to accounts.
type AccountHandler struct {
	service services.AccountServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// GetAll handles the request to list all accounts.
func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.GetAllAccounts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve accounts")
		RespondError(w, http.StatusInternalServerError, "Failed to retrieve accounts")
		return
	}

	log.Debug().Int("count", len(accounts)).Msg("Listed accounts")
	respondJSON(w, http.StatusOK, accounts)
}

// Get handles the request to get a single account by its ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	account, ok := h.find(w, r, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Create handles the request to create a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !hasJSONContentType(r) {
		RespondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var account models.Account
	if err := account.Deserialize(http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	newAccount, err := h.service.CreateAccount(r.Context(), account)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create account")
		RespondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	log.Info().Int64("account_id", newAccount.ID).Msg("Account created")
	w.Header().Set("Location", accountURL(r, newAccount.ID))
	respondJSON(w, http.StatusCreated, newAccount)
}

// Update handles the request to update an existing account.
// The account must exist before the body is looked at.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	account, ok := h.find(w, r, id)
	if !ok {
		return
	}

	if err := account.Deserialize(http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	updatedAccount, err := h.service.UpdateAccount(r.Context(), account)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			respondAccountNotFound(w, id)
			return
		}
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to update account")
		RespondError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	log.Info().Int64("account_id", id).Msg("Account updated")
	respondJSON(w, http.StatusOK, updatedAccount)
}

// Delete handles the request to delete an account. A missing account is not an error.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to delete account")
		RespondError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	log.Info().Int64("account_id", id).Msg("Account deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) find(w http.ResponseWriter, r *http.Request, id int64) (models.Account, bool) {
	account, err := h.service.GetAccountByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			respondAccountNotFound(w, id)
			return models.Account{}, false
		}
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to get account by ID")
		RespondError(w, http.StatusInternalServerError, "Failed to retrieve account")
		return models.Account{}, false
	}
	return account, true
}

func (h *AccountHandler) respondDecodeError(w http.ResponseWriter, err error) {
	var verr *models.DataValidationError
	if errors.As(err, &verr) {
		log.Warn().Err(err).Msg("Rejected account payload")
		respondValidationError(w, verr)
		return
	}
	RespondError(w, http.StatusBadRequest, err.Error())
}

// accountID parses the {id} URL parameter. Ids that are not integers cannot exist, so they are 404.
func accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%s] could not be found.", raw))
		return 0, false
	}
	return id, true
}

func respondAccountNotFound(w http.ResponseWriter, id int64) {
	RespondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%d] could not be found.", id))
}

func hasJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(mediaType, "application/json")
}

// accountURL builds the absolute read URL for an account.
func accountURL(r *http.Request, id int64) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/accounts/%d", scheme, r.Host, id)
}
