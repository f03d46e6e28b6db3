package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

const signatureHeader = "Webhook-Signature"

// maxWebhookBody bounds gateway payloads; settlement events are tiny.
const maxWebhookBody = 64 << 10

// SettlementApplier is the minimal interface needed by the webhook handler.
type SettlementApplier interface {
	ApplyEvent(ctx context.Context, ev app.SettlementEvent) error
}

// HandleSettlementWebhook verifies the gateway's HMAC signature over the
// raw body and applies the settlement event. The gateway retries on
// non-2xx, so unknown payment refs return 404 to stop retries against
// events this service never issued a payment for.
func HandleSettlementWebhook(svc SettlementApplier, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "unreadable body")
			return
		}
		if !verifySignature(secret, body, r.Header.Get(signatureHeader)) {
			writeError(w, http.StatusBadRequest, codeInvalidSignature, "webhook signature verification failed")
			return
		}

		var ev webhookEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid event payload")
			return
		}

		err = svc.ApplyEvent(r.Context(), app.SettlementEvent{
			Type:        ev.Type,
			ProviderRef: ev.Data.Object.ID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrPaymentNotFound) {
				writeError(w, http.StatusNotFound, codePaymentNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "webhook handler failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}

// verifySignature expects hex(HMAC-SHA256(secret, body)) in the signature
// header and compares in constant time.
func verifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}
