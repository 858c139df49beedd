package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/atelier-api/internal/application/billing"
)

var _ billing.WebhookVerifier = (*WebhookVerifier)(nil)

// DefaultTolerance antigüedad máxima aceptada del timestamp firmado.
const DefaultTolerance = 5 * time.Minute

// WebhookVerifier valida el header Stripe-Signature (t=…,v1=…) con el secreto del endpoint.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier construye el verificador con la tolerancia por defecto.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret, tolerance: DefaultTolerance, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (v *WebhookVerifier) WithClock(now func() time.Time) *WebhookVerifier {
	v.now = now
	return v
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID             string            `json:"id"`
			Amount         int64             `json:"amount"`
			AmountReceived int64             `json:"amount_received"`
			Currency       string            `json:"currency"`
			Metadata       map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent verifica la firma y decodifica el evento.
// Cualquier fallo de firma o de timestamp devuelve billing.ErrInvalidSignature.
func (v *WebhookVerifier) ParseEvent(payload []byte, signatureHeader string) (*billing.PaymentEvent, error) {
	if v.secret == "" {
		return nil, fmt.Errorf("%w: secreto no configurado", billing.ErrInvalidSignature)
	}
	ts, sigs, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}
	if age := v.now().Sub(time.Unix(ts, 0)); age > v.tolerance || age < -v.tolerance {
		return nil, fmt.Errorf("%w: timestamp fuera de tolerancia", billing.ErrInvalidSignature)
	}

	expected := Sign(v.secret, ts, payload)
	valid := false
	for _, s := range sigs {
		if hmac.Equal([]byte(s), []byte(expected)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, billing.ErrInvalidSignature
	}

	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: payload no es JSON: %v", billing.ErrInvalidSignature, err)
	}
	obj := env.Data.Object
	amount := obj.AmountReceived
	if amount == 0 {
		amount = obj.Amount
	}
	return &billing.PaymentEvent{
		ID:              env.ID,
		Type:            env.Type,
		PaymentIntentID: obj.ID,
		AmountCents:     amount,
		Currency:        obj.Currency,
		Metadata:        obj.Metadata,
	}, nil
}

// parseSignatureHeader extrae t y todas las firmas v1 del header.
func parseSignatureHeader(header string) (int64, []string, error) {
	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: timestamp inválido", billing.ErrInvalidSignature)
			}
			ts = n
		case "v1":
			sigs = append(sigs, val)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return 0, nil, fmt.Errorf("%w: header Stripe-Signature incompleto", billing.ErrInvalidSignature)
	}
	return ts, sigs, nil
}

// Sign calcula la firma v1: HMAC-SHA256 en hex sobre "t.payload".
func Sign(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeader arma el header Stripe-Signature para un payload (tests y herramientas locales).
func SignatureHeader(secret string, ts time.Time, payload []byte) string {
	t := ts.Unix()
	return fmt.Sprintf("t=%d,v1=%s", t, Sign(secret, t, payload))
}
