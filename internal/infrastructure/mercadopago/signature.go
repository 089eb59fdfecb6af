package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifyWebhookSignature valida el header x-signature de un webhook.
//
// Mercado Pago firma con HMAC-SHA256 sobre el manifiesto
// "id:{data.id};request-id:{x-request-id};ts:{ts};" usando el secret del
// webhook. El header viene como "ts=<unix>,v1=<hex>".
func VerifyWebhookSignature(secret, xSignature, xRequestID, dataID string) error {
	if secret == "" {
		// Sin secret configurado no se valida firma: el caso de uso igual
		// re-consulta el pago al gateway antes de aprobar nada.
		return nil
	}
	ts, v1, err := parseSignatureHeader(xSignature)
	if err != nil {
		return err
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, xRequestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("firma de webhook inválida")
	}
	return nil
}

// parseSignatureHeader extrae ts y v1 de "ts=...,v1=...".
func parseSignatureHeader(header string) (ts, v1 string, err error) {
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return "", "", fmt.Errorf("header x-signature malformado")
	}
	return ts, v1, nil
}
