package response

import "github.com/entrada-events/checkin-api/internal/domain"

type VerifyNfcResponse struct {
	Status      string         `json:"status"`
	Message     string         `json:"message"`
	CardDetails domain.NfcCard `json:"card_details"`
}
