package service

import (
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/payments/model"
)

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans menginisialisasi Snap (checkout) dan Core API (status check).
func InitMidtrans(serverKey string) {
	env := midtrans.Sandbox
	if configs.GetEnv("MIDTRANS_ENV", "sandbox") == "production" {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)
}

// CheckTransactionStatus menanyakan status order langsung ke Midtrans,
// dipakai endpoint verify saat webhook belum/gagal sampai.
func CheckTransactionStatus(orderID string) (string, error) {
	resp, err := CoreClient.CheckTransaction(orderID)
	if err != nil {
		return "", fmt.Errorf("check transaction %s: %w", orderID, err)
	}
	if resp == nil {
		return "", fmt.Errorf("check transaction %s: empty response", orderID)
	}
	return resp.TransactionStatus, nil
}

// GenerateSnapToken membuat token Snap untuk satu payment premium.
func GenerateSnapToken(p model.Payment, name, email string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: int64(p.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "premium-lifetime",
				Name:  "ExamGPT Premium Access",
				Price: int64(p.Amount),
				Qty:   1,
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
