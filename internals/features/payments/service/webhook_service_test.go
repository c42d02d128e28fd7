package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentModel "examgpt_backend/internals/features/payments/model"
	userModel "examgpt_backend/internals/features/users/auth/model"
)

type fakePaymentStore struct {
	payments map[string]*paymentModel.Payment
	users    map[uuid.UUID]*userModel.UserModel
	saves    int
	upgrades []uuid.UUID
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		payments: map[string]*paymentModel.Payment{},
		users:    map[uuid.UUID]*userModel.UserModel{},
	}
}

func (f *fakePaymentStore) FindByOrderID(orderID string) (*paymentModel.Payment, error) {
	p, ok := f.payments[orderID]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return p, nil
}

func (f *fakePaymentStore) Save(p *paymentModel.Payment) error {
	f.saves++
	f.payments[p.OrderID] = p
	return nil
}

func (f *fakePaymentStore) UpgradeToPremium(userID uuid.UUID) error {
	f.upgrades = append(f.upgrades, userID)
	if u, ok := f.users[userID]; ok {
		u.Subscription = "premium"
	}
	return nil
}

func (f *fakePaymentStore) FindUser(userID uuid.UUID) (*userModel.UserModel, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return u, nil
}

type fakeWelcomeSender struct {
	sent []string
}

func (f *fakeWelcomeSender) SendWelcome(email, _ string) error {
	f.sent = append(f.sent, email)
	return nil
}

func seedPayment(store *fakePaymentStore, status string) *paymentModel.Payment {
	userID := uuid.New()
	store.users[userID] = &userModel.UserModel{
		ID:           userID,
		Email:        "siswa@examgpt.site",
		Name:         "Siswa",
		Subscription: "free",
	}
	p := &paymentModel.Payment{
		ID:      uuid.New(),
		OrderID: "EXAMGPT_1",
		UserID:  userID,
		Email:   "siswa@examgpt.site",
		Amount:  1000,
		Status:  status,
	}
	store.payments[p.OrderID] = p
	return p
}

func notification(orderID, status string) map[string]interface{} {
	return map[string]interface{}{
		"order_id":           orderID,
		"transaction_status": status,
		"gross_amount":       "1000.00",
	}
}

func TestSettlementUpgradesUserAndSendsWelcome(t *testing.T) {
	store := newFakePaymentStore()
	mailer := &fakeWelcomeSender{}
	p := seedPayment(store, "pending")
	svc := &WebhookService{Store: store, Mailer: mailer}

	err := svc.HandleNotification(notification(p.OrderID, "settlement"))
	require.NoError(t, err)

	assert.Equal(t, "paid", p.Status)
	require.NotNil(t, p.PaidAt)
	assert.NotEmpty(t, p.PaymentDetails, "payload mentah harus tersimpan untuk audit")
	assert.Equal(t, []uuid.UUID{p.UserID}, store.upgrades)
	assert.Equal(t, "premium", store.users[p.UserID].Subscription)
	assert.Equal(t, []string{"siswa@examgpt.site"}, mailer.sent)
}

func TestRepeatedNotificationOnPaidOrderIsNoOp(t *testing.T) {
	store := newFakePaymentStore()
	mailer := &fakeWelcomeSender{}
	p := seedPayment(store, "pending")
	svc := &WebhookService{Store: store, Mailer: mailer}

	require.NoError(t, svc.HandleNotification(notification(p.OrderID, "settlement")))
	firstPaidAt := *p.PaidAt

	// Midtrans bisa mengirim notifikasi yang sama berulang kali.
	store.saves = 0
	store.upgrades = nil
	mailer.sent = nil
	require.NoError(t, svc.HandleNotification(notification(p.OrderID, "settlement")))

	assert.Equal(t, "paid", p.Status)
	assert.Equal(t, firstPaidAt, *p.PaidAt)
	assert.Zero(t, store.saves, "order paid tidak boleh disentuh lagi")
	assert.Empty(t, store.upgrades)
	assert.Empty(t, mailer.sent, "welcome email tidak boleh terkirim dua kali")
}

func TestExpireAndCancelStatuses(t *testing.T) {
	cases := []struct {
		notif string
		want  string
	}{
		{"expire", "expired"},
		{"cancel", "canceled"},
		{"deny", "canceled"},
	}
	for _, tc := range cases {
		store := newFakePaymentStore()
		p := seedPayment(store, "pending")
		svc := &WebhookService{Store: store}

		require.NoError(t, svc.HandleNotification(notification(p.OrderID, tc.notif)))
		assert.Equal(t, tc.want, p.Status)
		assert.Nil(t, p.PaidAt)
		assert.Empty(t, store.upgrades)
	}
}

func TestUnknownOrderRejected(t *testing.T) {
	svc := &WebhookService{Store: newFakePaymentStore()}
	err := svc.HandleNotification(notification("EXAMGPT_404", "settlement"))
	assert.Error(t, err)
}

func TestIncompletePayloadRejected(t *testing.T) {
	svc := &WebhookService{Store: newFakePaymentStore()}
	err := svc.HandleNotification(map[string]interface{}{"order_id": "EXAMGPT_1"})
	assert.Error(t, err)
}

func TestApplyStatusWithoutMailer(t *testing.T) {
	store := newFakePaymentStore()
	p := seedPayment(store, "pending")
	svc := &WebhookService{Store: store}

	require.NoError(t, svc.ApplyStatus(p, "capture"))
	assert.Equal(t, "paid", p.Status)
	assert.Equal(t, []uuid.UUID{p.UserID}, store.upgrades)
}
