package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/users/auth/model"
)

type fakeOTPStore struct {
	rows []*model.OTPVerification
}

func (f *fakeOTPStore) Replace(otp *model.OTPVerification, now time.Time) error {
	for _, row := range f.rows {
		if row.Email == otp.Email && !row.Verified {
			row.ExpiresAt = now
		}
	}
	otp.CreatedAt = now
	f.rows = append(f.rows, otp)
	return nil
}

func (f *fakeOTPStore) LatestUnverified(email string) (*model.OTPVerification, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].Email == email && !f.rows[i].Verified {
			return f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakeOTPStore) MarkVerified(otp *model.OTPVerification) error {
	otp.Verified = true
	return nil
}

func (f *fakeOTPStore) CountVerifiedSince(email string, since time.Time) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.Email == email && row.Verified && row.ExpiresAt.After(since) {
			count++
		}
	}
	return count, nil
}

func newOTPTestService() (*OTPService, *fakeOTPStore, *time.Time) {
	store := &fakeOTPStore{}
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	svc := &OTPService{Store: store, Now: func() time.Time { return now }}
	return svc, store, &now
}

const testEmail = "siswa@examgpt.site"

func TestVerifyOTPHappyPath(t *testing.T) {
	svc, store, _ := newOTPTestService()

	otp, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)
	require.Len(t, otp.OTP, 6)

	require.NoError(t, svc.VerifyOTP(testEmail, otp.OTP))
	assert.True(t, store.rows[0].Verified)

	verified, err := svc.HasVerifiedOTP(testEmail)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, _, now := newOTPTestService()

	otp, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)

	*now = now.Add(configs.OTPExpiry + time.Minute)
	assert.ErrorIs(t, svc.VerifyOTP(testEmail, otp.OTP), ErrOTPExpired)
}

func TestVerifyOTPReusedCodeRejected(t *testing.T) {
	svc, _, _ := newOTPTestService()

	otp, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(testEmail, otp.OTP))

	// Kode yang sudah dipakai tidak boleh bisa dipakai lagi.
	assert.ErrorIs(t, svc.VerifyOTP(testEmail, otp.OTP), ErrOTPInvalid)
}

func TestVerifyOTPMismatch(t *testing.T) {
	svc, store, _ := newOTPTestService()

	otp, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)

	wrong := "000000"
	if otp.OTP == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, svc.VerifyOTP(testEmail, wrong), ErrOTPInvalid)
	assert.False(t, store.rows[0].Verified, "kode salah tidak boleh menandai verified")
}

func TestVerifyOTPWithoutRequestRejected(t *testing.T) {
	svc, _, _ := newOTPTestService()
	assert.ErrorIs(t, svc.VerifyOTP(testEmail, "123456"), ErrOTPInvalid)
}

func TestCreateOTPInvalidatesPreviousCode(t *testing.T) {
	svc, store, now := newOTPTestService()

	first, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)

	*now = now.Add(time.Minute)
	second, err := svc.CreateOTP(testEmail)
	require.NoError(t, err)

	// Baris lama hangus saat kode baru diminta.
	assert.True(t, store.rows[0].Expired(now.Add(time.Second)))

	if first.OTP != second.OTP {
		assert.ErrorIs(t, svc.VerifyOTP(testEmail, first.OTP), ErrOTPInvalid)
	}
	assert.NoError(t, svc.VerifyOTP(testEmail, second.OTP))
}
