package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"examgpt_backend/internals/features/users/auth/model"
)

// StartOTPCleanupScheduler menghapus OTP kedaluwarsa secara berkala
// supaya tabel otp_verifications tidak membengkak.
func StartOTPCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			log.Println("[CLEANUP] Menjalankan pembersihan otp_verifications...")

			res := db.Where("expires_at < ?", time.Now().Add(-1*time.Hour)).
				Delete(&model.OTPVerification{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus OTP kadaluarsa: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d OTP kadaluarsa dihapus", res.RowsAffected)
			} else {
				log.Println("[CLEANUP] Tidak ada OTP yang memenuhi syarat dihapus")
			}

			// Jalankan tiap 1 jam
			time.Sleep(1 * time.Hour)
		}
	}()
}
