package mailer

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// MailerService mengirim email transaksional (OTP & welcome) via Resend.
type MailerService struct {
	client *resend.Client
}

func NewMailerService(apiKey string) (*MailerService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY kosong")
	}
	return &MailerService{client: resend.NewClient(apiKey)}, nil
}

func (m *MailerService) SendOTP(email, otp string) error {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #000; margin-bottom: 20px;">Verify Your Email</h2>
			<p>Your verification code for ExamGPT is:</p>
			<div style="background: #f5f5f5; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px;">
				<h1 style="color: #000; font-size: 32px; margin: 0; letter-spacing: 4px;">%s</h1>
			</div>
			<p>This code will expire in 30 minutes.</p>
			<p>If you didn't request this code, please ignore this email.</p>
			<hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
			<p style="color: #666; font-size: 12px;">
				This email was sent by ExamGPT. If you have any questions, please contact our support team.
			</p>
		</div>`, otp)

	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    "ExamGPT <noreply@examgpt.site>",
		To:      []string{email},
		Subject: "Your ExamGPT Verification Code",
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("kirim OTP ke %s: %w", email, err)
	}
	log.Printf("📤 Email OTP terkirim ke %s", email)
	return nil
}

func (m *MailerService) SendWelcome(email, name string) error {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #000; margin-bottom: 20px;">Welcome to ExamGPT, %s! 🎉</h2>
			<p>Congratulations on taking the first step towards cracking NEET! We're excited to be part of your journey.</p>
			<div style="background: linear-gradient(135deg, #000 0%%, #333 100%%); color: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
				<h3 style="margin: 0 0 10px 0;">What's Next?</h3>
				<ul style="margin: 0; padding-left: 20px;">
					<li>Complete your profile setup</li>
					<li>Take your first diagnostic test</li>
					<li>Start practicing with AI-powered MCQs</li>
					<li>Chat with your AI mentor for guidance</li>
				</ul>
			</div>
			<p><strong>Remember:</strong> Every NEET topper was once where you are today. With consistent effort and smart preparation, you can achieve your dreams!</p>
			<p>Best of luck with your NEET preparation!</p>
			<p>Team ExamGPT</p>
		</div>`, name)

	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    "ExamGPT <welcome@examgpt.site>",
		To:      []string{email},
		Subject: "Welcome to ExamGPT - Your NEET Journey Begins!",
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("kirim welcome email ke %s: %w", email, err)
	}
	log.Printf("📤 Welcome email terkirim ke %s", email)
	return nil
}
