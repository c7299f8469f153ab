package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contactCooldown is the per-caller window between accepted submissions.
const contactCooldown = 60 * time.Second

// anonymousCaller is the rate-limit key used when no forwarded-for header is
// present.
const anonymousCaller = "anonymous"

// RateLimiter tracks the last accepted submission per caller. The map is
// never pruned; the intended deployment is short-lived or low-traffic, and
// the limiter is injected so a pruning or distributed variant can replace it
// without touching the handler.
type RateLimiter struct {
	mu       sync.Mutex
	lastSent map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		lastSent: make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Allow reports whether callerID may submit now. An allowed call consumes
// the slot immediately, so a slow or failing delivery downstream still
// bounds throughput; a rejected call leaves the previous timestamp intact.
func (rl *RateLimiter) Allow(callerID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if last, ok := rl.lastSent[callerID]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.lastSent[callerID] = now
	return true
}

// callerID derives the rate-limit key from the first forwarded-for entry,
// matching how the site runs behind a proxy in production.
func callerID(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded == "" {
		return anonymousCaller
	}
	if comma := strings.Index(forwarded, ","); comma > 0 {
		forwarded = forwarded[:comma]
	}
	return strings.TrimSpace(forwarded)
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// MailSender delivers a contact message through an outbound transport.
type MailSender interface {
	Send(name, email, message string) error
}

// SMTPSender sends through a plain-auth SMTP relay configured from env.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(name, email, message string) error {
	if s.cfg.SMTPUser == "" || s.cfg.SMTPPass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + s.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.SMTPUser + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	return smtp.SendMail(s.cfg.SMTPHost+":"+s.cfg.SMTPPort, auth, s.cfg.SMTPUser, []string{s.cfg.ToEmail}, msg)
}

// recordContactMessage keeps a copy of accepted submissions for the admin
// stats page. Failures here never affect the response.
func recordContactMessage(db *sql.DB, name, email string) {
	if db == nil {
		return
	}
	_, err := db.Exec(`
		INSERT INTO messages (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), name, email, time.Now())
	if err != nil {
		log.Printf("Error recording contact message: %v", err)
	}
}

// contactHandler is the rate-limited mail relay. The cooldown check runs
// before validation, so a malformed submission still consumes the caller's
// slot.
func contactHandler(limiter *RateLimiter, sender MailSender, db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(callerID(c)) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Please wait a minute before sending another message.",
			})
			return
		}

		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Name, email, and message are all required.",
			})
			return
		}

		if err := sender.Send(req.Name, req.Email, req.Message); err != nil {
			log.Printf("Error sending contact email: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}

		recordContactMessage(db, req.Name, req.Email)
		log.Printf("Contact email sent from %s (%s)", req.Name, req.Email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Thank you for your message! I'll get back to you soon.",
		})
	}
}
