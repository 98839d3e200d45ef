package service

import (
	"context"
	"fmt"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
	users     repository.UserDirectory
}

// NewEmailNotifier sends transactional emails to the renter or provider on
// order lifecycle events via SendGrid.
func NewEmailNotifier(apiKey, fromEmail, fromName string, users repository.UserDirectory) Notifier {
	return &emailNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		users:     users,
	}
}

func (n *emailNotifier) OrderRequested(ctx context.Context, o *domain.Order) error {
	subject := "New rental request"
	body := fmt.Sprintf("A renter requested your equipment from %s to %s (order %s).",
		o.StartDate.Format("2006-01-02"), o.EndDate.Format("2006-01-02"), o.ID)
	return n.send(ctx, o.ProviderID, subject, body)
}

func (n *emailNotifier) OrderStatusChanged(ctx context.Context, o *domain.Order, from domain.OrderStatus) error {
	var recipient int32
	var subject, body string

	switch o.Status {
	case domain.OrderStatusAccepted:
		recipient = o.RenterID
		subject = "Rental request accepted"
		body = fmt.Sprintf("Your rental request %s was accepted. Complete payment to start the rental.", o.ID)
	case domain.OrderStatusRejected:
		recipient = o.RenterID
		subject = "Rental request rejected"
		body = fmt.Sprintf("Your rental request %s was rejected by the provider.", o.ID)
	case domain.OrderStatusCancelled:
		recipient = o.ProviderID
		subject = "Rental cancelled"
		body = fmt.Sprintf("The renter cancelled rental %s.", o.ID)
	case domain.OrderStatusInProgress:
		recipient = o.ProviderID
		subject = "Rental payment received"
		body = fmt.Sprintf("Payment for rental %s completed; the rental is now active.", o.ID)
	case domain.OrderStatusCompleted:
		recipient = o.ProviderID
		subject = "Rental completed"
		body = fmt.Sprintf("Rental %s has ended. The equipment is awaiting return confirmation.", o.ID)
	default:
		return nil
	}
	return n.send(ctx, recipient, subject, body)
}

func (n *emailNotifier) send(ctx context.Context, userID int32, subject, body string) error {
	name, email, err := n.users.GetContact(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient %d: %w", userID, err)
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}
