package infra

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"walle.finance/internal/config"
)

const (
	activationSubject = "Ative sua conta - Walle"
	resetSubject      = "Redefinição de senha - Walle"
)

// Mailer delivers account emails over SMTP.
type Mailer struct {
	cfg         config.MailConfig
	frontendURL string
}

func NewMailer(cfg config.MailConfig, frontendURL string) *Mailer {
	return &Mailer{cfg: cfg, frontendURL: frontendURL}
}

func (m *Mailer) SendActivation(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/walle/activate?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width:600px;">
        <h2 style="color:#333;margin-bottom:0.2rem;">Ative sua conta</h2>
        <p style="color:#555;">Obrigado por se cadastrar na Walle! Para começar a usar sua conta clique no botão abaixo:</p>
        <a href="%s"
           style="display:inline-block;background:#28a745;color:#ffffff;padding:12px 20px;border-radius:6px;text-decoration:none;margin-top:10px;">
          Ativar Conta
        </a>
        <p style="color:#777;margin-top:16px;">Se você não solicitou este e-mail, pode ignorar.</p>
        <hr style="border:none;border-top:1px solid #eee;margin:16px 0;">
        <small style="color:#999;">Link válido por 25 minutos.</small>
      </div>`, link)

	return m.send(ctx, email, activationSubject, body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/walle/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width:600px;">
        <h2 style="color:#333;margin-bottom:0.2rem;">Redefinição de senha</h2>
        <p style="color:#555;">Recebemos uma solicitação para redefinir a senha da sua conta. Clique no botão abaixo para continuar:</p>
        <a href="%s"
           style="display:inline-block;background:#ff6b6b;color:#ffffff;padding:12px 20px;border-radius:6px;text-decoration:none;margin-top:10px;">
          Redefinir Senha
        </a>
        <p style="color:#777;margin-top:16px;">Se você não solicitou essa ação, ignore este e-mail.</p>
        <hr style="border:none;border-top:1px solid #eee;margin:16px 0;">
        <small style="color:#999;">Link válido por 25 minutos.</small>
      </div>`, link)

	return m.send(ctx, email, resetSubject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
