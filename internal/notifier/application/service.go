package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/printeez/backend/internal/order/domain"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`Hi,

Thanks for your order {{.OrderID}}.

{{range .Items}}  {{.Quantity}} x {{.ProductName}} ({{.Size}}) at {{.UnitPrice}}
{{end}}
Total: {{.Total}}

We will ship to: {{.Address}}
`))

type Service struct {
	log    *slog.Logger
	sender Sender
}

func NewService(log *slog.Logger, sender Sender) *Service {
	return &Service{log: log, sender: sender}
}

// HandleOrderPlaced renders and sends the confirmation email for a placed
// order. A send failure is returned to the caller for logging but must never
// propagate back into the order flow.
func (s *Service) HandleOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	var body strings.Builder
	if err := confirmationTmpl.Execute(&body, event); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	subject := fmt.Sprintf("Order confirmation %s", event.OrderID)
	if err := s.sender.Send(ctx, event.Email, subject, body.String()); err != nil {
		return fmt.Errorf("sender.Send: %w", err)
	}

	s.log.Info("order confirmation sent", "order_id", event.OrderID, "email", event.Email)
	return nil
}
