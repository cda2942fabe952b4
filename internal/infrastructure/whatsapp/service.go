package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/pedidos-pro/internal/application/usecase"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/pkg/config"
	"github.com/tu-usuario/pedidos-pro/pkg/logger"
)

// Verificar en tiempo de compilación que Service implementa Notifier.
var _ usecase.Notifier = (*Service)(nil)

var nonDigitRe = regexp.MustCompile(`\D`)

// Service adaptador de notificaciones vía WhatsApp (Evolution API).
// Usa net/http de la librería estándar; no requiere SDK.
// Todas las operaciones son best-effort: devuelven false en lugar de error y
// dejan el detalle en el log.
type Service struct {
	apiURL   string
	apiKey   string
	instance string
	client   *http.Client
	log      *logger.Logger
}

// New construye el adaptador. Con configuración vacía los envíos fallan con
// false y un aviso en el log, nunca con panic.
func New(cfg config.WhatsAppConfig, log *logger.Logger) *Service {
	return &Service{
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		apiKey:   cfg.APIKey,
		instance: cfg.Instance,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// SendOrderConfirmation envía el mensaje de confirmación de la orden.
func (s *Service) SendOrderConfirmation(ctx context.Context, order *entity.Order) bool {
	return s.send(ctx, order.CustomerPhone, confirmationMessage(order))
}

// SendStatusUpdate envía el aviso de cambio de estado. previous se usa solo
// para contexto del log; el mensaje describe el estado actual.
func (s *Service) SendStatusUpdate(ctx context.Context, order *entity.Order, previous entity.OrderStatus) bool {
	ok := s.send(ctx, order.CustomerPhone, statusMessage(order))
	if !ok {
		s.log.Warn().
			Str("order_number", order.OrderNumber).
			Str("from", string(previous)).
			Str("to", string(order.Status)).
			Msg("aviso de cambio de estado no entregado")
	}
	return ok
}

func (s *Service) send(ctx context.Context, phone, message string) bool {
	if s.apiURL == "" || s.instance == "" {
		s.log.Debug().Msg("whatsapp sin configurar; se omite el envío")
		return false
	}

	body, err := json.Marshal(sendTextRequest{
		Number: normalizePhone(phone) + "@s.whatsapp.net",
		Text:   message,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("serializar mensaje whatsapp")
		return false
	}

	url := fmt.Sprintf("%s/message/sendText/%s", s.apiURL, s.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.log.Error().Err(err).Msg("armar request whatsapp")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Msg("enviar mensaje whatsapp")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error().Int("status", resp.StatusCode).Msg("whatsapp respondió error")
		return false
	}
	return true
}

// normalizePhone limpia el número y antepone el código de país 54
// (Argentina) cuando falta.
func normalizePhone(phone string) string {
	clean := nonDigitRe.ReplaceAllString(phone, "")
	if strings.HasPrefix(clean, "54") {
		return clean
	}
	return "54" + clean
}

func confirmationMessage(order *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 *¡Orden Confirmada!*\n\nHola *%s*,\n\nTu orden ha sido registrada exitosamente.\n\n", order.CustomerName)
	fmt.Fprintf(&b, "*Número de Orden:* %s\n\n*Detalle:*\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s x%d - $%s\n", item.ProductName, item.Quantity, item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Total:* $%s\n\n📍 *Seguimiento:*\n%s\n", order.Total.StringFixed(2), order.TrackingURL)
	if order.Notes != "" {
		fmt.Fprintf(&b, "\n📝 *Notas:* %s\n", order.Notes)
	}
	b.WriteString("\n¡Gracias por tu compra! 🙌")
	return b.String()
}

var statusMessages = map[entity.OrderStatus]string{
	entity.OrderPending:    "⏳ Tu orden está pendiente de confirmación",
	entity.OrderConfirmed:  "✅ Tu orden ha sido confirmada y será procesada pronto",
	entity.OrderInProgress: "🔄 Tu orden está siendo preparada",
	entity.OrderReady:      "📦 ¡Tu orden está lista! Puedes recogerla",
	entity.OrderDelivered:  "🎉 ¡Tu orden ha sido entregada! Gracias por tu compra",
	entity.OrderCancelled:  "❌ Tu orden ha sido cancelada",
}

func statusMessage(order *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 *Actualización de Orden*\n\nHola *%s*,\n\n*Orden:* %s\n\n%s\n",
		order.CustomerName, order.OrderNumber, statusMessages[order.Status])
	if last := order.LastStatusChange(); last != nil && last.Notes != "" {
		fmt.Fprintf(&b, "\n📝 *Nota:* %s\n", last.Notes)
	}
	fmt.Fprintf(&b, "\n📍 *Ver detalles:*\n%s", order.TrackingURL)
	return b.String()
}
