package checkout

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"deenha/internal/cart"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	greetingEmpty = "Halo Deenha! Saya tertarik dengan produk Anda."
	greetingOrder = "Halo Deenha! Saya ingin memesan:\n\n"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah groups thousands the Indonesian way, e.g. 200000 -> "200.000".
func FormatRupiah(amount int) string {
	return printer.Sprintf("%d", amount)
}

// Compose builds the order message for a set of cart lines.
func Compose(lines []cart.LineItem) string {
	if len(lines) == 0 {
		return greetingEmpty
	}

	var b strings.Builder
	b.WriteString(greetingOrder)
	total := 0
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s (%s, %s) x%d\n", l.Name, l.SelectedSize, l.SelectedColor, l.Quantity)
		total += l.Subtotal()
	}
	fmt.Fprintf(&b, "\nTotal: Rp %s", FormatRupiah(total))
	return b.String()
}

// componentUnescaper undoes the escapes QueryEscape applies beyond the
// encodeURIComponent set.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// HandoffURL returns the chat link that opens a conversation with phone
// prefilled with msg, percent-encoded like encodeURIComponent.
func HandoffURL(phone, msg string) string {
	encoded := componentUnescaper.Replace(url.QueryEscape(msg))
	return "https://wa.me/" + phone + "?text=" + encoded
}

// HandoffItem is one line of a handoff event.
type HandoffItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// HandoffEvent is published when a shopper is sent to chat checkout.
type HandoffEvent struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id"`
	Items     []HandoffItem `json:"items"`
	Total     int           `json:"total"`
	Message   string        `json:"message"`
	URL       string        `json:"url"`
	CreatedAt time.Time     `json:"created_at"`
}

// EventHandoff is the HandoffEvent type tag.
const EventHandoff = "checkout.handoff"

// NewHandoffEvent snapshots the cart lines into an event.
func NewHandoffEvent(sessionID, phone string, lines []cart.LineItem) HandoffEvent {
	msg := Compose(lines)
	ev := HandoffEvent{
		Type:      EventHandoff,
		SessionID: sessionID,
		Items:     make([]HandoffItem, 0, len(lines)),
		Message:   msg,
		URL:       HandoffURL(phone, msg),
		CreatedAt: time.Now().UTC(),
	}
	for _, l := range lines {
		ev.Items = append(ev.Items, HandoffItem{
			ProductID: l.ID,
			Name:      l.Name,
			Size:      l.SelectedSize,
			Color:     l.SelectedColor,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
		ev.Total += l.Subtotal()
	}
	return ev
}

// ParseHandoffEvent decodes a published handoff event.
func ParseHandoffEvent(body []byte) (HandoffEvent, error) {
	var ev HandoffEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode handoff event: %w", err)
	}
	if ev.Type != EventHandoff {
		return ev, fmt.Errorf("unexpected event type %q", ev.Type)
	}
	return ev, nil
}
