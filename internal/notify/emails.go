package notify

import (
	"fmt"
	"html"
	"net/url"

	"github.com/amvenit/amvenit/internal/adapter/mailer"
	"github.com/amvenit/amvenit/internal/domain/model"
)

// BuildOrderReviewEmail renders the admin notification for a freshly posted
// order. It carries one-click verify/reject links so moderation works straight
// from the inbox.
func BuildOrderReviewEmail(baseURL, adminKey string, order model.Order) mailer.Message {
	verifyLink := adminLink(baseURL, "/api/admin/orders/verify-link", adminKey, order.ID.String())
	rejectLink := adminLink(baseURL, "/api/admin/orders/reject-link", adminKey, order.ID.String())

	urgency := "normal"
	if order.Urgent {
		urgency = "URGENT"
	}

	body := fmt.Sprintf(`<h2>Cerere nouă de livrare</h2>
<p><b>Ce:</b> %s</p>
<p><b>Cine/unde:</b> %s</p>
<p><b>Telefon:</b> %s</p>
<p><b>Urgență:</b> %s</p>
<p><b>Cod verificare:</b> %s</p>
<p>
  <a href="%s">✔ Verifică telefonul</a> &nbsp;|&nbsp;
  <a href="%s">✘ Respinge cererea</a>
</p>`,
		html.EscapeString(order.What),
		html.EscapeString(order.WhoWhere()),
		html.EscapeString(order.Phone),
		urgency,
		html.EscapeString(order.VerifyCode),
		verifyLink,
		rejectLink,
	)

	return mailer.Message{
		Subject: fmt.Sprintf("Cerere nouă: %s", order.What),
		HTML:    body,
	}
}

// BuildCourierRequestEmail renders the admin notification for a courier
// application.
func BuildCourierRequestEmail(req model.CourierRequest) mailer.Message {
	body := fmt.Sprintf(`<h2>Cerere nouă de livrator</h2>
<p><b>Nume:</b> %s</p>
<p><b>Telefon:</b> %s</p>
<p><b>Zonă:</b> %s</p>
<p>Aproba din panoul de administrare pentru a genera PIN-ul.</p>`,
		html.EscapeString(req.Name),
		html.EscapeString(req.Phone),
		html.EscapeString(req.Area),
	)

	return mailer.Message{
		Subject: fmt.Sprintf("Cerere livrator: %s", req.Name),
		HTML:    body,
	}
}

func adminLink(baseURL, route, adminKey, id string) string {
	query := url.Values{}
	query.Set("key", adminKey)
	query.Set("id", id)
	return baseURL + route + "?" + query.Encode()
}
