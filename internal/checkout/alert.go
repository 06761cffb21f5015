package checkout

type AlertType string

const AlertDanger AlertType = "danger"

type Alert struct {
	Message string
	Type    AlertType
	// Field is set on form errors so the surface can focus the input.
	Field string
}

// AlertSink is a one-way message channel: components enqueue, a single
// consumer drains. Publishing never blocks the checkout flow; alerts
// beyond the buffer are dropped.
type AlertSink struct {
	ch chan Alert
}

func NewAlertSink(buffer int) *AlertSink {
	if buffer <= 0 {
		buffer = 16
	}
	return &AlertSink{
		ch: make(chan Alert, buffer),
	}
}

func (s *AlertSink) Danger(message string) {
	s.publish(Alert{Message: message, Type: AlertDanger})
}

func (s *AlertSink) FormError(field string) {
	s.publish(Alert{Message: field + " is required", Type: AlertDanger, Field: field})
}

func (s *AlertSink) publish(alert Alert) {
	select {
	case s.ch <- alert:
	default:
	}
}

// Alerts exposes the consumer side of the channel.
func (s *AlertSink) Alerts() <-chan Alert {
	return s.ch
}

// Drain empties the sink without blocking.
func (s *AlertSink) Drain() []Alert {
	var alerts []Alert
	for {
		select {
		case alert := <-s.ch:
			alerts = append(alerts, alert)
		default:
			return alerts
		}
	}
}
