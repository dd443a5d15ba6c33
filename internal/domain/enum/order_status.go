package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle status of an order.
//
// Allowed transitions: Open -> Held/Completed/Voided, Held -> Open (recall),
// Held -> Completed/Voided, Completed -> Refunded. Refunded and Voided are
// terminal.
type OrderStatus int

const (
	OrderStatusOpen      OrderStatus = 0
	OrderStatusHeld      OrderStatus = 1
	OrderStatusCompleted OrderStatus = 2
	OrderStatusVoided    OrderStatus = 3
	OrderStatusRefunded  OrderStatus = 4
)

func (s OrderStatus) String() string {
	names := [...]string{"Open", "Held", "Completed", "Voided", "Refunded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

// IsEditable reports whether lines may still be added, changed, or removed.
func (s OrderStatus) IsEditable() bool {
	return s == OrderStatusOpen || s == OrderStatusHeld
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusVoided || s == OrderStatusRefunded
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = OrderStatusOpen
	case "Held":
		*s = OrderStatusHeld
	case "Completed":
		*s = OrderStatusCompleted
	case "Voided":
		*s = OrderStatusVoided
	case "Refunded":
		*s = OrderStatusRefunded
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
