package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethodType distinguishes cash tenders, which affect drawer
// reconciliation, from externally settled tenders (cards, vouchers).
type PaymentMethodType int

const (
	PaymentMethodTypeCash     PaymentMethodType = 0
	PaymentMethodTypeExternal PaymentMethodType = 1
)

func (t PaymentMethodType) String() string {
	if t == PaymentMethodTypeExternal {
		return "External"
	}
	return "Cash"
}

func (t PaymentMethodType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentMethodType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PaymentMethodType(i)
		return nil
	}
	switch str {
	case "Cash":
		*t = PaymentMethodTypeCash
	case "External":
		*t = PaymentMethodTypeExternal
	}
	return nil
}

func (t PaymentMethodType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentMethodType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentMethodTypeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentMethodType(v)
	case int:
		*t = PaymentMethodType(v)
	}
	return nil
}
