package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashDrawerEventType classifies manual drawer movements within a shift
type CashDrawerEventType int

const (
	CashDrawerEventPayIn    CashDrawerEventType = 0
	CashDrawerEventPayOut   CashDrawerEventType = 1
	CashDrawerEventCashDrop CashDrawerEventType = 2
	CashDrawerEventNoSale   CashDrawerEventType = 3
)

func (t CashDrawerEventType) String() string {
	names := [...]string{"PayIn", "PayOut", "CashDrop", "NoSale"}
	if int(t) < 0 || int(t) >= len(names) {
		return "PayIn"
	}
	return names[t]
}

func (t CashDrawerEventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CashDrawerEventType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CashDrawerEventType(i)
		return nil
	}
	switch str {
	case "PayIn":
		*t = CashDrawerEventPayIn
	case "PayOut":
		*t = CashDrawerEventPayOut
	case "CashDrop":
		*t = CashDrawerEventCashDrop
	case "NoSale":
		*t = CashDrawerEventNoSale
	}
	return nil
}

func (t CashDrawerEventType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CashDrawerEventType) Scan(value interface{}) error {
	if value == nil {
		*t = CashDrawerEventPayIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CashDrawerEventType(v)
	case int:
		*t = CashDrawerEventType(v)
	}
	return nil
}
