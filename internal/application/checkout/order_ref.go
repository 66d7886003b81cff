package checkout

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
)

var txRefPattern = regexp.MustCompile(`^order_([0-9a-fA-F-]{36})_`)

// FlutterwaveEvent is the part of a Flutterwave webhook body the service reads
type FlutterwaveEvent struct {
	Event string
	Data  FlutterwaveData
}

// FlutterwaveData is the transaction carried by a webhook
type FlutterwaveData struct {
	ID     string
	TxRef  string
	Status string
	Meta   FlutterwaveMeta
}

// FlutterwaveMeta is the metadata attached when the payment link was created
type FlutterwaveMeta struct {
	OrderID string
}

// ParseFlutterwaveEvent decodes a webhook body. Only malformed JSON is an
// error: a value of an unexpected shape reads as empty, the way optional
// chaining on the payload would.
func ParseFlutterwaveEvent(body []byte) (*FlutterwaveEvent, error) {
	if !json.Valid(body) {
		return nil, errors.New("malformed JSON body")
	}
	var event FlutterwaveEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UnmarshalJSON never fails on well-formed JSON. Anything but an object
// decodes as an empty event.
func (e *FlutterwaveEvent) UnmarshalJSON(raw []byte) error {
	top := objectFields(raw)
	data := objectFields(top["data"])
	*e = FlutterwaveEvent{
		Event: scalarString(top["event"]),
		Data: FlutterwaveData{
			ID:     scalarString(data["id"]),
			TxRef:  scalarString(data["tx_ref"]),
			Status: scalarString(data["status"]),
			Meta: FlutterwaveMeta{
				OrderID: scalarString(objectFields(data["meta"])["order_id"]),
			},
		},
	}
	return nil
}

// objectFields splits a JSON object into its members; nil for any other value
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

// scalarString renders a JSON string, number or boolean as text. null,
// objects, arrays and absent values read as "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return ""
		}
		return v
	case 't', 'f':
		if bytes.Equal(raw, []byte("true")) || bytes.Equal(raw, []byte("false")) {
			return string(raw)
		}
		return ""
	case '{', '[', 'n':
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return ""
	}
	return n.String()
}

// ExtractOrderID resolves the order a Flutterwave event refers to: the uuid
// embedded in tx_ref, else meta.order_id. It returns "" when neither is present.
func ExtractOrderID(event *FlutterwaveEvent) string {
	if event == nil {
		return ""
	}
	if m := txRefPattern.FindStringSubmatch(event.Data.TxRef); m != nil {
		return m[1]
	}
	return event.Data.Meta.OrderID
}
