package session

import "encoding/json"

// EncodeValue serializes a session value as JSON. Session data crosses
// store round-trips, so values must be JSON-serializable.
func EncodeValue(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// DecodeValue deserializes a stored JSON value. Structured values come
// back as map[string]any / []any; callers that need typed values use
// api.Decode on the result.
func DecodeValue(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeDocument serializes a whole session data map for document-style
// backends (SQLite, Postgres).
func EncodeDocument(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	return json.Marshal(data)
}

// DecodeDocument deserializes a whole session data map.
func DecodeDocument(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
